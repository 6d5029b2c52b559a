package crossword

import (
	"github.com/mcoot/flashpuzzle/internal/dependencies/random"
	"github.com/mcoot/flashpuzzle/internal/model"
)

// Searcher finds the best-scoring placement for a word on a grid
type Searcher struct {
	randomAttempts int
}

// NewSearcher creates a Searcher that falls back to randomAttempts random tries
func NewSearcher(randomAttempts int) *Searcher {
	return &Searcher{randomAttempts: randomAttempts}
}

// Best returns the highest-scoring legal placement for word.
// Intersections with placed words are tried first; random positions are only
// tried when no intersection is legal. Ties keep the first placement found.
func (s *Searcher) Best(g *Grid, word string, rnd random.Random) (Placement, bool) {
	if p, ok := s.bestIntersecting(g, word); ok {
		return p, true
	}
	return s.bestRandom(g, word, rnd)
}

// bestIntersecting scans placed words in placement order, then candidate
// letter index, then placed-word letter index
func (s *Searcher) bestIntersecting(g *Grid, word string) (Placement, bool) {
	var best Placement
	found := false

	candidate := []rune(word)
	for _, placed := range g.words {
		placedRunes := []rune(placed.Word)
		pdr, pdc := placed.Direction.Delta()
		dir := placed.Direction.Perpendicular()
		dr, dc := dir.Delta()

		for i, c := range candidate {
			for j, pc := range placedRunes {
				if c != pc {
					continue
				}
				cross := placed.Start.Add(pdr*j, pdc*j)
				start := cross.Add(-dr*i, -dc*i)

				p, err := g.TryPlace(word, start, dir)
				if err != nil || p.Intersections == 0 {
					continue
				}
				if !found || p.Score() > best.Score() {
					best = p
					found = true
				}
			}
		}
	}

	return best, found
}

// bestRandom samples random starts and directions
func (s *Searcher) bestRandom(g *Grid, word string, rnd random.Random) (Placement, bool) {
	var best Placement
	found := false

	dirs := model.CrosswordDirections()
	for attempt := 0; attempt < s.randomAttempts; attempt++ {
		start := model.Position{Row: rnd.Intn(g.size), Col: rnd.Intn(g.size)}
		dir := dirs[rnd.Intn(len(dirs))]

		p, err := g.TryPlace(word, start, dir)
		if err != nil {
			continue
		}
		if !found || p.Score() > best.Score() {
			best = p
			found = true
		}
	}

	return best, found
}
