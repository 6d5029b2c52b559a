package model

// Position identifies a cell on a puzzle grid
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Add returns the position offset by the given row and column deltas
func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// InBounds returns true if the position lies within a size x size grid
func (p Position) InBounds(size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}

// Direction is the reading direction of a placed word
type Direction string

const (
	DirectionAcross    Direction = "across"     // left to right
	DirectionDown      Direction = "down"       // top to bottom
	DirectionDownRight Direction = "down_right" // diagonal, word-search only
	DirectionUpRight   Direction = "up_right"   // diagonal, word-search only
)

// Delta returns the row and column step taken between consecutive letters
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case DirectionAcross:
		return 0, 1
	case DirectionDown:
		return 1, 0
	case DirectionDownRight:
		return 1, 1
	case DirectionUpRight:
		return -1, 1
	default:
		return 0, 0
	}
}

// Perpendicular returns the crossing direction for crossword words
func (d Direction) Perpendicular() Direction {
	if d == DirectionAcross {
		return DirectionDown
	}
	return DirectionAcross
}

// IsValid returns true for the four known directions
func (d Direction) IsValid() bool {
	dr, dc := d.Delta()
	return dr != 0 || dc != 0
}

// CrosswordDirections are the directions a crossword word may run in
func CrosswordDirections() []Direction {
	return []Direction{DirectionAcross, DirectionDown}
}

// WordSearchDirections are the directions a word-search word may run in
func WordSearchDirections() []Direction {
	return []Direction{DirectionAcross, DirectionDown, DirectionDownRight, DirectionUpRight}
}

// Path returns the positions covered by a run of length cells starting at start
func Path(start Position, dir Direction, length int) []Position {
	dr, dc := dir.Delta()
	path := make([]Position, length)
	for i := 0; i < length; i++ {
		path[i] = start.Add(dr*i, dc*i)
	}
	return path
}
