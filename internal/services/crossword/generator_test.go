package crossword

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/flashpuzzle/internal/dependencies/random"
	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/testutil"
)

type GeneratorSuite struct {
	suite.Suite
	gen *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func (s *GeneratorSuite) SetupTest() {
	s.gen = New(DefaultConfig(), testutil.NopLogger())
}

func entries(words ...string) []model.WordEntry {
	out := make([]model.WordEntry, len(words))
	for i, w := range words {
		out[i] = model.WordEntry{Word: w, Clue: "clue for " + w}
	}
	return out
}

var capitals = entries("PARIS", "LONDON", "MADRID", "ROME", "BERLIN", "OSLO", "VIENNA", "LISBON")

func (s *GeneratorSuite) TestGridSize() {
	s.Equal(10, GridSize(entries("CAT", "DOG"), 10))
	s.Equal(16, GridSize(entries("CAT", "ELEPHANT", "GIRAFFE"), 10))
	s.Equal(12, GridSize(entries("CAT"), 12))
}

func (s *GeneratorSuite) TestEmptyInput() {
	result, err := s.gen.Generate(context.Background(), nil, random.NewSeeded(1))
	s.ErrorIs(err, model.ErrEmptyInput)
	s.Nil(result)
}

func (s *GeneratorSuite) TestFirstWordCentredAcross() {
	result, err := s.gen.Generate(context.Background(), entries("PARIS", "TOKYO"), random.NewSeeded(7))
	s.Require().NoError(err)

	s.Equal(2, result.Placed)
	s.Equal(2, result.Target)
	s.Equal(10, result.Crossword.Size)

	first := result.Crossword.Words[0]
	s.Equal("PARIS", first.Word)
	s.Equal(model.Position{Row: 5, Col: 2}, first.Start)
	s.Equal(model.DirectionAcross, first.Direction)
	s.Equal(1, first.Number)
	s.NoError(CheckIntegrity(result.Crossword))
}

func (s *GeneratorSuite) TestSharedLetterIntersects() {
	result, err := s.gen.Generate(context.Background(), entries("CAT", "CAR"), random.NewSeeded(3))
	s.Require().NoError(err)
	s.Require().Len(result.Crossword.Words, 2)

	second := result.Crossword.Words[1]
	s.Equal(model.DirectionDown, second.Direction)

	shared := 0
	for _, pos := range second.Cells() {
		if len(result.Crossword.Cell(pos).OwningWords) == 2 {
			shared++
		}
	}
	s.GreaterOrEqual(shared, 1)
	s.NoError(CheckIntegrity(result.Crossword))
}

func (s *GeneratorSuite) TestExhaustedReturnsBestAttempt() {
	gen := New(Config{MinGridSize: 10, OuterIterations: 3, RandomAttempts: 0}, testutil.NopLogger())

	result, err := gen.Generate(context.Background(), entries("ABC", "XYZ"), random.NewSeeded(1))

	var exhausted *PlacementExhaustedError
	s.Require().True(errors.As(err, &exhausted))
	s.Equal(1, exhausted.Placed)
	s.Equal(2, exhausted.Target)
	s.Equal([]string{"XYZ"}, exhausted.Unplaced)

	s.Require().NotNil(result)
	s.Equal(1, result.Placed)
	s.Equal(3, result.Restarts)
	s.Require().Len(result.Unplaced, 1)
	s.Equal("XYZ", result.Unplaced[0].Word)
	s.NoError(CheckIntegrity(result.Crossword))
}

func (s *GeneratorSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.gen.Generate(ctx, capitals, random.NewSeeded(1))
	s.ErrorIs(err, context.Canceled)
	s.Nil(result)
}

func (s *GeneratorSuite) TestSameSeedSameGrid() {
	a, errA := s.gen.Generate(context.Background(), capitals, random.NewSeeded(42))
	b, errB := s.gen.Generate(context.Background(), capitals, random.NewSeeded(42))

	s.Equal(errA == nil, errB == nil)
	s.Require().NotNil(a)
	s.Require().NotNil(b)
	s.Equal(a.Crossword, b.Crossword)
	s.Equal(a.Restarts, b.Restarts)
}

func (s *GeneratorSuite) TestIntegrityAcrossSeeds() {
	for seed := uint64(1); seed <= 40; seed++ {
		result, err := s.gen.Generate(context.Background(), capitals, random.NewSeeded(seed))
		if err != nil {
			var exhausted *PlacementExhaustedError
			s.Require().True(errors.As(err, &exhausted), "seed %d: %v", seed, err)
		}
		s.Require().NotNil(result, "seed %d", seed)
		s.NoError(CheckIntegrity(result.Crossword), "seed %d", seed)
		s.Equal(result.Placed, len(result.Crossword.Words), "seed %d", seed)
		s.Equal(result.Target, result.Placed+len(result.Unplaced), "seed %d", seed)
	}
}

func (s *GeneratorSuite) TestNumbersAreSequential() {
	result, err := s.gen.Generate(context.Background(), capitals, random.NewSeeded(9))
	if err != nil {
		var exhausted *PlacementExhaustedError
		s.Require().True(errors.As(err, &exhausted))
	}

	seen := make(map[int]model.Position)
	highest := 0
	for _, w := range result.Crossword.Words {
		if prev, ok := seen[w.Number]; ok {
			s.Equal(prev, w.Start, "number %d reused for a different start", w.Number)
			continue
		}
		s.Equal(highest+1, w.Number)
		highest = w.Number
		seen[w.Number] = w.Start
	}
}
