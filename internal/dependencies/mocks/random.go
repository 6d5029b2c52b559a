package mocks

import (
	"github.com/mcoot/flashpuzzle/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// Uint64Results is a queue of results to return from Uint64
	Uint64Results []uint64
	uint64Index   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result clamped to [0, n), or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) || n <= 0 {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	if result >= n {
		result = n - 1
	}
	return result
}

// Uint64 returns the next queued result, or 0 if none remaining
func (r *MockRandom) Uint64() uint64 {
	if r.uint64Index >= len(r.Uint64Results) {
		return 0
	}
	result := r.Uint64Results[r.uint64Index]
	r.uint64Index++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueUint64 adds values to the Uint64 result queue
func (r *MockRandom) QueueUint64(values ...uint64) {
	r.Uint64Results = append(r.Uint64Results, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.Uint64Results = nil
	r.uint64Index = 0
}
