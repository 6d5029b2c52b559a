package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/flashpuzzle/internal/model"
)

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	k := newKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("session-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, k.size())
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	k := newKeyedMutex()

	unlockA := k.Lock(model.SessionID("a"))
	// A different key must not block
	unlockB := k.Lock(model.SessionID("b"))
	assert.Equal(t, 2, k.size())

	unlockB()
	unlockA()
	assert.Equal(t, 0, k.size())
}
