package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorStartsAtZero(t *testing.T) {
	t.Parallel()
	a := NewAllocator()
	assert.Equal(t, Identifier(0), a.Peek())
	for want := Identifier(0); want < 5; want++ {
		assert.Equal(t, want, a.Next())
	}
	assert.Equal(t, Identifier(5), a.Peek())
}

func TestAllocateStrictlyIncreasing(t *testing.T) {
	t.Parallel()
	prev := Allocate()
	for i := 0; i < 100; i++ {
		id := Allocate()
		require.True(t, id > prev, "%d after %d", id, prev)
		prev = id
	}
}

func TestConstructorsShareDefaultAllocator(t *testing.T) {
	t.Parallel()
	seen := make(map[Identifier]bool)
	for i := 0; i < 50; i++ {
		for _, id := range []Identifier{NewNeuron().ID(), NewNode().ID(), Allocate()} {
			require.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
	}
}

func TestAllocatorConcurrentNoDuplicates(t *testing.T) {
	t.Parallel()
	const workers, perWorker = 8, 1000
	a := NewAllocator()

	ids := make(chan Identifier, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if i%2 == 0 {
					ids <- NewNeuronFrom(a).ID()
				} else {
					ids <- NewNodeFrom(a).ID()
				}
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[Identifier]bool, workers*perWorker)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
	for id := Identifier(0); id < workers*perWorker; id++ {
		assert.True(t, seen[id], "missing id %d", id)
	}
}

func TestInjectedAllocatorsAreIndependent(t *testing.T) {
	t.Parallel()
	a, b := NewAllocator(), NewAllocator()
	assert.Equal(t, Identifier(0), NewNeuronFrom(a).ID())
	assert.Equal(t, Identifier(1), NewNodeFrom(a).ID())
	assert.Equal(t, Identifier(0), NewNeuronFrom(b).ID())
}
