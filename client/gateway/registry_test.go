package gateway

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_CancelAllFiresEachHandleOnce(t *testing.T) {
	r := NewRegistry()

	var calls [3]int
	for i := range calls {
		i := i
		r.Add(func() { calls[i]++ })
	}

	r.CancelAll()
	r.CancelAll() // second pass must be a no-op

	for i, n := range calls {
		assert.Equal(t, 1, n, "handle %d", i)
	}
}

func TestRegistry_ReusableAfterCancelAll(t *testing.T) {
	r := NewRegistry()

	first := 0
	r.Add(func() { first++ })
	r.CancelAll()

	second := 0
	r.Add(func() { second++ })
	r.CancelAll()

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestRegistry_ConcurrentCancelAll(t *testing.T) {
	r := NewRegistry()

	var fired int32
	for i := 0; i < 16; i++ {
		r.Add(func() { atomic.AddInt32(&fired, 1) })
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.CancelAll()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(16), atomic.LoadInt32(&fired))
}
