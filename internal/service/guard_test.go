package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_TryRegister(t *testing.T) {
	guard := NewGuard()

	assert.True(t, guard.TryRegister(1))
	assert.False(t, guard.TryRegister(1), "second claim for the same user must fail")
	assert.True(t, guard.TryRegister(2), "other users are unaffected")
	assert.True(t, guard.Active(1))
	assert.True(t, guard.Active(2))
}

func TestGuard_Release(t *testing.T) {
	guard := NewGuard()

	assert.True(t, guard.TryRegister(1))
	guard.Release(1)
	assert.False(t, guard.Active(1))
	assert.True(t, guard.TryRegister(1), "slot is reusable after release")

	// Releasing an unclaimed slot is a no-op.
	guard.Release(99)
	assert.False(t, guard.Active(99))
}

func TestGuard_ConcurrentClaims(t *testing.T) {
	guard := NewGuard()

	const attempts = 64
	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- guard.TryRegister(42)
		}()
	}
	wg.Wait()
	close(results)

	claimed := 0
	for ok := range results {
		if ok {
			claimed++
		}
	}
	assert.Equal(t, 1, claimed, "exactly one concurrent claim may win")
	assert.True(t, guard.Active(42))
}
