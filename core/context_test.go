package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	ctx := context.Background()

	// Test concurrent reads of context values
	const numGoroutines = 50
	done := make(chan bool, numGoroutines)

	// Set up context with various values
	ctx = WithSuppressHeader(ctx)
	ctx = WithSkipStore(ctx)

	for i := range numGoroutines {
		go func(id int) {
			defer func() { done <- true }()

			// Concurrent reads should be safe
			suppress := shouldSuppressHeader(ctx)
			skip := shouldSkipStore(ctx)

			// Verify values are correct
			assert.True(t, suppress, "Goroutine %d: shouldSuppressHeader should be true", id)
			assert.True(t, skip, "Goroutine %d: shouldSkipStore should be true", id)
		}(i)
	}

	// Wait for all goroutines to complete
	for range numGoroutines {
		<-done
	}
}

// TestContextIsolation tests that different contexts maintain isolation.
func TestContextIsolation(t *testing.T) {
	baseCtx := context.Background()

	// Create multiple contexts with different values
	ctx1 := WithSuppressHeader(baseCtx)
	ctx2 := WithSkipStore(baseCtx)

	// Test concurrent access to different contexts
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		assert.True(t, shouldSuppressHeader(ctx1))
		assert.False(t, shouldSkipStore(ctx1))
	}()

	go func() {
		defer wg.Done()
		assert.False(t, shouldSuppressHeader(ctx2))
		assert.True(t, shouldSkipStore(ctx2))
	}()

	go func() {
		defer wg.Done()
		assert.False(t, shouldSuppressHeader(baseCtx))
		assert.False(t, shouldSkipStore(baseCtx))
	}()

	wg.Wait()
}
