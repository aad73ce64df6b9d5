package ids

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIDMonotonic(t *testing.T) {
	g := New()

	prev := g.NextID()
	for i := 0; i < 1000; i++ {
		next := g.NextID()
		require.Greater(t, next, prev)
		prev = next
	}
}

func TestNextIDConcurrentUnique(t *testing.T) {
	g := New()

	const goroutines = 8
	const perGoroutine = 500

	var mu sync.Mutex
	seen := make(map[int64]struct{}, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				id := g.NextID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines*perGoroutine)
}

func TestOrderNumber(t *testing.T) {
	g := New()

	assert.Equal(t, "ORD-42", g.OrderNumber(42))
	assert.Equal(t, "ORD-99999999", g.OrderNumber(99999999))
	// only the last eight digits survive
	assert.Equal(t, "ORD-23456789", g.OrderNumber(123456789))
}

func TestReceiptNumberFormat(t *testing.T) {
	g := New()

	pattern := regexp.MustCompile(`^\d{6}-\d{4}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, pattern, g.ReceiptNumber())
	}
}
