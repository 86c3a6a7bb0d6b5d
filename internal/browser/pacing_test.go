// File: internal/browser/pacing_test.go
package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPacing(t *testing.T) {
	t.Run("disabled pacing never delays", func(t *testing.T) {
		p := NewPacing(false, time.Second)
		for i := 0; i < 10; i++ {
			assert.Zero(t, p.Delay())
		}
		assert.False(t, p.Enabled())
	})

	t.Run("delays stay under the bound", func(t *testing.T) {
		max := 50 * time.Millisecond
		p := NewPacing(true, max)
		for i := 0; i < 100; i++ {
			d := p.Delay()
			assert.GreaterOrEqual(t, d, time.Duration(0))
			assert.Less(t, d, max)
		}
	})

	t.Run("jitter is a no-op when disabled", func(t *testing.T) {
		p := NewPacing(false, time.Hour)
		start := time.Now()
		assert.NoError(t, p.Jitter(context.Background()))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("jitter honors cancellation", func(t *testing.T) {
		p := NewPacing(true, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := p.Jitter(ctx)
		// A zero draw legitimately skips the sleep entirely.
		if err != nil {
			assert.ErrorIs(t, err, context.Canceled)
		}
	})
}
