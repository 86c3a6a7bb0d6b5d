// internal/browser/pacing.go
package browser

import (
	"context"
	"math/rand"
	"time"
)

// Pacing produces the randomized delays used to mimic an operator working by
// hand: between keystrokes and between wizard sections. The delays are not
// correctness-relevant; with pacing disabled every Jitter call is a no-op.
type Pacing struct {
	enabled bool
	max     time.Duration
	rng     *rand.Rand
}

// NewPacing builds a pacing source. max bounds each individual delay.
func NewPacing(enabled bool, max time.Duration) *Pacing {
	return &Pacing{
		enabled: enabled,
		max:     max,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Enabled reports whether humanized pacing is on.
func (p *Pacing) Enabled() bool {
	return p.enabled
}

// Delay returns the next randomized delay in [0, max), or zero when pacing
// is disabled.
func (p *Pacing) Delay() time.Duration {
	if !p.enabled || p.max <= 0 {
		return 0
	}
	return time.Duration(p.rng.Int63n(int64(p.max)))
}

// Jitter sleeps for a randomized delay, honoring context cancellation.
func (p *Pacing) Jitter(ctx context.Context) error {
	d := p.Delay()
	if d == 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
