// Package latency simulates backend response times.
package latency

import (
	"context"
	"sync"
	"time"
)

type Simulator interface {
	// Wait blocks for d. Simulated operations always complete, so the
	// wait is not cut short by ctx.
	Wait(ctx context.Context, d time.Duration)
}

type Clock struct{}

func (Clock) Wait(_ context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	<-t.C
}

// Instant completes every wait immediately and records what was asked.
type Instant struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (i *Instant) Wait(_ context.Context, d time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.waits = append(i.waits, d)
}

func (i *Instant) Waits() []time.Duration {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]time.Duration(nil), i.waits...)
}
