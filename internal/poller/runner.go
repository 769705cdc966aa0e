// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Handler consumes a finished snapshot. It runs on the poll goroutine,
// so the next cycle starts only after it returns.
type Handler func(Snapshot)

// Run polls, hands the snapshot to h, then sleeps Interval. Forever.
// ctx is checked after every cycle and after every sleep; an in-flight
// cycle always completes. No overlap. No retries.
func (p *Poller) Run(ctx context.Context, h Handler) {
	for {
		snap := p.PollOnce()
		if h != nil {
			h(snap)
		}

		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.cfg.Interval):
		}
	}
}
