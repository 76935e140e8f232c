// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run drives cycles until ctx is cancelled.
//
// One startup cycle runs immediately, then one per tick. Manual triggers
// and interval changes are merged into the same select, so cycles never
// overlap. Cancelling ctx stops scheduling; a cycle already running is
// finished on a context that ignores the cancellation.
func (p *Poller) Run(ctx context.Context) {
	cycleCtx := context.WithoutCancel(ctx)

	p.cycle(cycleCtx, TriggerStartup)

	ticker := time.NewTicker(p.Interval())
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			p.log.Info("poller stopped")
			return
		}

		select {
		case <-ctx.Done():
			p.log.Info("poller stopped")
			return

		case <-ticker.C:
			p.cycle(cycleCtx, TriggerTimer)

		case <-p.trigger:
			// Ticker keeps its phase; a tick missed while polling is dropped.
			p.cycle(cycleCtx, TriggerManual)

		case <-p.reconfigure:
			d := p.Interval()
			ticker.Reset(d)
			p.log.Info("poll interval changed", "interval_ms", d.Milliseconds())
		}
	}
}
