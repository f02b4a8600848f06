package player

import (
	"context"
	"sync"
	"time"

	"github.com/ethpandaops/lab/utils"
)

// CancelFunc stops a scheduled callback. Safe to call multiple times.
type CancelFunc func()

// Scheduler abstracts the repeating timer that drives playback ticks, so the
// state machine stays testable without real timers.
type Scheduler interface {
	Schedule(interval time.Duration, callback func(elapsed time.Duration)) CancelFunc
}

// TickerScheduler implements Scheduler on top of time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Schedule(interval time.Duration, callback func(elapsed time.Duration)) CancelFunc {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer utils.HandleSubroutinePanic("player.scheduler")

		last := time.Now()

		for {
			select {
			case now := <-ticker.C:
				callback(now.Sub(last))
				last = now
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once

	return func() {
		once.Do(func() {
			close(done)
		})
	}
}

// Run drives the player with the given scheduler until the context is done.
func (p *Player) Run(ctx context.Context, scheduler Scheduler, interval time.Duration) {
	cancel := scheduler.Schedule(interval, p.Tick)
	defer cancel()

	<-ctx.Done()
}
