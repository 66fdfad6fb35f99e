package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// TickFunc is the work driven by the clock
type TickFunc func(ctx context.Context, now time.Time)

// Clock drives the dispatcher on a fixed interval or a cron schedule.
// Ticks are strictly serialized: a tick that comes due while the previous
// one is still running is skipped, never run concurrently. The clock does
// no business logic itself.
type Clock struct {
	fn       TickFunc
	interval time.Duration
	cronSpec string
	log      zerolog.Logger

	cron   *cron.Cron
	busy   atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewIntervalClock creates a clock firing every interval, with an
// immediate first tick on start
func NewIntervalClock(interval time.Duration, fn TickFunc, log zerolog.Logger) *Clock {
	return &Clock{
		fn:       fn,
		interval: interval,
		log:      log,
	}
}

// NewCronClock creates a clock firing on a standard 5-field cron schedule
func NewCronClock(spec string, fn TickFunc, log zerolog.Logger) (*Clock, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return &Clock{
		fn:       fn,
		cronSpec: spec,
		log:      log,
	}, nil
}

// Start starts the clock
func (c *Clock) Start(ctx context.Context) {
	c.ctx, c.cancel = context.WithCancel(ctx)

	if c.cronSpec != "" {
		c.cron = cron.New()
		// parse already validated in NewCronClock
		_, _ = c.cron.AddFunc(c.cronSpec, func() { c.fire(time.Now()) })
		c.cron.Start()
		c.log.Info().Str("cron", c.cronSpec).Msg("clock started")
		return
	}

	c.wg.Add(1)
	go c.loop()
	c.log.Info().Dur("interval", c.interval).Msg("clock started")
}

// Stop stops the clock and waits for an in-flight tick to finish
func (c *Clock) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.cron != nil {
		<-c.cron.Stop().Done()
	}
	c.wg.Wait()
	c.log.Info().Msg("clock stopped")
}

func (c *Clock) loop() {
	defer c.wg.Done()

	// initial tick
	c.fire(time.Now())

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case now := <-ticker.C:
			c.fire(now)
		}
	}
}

// fire runs one tick unless the previous one is still in flight
func (c *Clock) fire(now time.Time) {
	if !c.busy.CompareAndSwap(false, true) {
		c.log.Debug().Msg("previous tick still running, skipping")
		return
	}
	defer c.busy.Store(false)

	if c.ctx.Err() != nil {
		return
	}
	c.fn(c.ctx, now)
}
