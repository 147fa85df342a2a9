// Package throttle decouples the raw pointer event rate from the rate at which overlay
// updates run. Events are coalesced into a single keep-latest slot and re-emitted at one of
// two cadences.
package throttle

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vedantwpatil/cursor-overlay/internal/tracking"
)

type Cadence int32

const (
	Slow Cadence = iota
	Fast
)

func (c Cadence) String() string {
	if c == Fast {
		return "fast"
	}
	return "slow"
}

// For returns the cadence that matches an overlay visibility.
func For(visible bool) Cadence {
	if visible {
		return Fast
	}
	return Slow
}

const (
	DefaultFastInterval = time.Second / 60
	DefaultSlowInterval = time.Second / 5
)

// Ticker is the part of time.Ticker the controller needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

type Options struct {
	FastInterval time.Duration
	SlowInterval time.Duration
	Initial      Cadence
	NewTicker    func(time.Duration) Ticker
}

// Stats counts events seen by a Controller.
type Stats struct {
	Offered   uint64
	Delivered uint64
}

// Coalesced is the number of offered events that were replaced before delivery.
func (s Stats) Coalesced() uint64 {
	if s.Delivered > s.Offered {
		return 0
	}
	return s.Offered - s.Delivered
}

type Controller struct {
	fast, slow time.Duration
	newTicker  func(time.Duration) Ticker

	mu        sync.Mutex
	latest    tracking.PointerEvent
	seq       uint64
	delivered uint64

	cadence  atomic.Int32
	switched chan struct{}
	out      chan tracking.PointerEvent

	offered atomic.Uint64
	emitted atomic.Uint64
}

func NewController(opts Options) *Controller {
	c := &Controller{
		fast:      opts.FastInterval,
		slow:      opts.SlowInterval,
		newTicker: opts.NewTicker,
		switched:  make(chan struct{}, 1),
		out:       make(chan tracking.PointerEvent),
	}
	if c.fast <= 0 {
		c.fast = DefaultFastInterval
	}
	if c.slow <= 0 {
		c.slow = DefaultSlowInterval
	}
	if c.newTicker == nil {
		c.newTicker = newTimeTicker
	}
	c.cadence.Store(int32(opts.Initial))
	return c
}

// Offer records ev as the latest event. It never blocks. Events older than the current
// latest are ignored so delivery order follows timestamps.
func (c *Controller) Offer(ev tracking.PointerEvent) {
	c.offered.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq > 0 && !ev.When.IsZero() && ev.When.Before(c.latest.When) {
		return
	}
	c.latest = ev
	c.seq++
}

// Events delivers at most one event per tick of the active cadence.
func (c *Controller) Events() <-chan tracking.PointerEvent {
	return c.out
}

func (c *Controller) Cadence() Cadence {
	return Cadence(c.cadence.Load())
}

// SetCadence requests a cadence switch. Only the goroutine consuming Events should call it.
func (c *Controller) SetCadence(cad Cadence) {
	if Cadence(c.cadence.Swap(int32(cad))) == cad {
		return
	}
	select {
	case c.switched <- struct{}{}:
	default:
	}
}

func (c *Controller) Stats() Stats {
	return Stats{Offered: c.offered.Load(), Delivered: c.emitted.Load()}
}

// Run drives delivery until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	sub := c.subscribe(c.Cadence())
	defer func() { sub.cancel() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.switched:
			if want := c.Cadence(); want != sub.cadence {
				sub = c.swap(sub, want)
			}
		case <-sub.ticker.C():
			ev, ok := c.take()
			if !ok {
				continue
			}
			select {
			case c.out <- ev:
				c.emitted.Add(1)
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// take claims the latest event if it has not been delivered yet.
func (c *Controller) take() (tracking.PointerEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq == c.delivered {
		return tracking.PointerEvent{}, false
	}
	c.delivered = c.seq
	return c.latest, true
}

type subscription struct {
	cadence Cadence
	ticker  Ticker
}

func (s subscription) cancel() {
	s.ticker.Stop()
}

func (c *Controller) subscribe(cad Cadence) subscription {
	interval := c.slow
	if cad == Fast {
		interval = c.fast
	}
	return subscription{cadence: cad, ticker: c.newTicker(interval)}
}

// swap starts the new subscription and cancels the old one. The pending event stays in the
// slot and goes out on the next tick of the new cadence.
func (c *Controller) swap(old subscription, cad Cadence) subscription {
	next := c.subscribe(cad)
	old.cancel()
	log.Debug().Stringer("from", old.cadence).Stringer("to", cad).Msg("cadence switched")
	return next
}
