// Package overlay keeps the overlay window aligned with the pointer. A Positioner owns the
// tracking state and must only be driven from a single goroutine.
package overlay

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vedantwpatil/cursor-overlay/internal/cursor"
	"github.com/vedantwpatil/cursor-overlay/internal/display"
	"github.com/vedantwpatil/cursor-overlay/internal/throttle"
	"github.com/vedantwpatil/cursor-overlay/internal/tracking"
	"github.com/vedantwpatil/cursor-overlay/internal/visibility"
)

// CadenceSetter receives the sampling cadence chosen after each update.
type CadenceSetter interface {
	SetCadence(throttle.Cadence)
}

type Options struct {
	Resolver *cursor.Resolver
	Query    cursor.Query
	Machine  *visibility.Machine
	Sink     Sink
	Rate     CadenceSetter
}

// State is a snapshot of the tracking state.
type State struct {
	Visible bool
	Cadence throttle.Cadence
	Display display.ID
	// OnDisplay is false while the pointer is outside every known display.
	OnDisplay bool
	Cursor    cursor.Kind
	Offset    cursor.Offset
}

type Positioner struct {
	resolver *cursor.Resolver
	query    cursor.Query
	machine  *visibility.Machine
	sink     Sink
	rate     CadenceSetter

	desc     cursor.Descriptor
	haveDesc bool
	kind     cursor.Kind
	offset   cursor.Offset

	last    display.Point
	visible bool
	cadence throttle.Cadence

	queryFailing bool
}

// NewPositioner starts hidden at the slow cadence.
func NewPositioner(opts Options) *Positioner {
	p := &Positioner{
		resolver: opts.Resolver,
		query:    opts.Query,
		machine:  opts.Machine,
		sink:     opts.Sink,
		rate:     opts.Rate,
		offset:   cursor.DefaultOffset,
		cadence:  throttle.Slow,
	}
	p.sink.SetVisible(false)
	p.rate.SetCadence(p.cadence)
	return p
}

// HandlePointer processes one throttled pointer event.
func (p *Positioner) HandlePointer(ev tracking.PointerEvent) {
	p.refreshCursor()

	p.last = display.Point{X: ev.X, Y: ev.Y}
	visible := p.machine.Step(p.last)
	if visible {
		p.move()
	}
	p.apply(visible)
}

// HandleEnabledChanged applies a new enabled-display set immediately.
func (p *Positioner) HandleEnabledChanged(set display.Set) {
	log.Info().Stringer("enabled", set).Msg("enabled displays changed")

	visible := p.machine.SetEnabled(set)
	if visible && !p.visible {
		p.move()
	}
	p.apply(visible)
}

// Run applies throttled events and enabled-set updates on the calling goroutine until ctx is
// done or events is closed.
func (p *Positioner) Run(ctx context.Context, events <-chan tracking.PointerEvent, enabled <-chan display.Set) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.HandlePointer(ev)
		case set, ok := <-enabled:
			if !ok {
				enabled = nil
				continue
			}
			p.HandleEnabledChanged(set)
		}
	}
}

func (p *Positioner) State() State {
	d, on := p.machine.Current()
	return State{
		Visible:   p.visible,
		Cadence:   p.cadence,
		Display:   d.ID,
		OnDisplay: on,
		Cursor:    p.kind,
		Offset:    p.offset,
	}
}

func (p *Positioner) move() {
	p.sink.SetPosition(p.last.X-p.offset.DX, p.last.Y-p.offset.DY)
}

func (p *Positioner) apply(visible bool) {
	if visible == p.visible {
		return
	}
	p.visible = visible
	p.sink.SetVisible(visible)

	if cad := throttle.For(visible); cad != p.cadence {
		p.cadence = cad
		p.rate.SetCadence(cad)
	}
}

// refreshCursor keeps the last known descriptor when the query fails.
func (p *Positioner) refreshCursor() {
	desc, err := p.query.Current()
	if err != nil {
		if !p.queryFailing {
			log.Warn().Err(err).Msg("reading active cursor failed, keeping last image")
		}
		p.queryFailing = true
		return
	}
	p.queryFailing = false

	if p.haveDesc && desc.Same(p.desc) {
		return
	}
	p.desc = desc
	p.haveDesc = true
	p.kind, p.offset = p.resolver.Lookup(desc)
	p.sink.SetImage(desc.Size, desc.Pixels)

	log.Debug().
		Stringer("kind", p.kind).
		Stringer("size", desc.Size).
		Float64("dx", p.offset.DX).
		Float64("dy", p.offset.DY).
		Msg("cursor changed")
}
