// Package visibility decides whether the overlay is shown on the display under the pointer.
//
// The machine caches the display the pointer was last confirmed inside and only rescans the
// registry when the pointer leaves it. A periodic full rescan backs up the cached path.
package visibility

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vedantwpatil/cursor-overlay/internal/display"
)

const (
	// BoundaryNudge is added to y before every containment test. Display coordinates grow
	// downwards, so a point on the top edge of a display moves into its interior.
	BoundaryNudge = 1e-5

	DefaultRecheckInterval = 1500 * time.Millisecond
)

// Inside reports whether p lies in r once nudged by BoundaryNudge.
func Inside(r display.Rect, p display.Point) bool {
	return r.Contains(display.Point{X: p.X, Y: p.Y + BoundaryNudge})
}

type Options struct {
	Registry display.Registry
	Enabled  display.Set
	// RecheckInterval bounds how long the cached display is trusted without a full rescan.
	RecheckInterval time.Duration
	Clock           func() time.Time
}

// Machine is not safe for concurrent use; it belongs to the goroutine applying overlay updates.
type Machine struct {
	registry display.Registry
	enabled  display.Set
	recheck  time.Duration
	clock    func() time.Time

	current *display.Display
	visible bool
	// framed is set when the last recompute was a full rescan, which also checks visible frames.
	framed     bool
	displays   []display.Display
	last       display.Point
	hasLast    bool
	recomputed time.Time

	registryFailing bool
}

func New(opts Options) *Machine {
	recheck := opts.RecheckInterval
	if recheck <= 0 {
		recheck = DefaultRecheckInterval
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Machine{
		registry: opts.Registry,
		enabled:  opts.Enabled,
		recheck:  recheck,
		clock:    clock,
	}
}

// Step feeds the latest pointer position and returns the resulting visibility.
func (m *Machine) Step(p display.Point) bool {
	m.last = p
	m.hasLast = true

	now := m.clock()
	if m.recomputed.IsZero() || now.Sub(m.recomputed) > m.recheck {
		m.revalidate(p, now)
		return m.visible
	}

	if m.current != nil && Inside(m.current.Bounds, p) {
		return m.visible
	}

	m.rescan(p, now)
	return m.visible
}

// SetEnabled replaces the enabled set and recomputes visibility against the current display
// without waiting for the next pointer event. It applies the same test as the last recompute,
// so a pointer hidden in a panel strip by the full rescan stays hidden.
func (m *Machine) SetEnabled(set display.Set) bool {
	m.enabled = set
	m.visible = m.current != nil &&
		set.Contains(m.current.ID) &&
		m.hasLast && Inside(m.current.Bounds, m.last)
	if m.visible && m.framed {
		m.visible = m.inFrame(m.displays, m.last)
	}
	return m.visible
}

func (m *Machine) Visible() bool { return m.visible }

func (m *Machine) Enabled() display.Set { return m.enabled }

// Current returns the display the pointer was last confirmed inside.
func (m *Machine) Current() (display.Display, bool) {
	if m.current == nil {
		return display.Display{}, false
	}
	return *m.current, true
}

// rescan runs after a display boundary crossing.
func (m *Machine) rescan(p display.Point, now time.Time) {
	displays, ok := m.list()
	m.recomputed = now
	m.framed = false
	if !ok {
		m.setCurrent(nil)
		m.visible = false
		return
	}

	m.setCurrent(find(displays, p))
	m.visible = m.current != nil && m.enabled.Contains(m.current.ID)
}

// revalidate ignores the cached display and checks the pointer against the visible frame of
// every enabled display. Displays that went away drop out here.
func (m *Machine) revalidate(p display.Point, now time.Time) {
	displays, ok := m.list()
	m.recomputed = now
	m.framed = ok
	if !ok {
		m.setCurrent(nil)
		m.visible = false
		return
	}

	m.setCurrent(find(displays, p))
	m.visible = m.inFrame(displays, p) && m.current != nil && m.enabled.Contains(m.current.ID)
}

// inFrame reports whether p lies in the visible frame of some enabled display.
func (m *Machine) inFrame(displays []display.Display, p display.Point) bool {
	for _, d := range displays {
		if m.enabled.Contains(d.ID) && Inside(d.Visible, p) {
			return true
		}
	}
	return false
}

func (m *Machine) list() ([]display.Display, bool) {
	displays, err := m.registry.Displays()
	if err != nil {
		if !m.registryFailing {
			log.Warn().Err(err).Msg("listing displays failed, hiding overlay")
		}
		m.registryFailing = true
		m.displays = nil
		return nil, false
	}
	m.registryFailing = false
	m.displays = display.Sorted(displays)
	return m.displays, true
}

func (m *Machine) setCurrent(d *display.Display) {
	switch {
	case d == nil && m.current != nil:
		log.Debug().Uint32("display", uint32(m.current.ID)).Msg("pointer left all displays")
	case d != nil && (m.current == nil || m.current.ID != d.ID):
		log.Debug().
			Uint32("display", uint32(d.ID)).
			Str("name", d.Name).
			Bool("enabled", m.enabled.Contains(d.ID)).
			Msg("pointer entered display")
	}
	m.current = d
}

// find returns the first display, in the given order, whose bounds contain p.
func find(sorted []display.Display, p display.Point) *display.Display {
	for i := range sorted {
		if Inside(sorted[i].Bounds, p) {
			d := sorted[i]
			return &d
		}
	}
	return nil
}
