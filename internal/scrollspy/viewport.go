package scrollspy

import (
	"strings"
	"sync"
)

// ScrolledThreshold is the scroll offset past which the nav gets a solid background.
const ScrolledThreshold = 50

// Scrolled reports whether the page is scrolled past ScrolledThreshold.
func Scrolled(y int) bool { return y > ScrolledThreshold }

// Rect is a section's vertical extent in document pixels.
type Rect struct {
	Top    int
	Height int
}

// Layout maps section ids to their extents.
type Layout map[string]Rect

// Margin shrinks the viewport before intersection tests, in percent of its
// height. The default keeps the band from 20% below the top to 70% above
// the bottom, so a section triggers once it reaches the upper-middle of the screen.
type Margin struct {
	TopPct    float64
	BottomPct float64
}

var DefaultMargin = Margin{TopPct: 20, BottomPct: 70}

type subscription struct {
	id           string
	fn           func(string)
	intersecting bool
	cancelled    bool
}

// Viewport is a geometry-backed Observer: it knows the page layout and the
// scroll position and fires callbacks when a section enters the margin band.
type Viewport struct {
	layout Layout
	order  []string
	height int
	margin Margin

	mu   sync.Mutex
	y    int
	subs []*subscription
}

// NewViewport creates a viewport of the given height over layout. order
// fixes the callback order when several sections enter at once.
func NewViewport(layout Layout, order []string, height int, margin Margin) *Viewport {
	return &Viewport{layout: layout, order: order, height: height, margin: margin}
}

// Observe implements Observer.
func (v *Viewport) Observe(id string, fn func(string)) (func(), bool) {
	if _, ok := v.layout[id]; !ok {
		return nil, false
	}
	s := &subscription{id: id, fn: fn}

	v.mu.Lock()
	v.subs = append(v.subs, s)
	fire := v.intersects(id)
	s.intersecting = fire
	v.mu.Unlock()

	// An observer reports the initial state once, as the browser primitive does.
	if fire {
		fn(id)
	}
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		s.cancelled = true
		for i, cur := range v.subs {
			if cur == s {
				v.subs = append(v.subs[:i], v.subs[i+1:]...)
				break
			}
		}
	}, true
}

// Subscriptions is the number of live observations.
func (v *Viewport) Subscriptions() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

// ScrollTo moves the viewport and notifies sections that started intersecting.
func (v *Viewport) ScrollTo(y int) {
	if y < 0 {
		y = 0
	}
	v.mu.Lock()
	v.y = y
	var fire []*subscription
	for _, id := range v.order {
		for _, s := range v.subs {
			if s.id != id {
				continue
			}
			now := v.intersects(id)
			if now && !s.intersecting {
				fire = append(fire, s)
			}
			s.intersecting = now
		}
	}
	v.mu.Unlock()

	for _, s := range fire {
		v.mu.Lock()
		cancelled := s.cancelled
		v.mu.Unlock()
		if !cancelled {
			s.fn(s.id)
		}
	}
}

// Y is the current scroll offset.
func (v *Viewport) Y() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.y
}

func (v *Viewport) intersects(id string) bool {
	r := v.layout[id]
	h := float64(v.height)
	top := float64(v.y) + h*v.margin.TopPct/100
	bottom := float64(v.y) + h - h*v.margin.BottomPct/100
	if bottom < top {
		return false
	}
	return float64(r.Top) < bottom && float64(r.Top+r.Height) > top
}

// MobileBreakpoint is the width below which the larger nav gap applies.
const MobileBreakpoint = 768

// ScrollOffset is the scroll position that brings section id just below the
// fixed nav bar. A leading "#" is ignored; ok is false for unknown sections.
func ScrollOffset(layout Layout, id string, navHeight, viewportWidth, extra int) (int, bool) {
	id = strings.TrimPrefix(id, "#")
	if id == "" {
		return 0, false
	}
	r, ok := layout[id]
	if !ok {
		return 0, false
	}
	gap := 18
	if viewportWidth < MobileBreakpoint {
		gap = 28
	}
	y := r.Top - (navHeight + gap + extra)
	if y < 0 {
		y = 0
	}
	return y, true
}
