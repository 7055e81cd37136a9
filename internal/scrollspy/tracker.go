// Package scrollspy tracks which page section is in view so the navigation
// can highlight it.
package scrollspy

import "sync"

// Observer delivers intersection notifications for one section. ok is false
// when the section does not exist; cancel stops further callbacks.
type Observer interface {
	Observe(id string, onIntersect func(id string)) (cancel func(), ok bool)
}

// Sections is the fixed navigation order of the page.
var Sections = []string{"hero", "experience", "projects", "certifications", "blogs", "contact"}

// Tracker holds the active section. The most recent intersection wins.
type Tracker struct {
	ids []string
	obs Observer

	mu      sync.Mutex
	active  string
	cancels []func()
	started bool
}

// New returns a tracker over ids. Active reports ids[0] until something intersects.
func New(ids []string, obs Observer) *Tracker {
	t := &Tracker{ids: append([]string(nil), ids...), obs: obs}
	if len(ids) > 0 {
		t.active = ids[0]
	}
	return t
}

// Start subscribes one observation per section. Sections the observer does
// not know are skipped.
func (t *Tracker) Start() {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()

	var cancels []func()
	for _, id := range t.ids {
		cancel, ok := t.obs.Observe(id, t.set)
		if !ok {
			continue
		}
		cancels = append(cancels, cancel)
	}

	t.mu.Lock()
	t.cancels = cancels
	t.mu.Unlock()
}

// Stop releases every observation. Safe to call more than once.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancels := t.cancels
	t.cancels = nil
	t.started = false
	t.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Active returns the section currently considered in view.
func (t *Tracker) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Observed is the number of live observations.
func (t *Tracker) Observed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cancels)
}

func (t *Tracker) set(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, known := range t.ids {
		if known == id {
			t.active = id
			return
		}
	}
}
