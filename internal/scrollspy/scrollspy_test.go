package scrollspy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Six 1000px sections stacked from the top of the document.
var page = Layout{
	"hero":           {Top: 0, Height: 1000},
	"experience":     {Top: 1000, Height: 1000},
	"projects":       {Top: 2000, Height: 1000},
	"certifications": {Top: 3000, Height: 1000},
	"blogs":          {Top: 4000, Height: 1000},
	"contact":        {Top: 5000, Height: 1000},
}

// fakeObserver lets tests fire callbacks directly.
type fakeObserver struct {
	known     map[string]bool
	callbacks map[string]func(string)
	cancelled []string
}

func newFakeObserver(ids ...string) *fakeObserver {
	f := &fakeObserver{known: map[string]bool{}, callbacks: map[string]func(string){}}
	for _, id := range ids {
		f.known[id] = true
	}
	return f
}

func (f *fakeObserver) Observe(id string, fn func(string)) (func(), bool) {
	if !f.known[id] {
		return nil, false
	}
	f.callbacks[id] = fn
	return func() {
		f.cancelled = append(f.cancelled, id)
		delete(f.callbacks, id)
	}, true
}

func (f *fakeObserver) fire(id string) {
	if fn, ok := f.callbacks[id]; ok {
		fn(id)
	}
}

func TestTrackerDefaultsToFirstSection(t *testing.T) {
	tr := New(Sections, newFakeObserver())
	assert.Equal(t, "hero", tr.Active())
	assert.Equal(t, "", New(nil, newFakeObserver()).Active())
}

func TestTrackerLastWriteWins(t *testing.T) {
	obs := newFakeObserver(Sections...)
	tr := New(Sections, obs)
	tr.Start()

	obs.fire("projects")
	obs.fire("experience")
	assert.Equal(t, "experience", tr.Active())
}

func TestTrackerSkipsMissingSections(t *testing.T) {
	obs := newFakeObserver("hero", "contact")
	tr := New(Sections, obs)
	tr.Start()

	assert.Equal(t, 2, tr.Observed())
	obs.fire("contact")
	assert.Equal(t, "contact", tr.Active())
}

func TestTrackerStopReleasesEveryObservation(t *testing.T) {
	obs := newFakeObserver(Sections...)
	tr := New(Sections, obs)
	tr.Start()
	tr.Stop()
	tr.Stop()

	assert.ElementsMatch(t, Sections, obs.cancelled)
	assert.Equal(t, 0, tr.Observed())
	obs.fire("blogs")
	assert.Equal(t, "hero", tr.Active())
}

func TestTrackerIgnoresUnknownIDs(t *testing.T) {
	obs := newFakeObserver("hero")
	tr := New([]string{"hero"}, obs)
	tr.Start()
	obs.callbacks["hero"]("somewhere-else")
	assert.Equal(t, "hero", tr.Active())
}

func TestViewportDrivesTracker(t *testing.T) {
	vp := NewViewport(page, Sections, 1000, DefaultMargin)
	tr := New(Sections, vp)
	tr.Start()
	defer tr.Stop()

	// At y=0 the band is [200, 300): hero.
	assert.Equal(t, "hero", tr.Active())

	vp.ScrollTo(2000)
	assert.Equal(t, "projects", tr.Active())

	// Band [1050, 1150) is inside experience.
	vp.ScrollTo(850)
	assert.Equal(t, "experience", tr.Active())

	vp.ScrollTo(4900)
	assert.Equal(t, "contact", tr.Active())
}

func TestViewportOnlyFiresOnEntry(t *testing.T) {
	vp := NewViewport(page, Sections, 1000, DefaultMargin)
	var calls []string
	_, ok := vp.Observe("projects", func(id string) { calls = append(calls, id) })
	require.True(t, ok)

	vp.ScrollTo(2000)
	vp.ScrollTo(2100)
	assert.Equal(t, []string{"projects"}, calls)

	vp.ScrollTo(0)
	vp.ScrollTo(2000)
	assert.Equal(t, []string{"projects", "projects"}, calls)
}

func TestViewportCancelStopsCallbacks(t *testing.T) {
	vp := NewViewport(page, Sections, 1000, DefaultMargin)
	fired := false
	cancel, ok := vp.Observe("blogs", func(string) { fired = true })
	require.True(t, ok)
	cancel()

	vp.ScrollTo(4000)
	assert.False(t, fired)
	assert.Equal(t, 0, vp.Subscriptions())
}

func TestViewportUnknownSection(t *testing.T) {
	vp := NewViewport(page, Sections, 1000, DefaultMargin)
	_, ok := vp.Observe("skills", func(string) {})
	assert.False(t, ok)
}

func TestViewportSimultaneousEntryFollowsOrder(t *testing.T) {
	small := Layout{"a": {Top: 500, Height: 10}, "b": {Top: 520, Height: 10}}
	vp := NewViewport(small, []string{"a", "b"}, 1000, Margin{})
	tr := New([]string{"a", "b"}, vp)
	tr.Start()

	vp.ScrollTo(5000)
	vp.ScrollTo(0)
	assert.Equal(t, "b", tr.Active())
}

func TestScrolled(t *testing.T) {
	assert.False(t, Scrolled(0))
	assert.False(t, Scrolled(50))
	assert.True(t, Scrolled(51))
}

func TestScrollOffset(t *testing.T) {
	y, ok := ScrollOffset(page, "#projects", 72, 1280, 0)
	require.True(t, ok)
	assert.Equal(t, 2000-72-18, y)

	y, ok = ScrollOffset(page, "projects", 72, 375, 10)
	require.True(t, ok)
	assert.Equal(t, 2000-72-28-10, y)

	y, ok = ScrollOffset(page, "hero", 72, 1280, 0)
	require.True(t, ok)
	assert.Equal(t, 0, y)

	_, ok = ScrollOffset(page, "#", 72, 1280, 0)
	assert.False(t, ok)
	_, ok = ScrollOffset(page, "missing", 72, 1280, 0)
	assert.False(t, ok)
}
