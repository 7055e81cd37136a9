package web

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/listing"
	"github.com/Zachkp/portfolio/internal/scrollspy"
)

// Assumed desktop viewport used to place deep links server-side.
const (
	navHeight      = 64
	viewportWidth  = 1280
	viewportHeight = 800
)

const (
	counterDuration = 2 * time.Second
	counterSteps    = 24
)

var navLabels = map[string]string{
	"hero":           "// 01 home",
	"experience":     "// 02 experience",
	"projects":       "// 03 work",
	"certifications": "// 04 certifications",
	"blogs":          "// 05 blogs",
	"contact":        "// 06 contact",
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"add":  func(a, b int) int { return a + b },
	"ints": func(xs []int) string {
		parts := make([]string, len(xs))
		for i, x := range xs {
			parts[i] = strconv.Itoa(x)
		}
		return strings.Join(parts, ",")
	},
}

// sectionView is one paginated section plus the links that change its state.
type sectionView[T any] struct {
	ID    string
	Param string
	listing.View[T]
}

func (s sectionView[T]) values(category string, page int) url.Values {
	v := url.Values{}
	if category != "" && category != listing.All {
		v.Set("category", category)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return v
}

// FragmentURL is the HTMX endpoint for the given state.
func (s sectionView[T]) FragmentURL(category string, page int) string {
	q := s.values(category, page).Encode()
	if q == "" {
		return "/sections/" + s.ID
	}
	return "/sections/" + s.ID + "?" + q
}

// PageURL is the no-JavaScript equivalent of FragmentURL.
func (s sectionView[T]) PageURL(category string, page int) string {
	v := url.Values{"section": {s.ID}}
	for k, vs := range s.values(category, page) {
		v[s.Param+"_"+k] = vs
	}
	return "/?" + v.Encode() + "#" + s.ID
}

// knownCategory is Category when it is one the section offers, "unknown"
// otherwise. It keeps metric label values bounded.
func (s sectionView[T]) knownCategory() string {
	for _, c := range s.Categories {
		if c == s.Category {
			return c
		}
	}
	return "unknown"
}

type listQuery struct {
	Category string
	Page     int
}

func parseQuery(category, page string) listQuery {
	n, err := strconv.Atoi(page)
	if err != nil || n < 1 {
		n = 1
	}
	return listQuery{Category: category, Page: n}
}

func buildSection[T listing.Item](id, param string, items []T, size int, withFeatured bool, q listQuery) sectionView[T] {
	l := listing.New(items, size, withFeatured)
	l.SelectCategory(q.Category)
	l.SetPage(q.Page)
	return sectionView[T]{ID: id, Param: param, View: l.View()}
}

type counter struct {
	Label     string
	Value     int
	Suffix    string
	Highlight bool
	Frames    []int
}

func counters(s *content.Store) (hero, about []counter) {
	for _, m := range s.HeroMetrics() {
		hero = append(hero, counter{
			Label:     m.Label,
			Value:     m.Value,
			Suffix:    m.Suffix,
			Highlight: m.Highlight,
			Frames:    content.Keyframes(m.Value, counterDuration, counterSteps),
		})
	}
	for _, st := range s.Stats() {
		about = append(about, counter{
			Label:  st.Label,
			Value:  st.Value,
			Suffix: st.Suffix,
			Frames: content.Keyframes(st.Value, counterDuration, counterSteps),
		})
	}
	return hero, about
}

type navItem struct {
	ID     string
	Label  string
	Active bool
}

func nav(active string) []navItem {
	items := make([]navItem, len(scrollspy.Sections))
	for i, id := range scrollspy.Sections {
		items[i] = navItem{ID: id, Label: navLabels[id], Active: id == active}
	}
	return items
}

type pageData struct {
	Personal   content.PersonalInfo
	About      string
	Metrics    []counter
	Stats      []counter
	Skills     []content.SkillCategory
	Experience []content.Experience
	Education  []content.Education

	Projects       sectionView[content.Project]
	Certifications sectionView[content.Certification]
	Blogs          sectionView[content.Post]

	Nav      []navItem
	Active   string
	ScrollY  int
	Scrolled bool
	Year     int
}

func rows(n, perRow int) int {
	if n == 0 {
		return 1
	}
	return (n + perRow - 1) / perRow
}

// layout estimates where each rendered section sits on a desktop viewport.
// The order matches the template.
func layout(d *pageData) scrollspy.Layout {
	heights := []struct {
		id string
		h  int
	}{
		{"hero", 900},
		{"skills", 240 + 140*len(d.Skills)},
		{"experience", 240 + 280*len(d.Experience)},
		{"projects", 360 + 460*rows(len(d.Projects.Page.Items), 3)},
		{"certifications", 360 + 380*rows(len(d.Certifications.Page.Items), 2)},
		{"education", 240 + 160*len(d.Education)},
		{"blogs", 360 + 300*rows(len(d.Blogs.Page.Items), 3)},
		{"contact", 720},
	}
	l := make(scrollspy.Layout, len(heights))
	top := 0
	for _, s := range heights {
		l[s.id] = scrollspy.Rect{Top: top, Height: s.h}
		top += s.h
	}
	return l
}

// locate scrolls a simulated viewport to the requested section and reports
// which section the nav highlights there.
func locate(l scrollspy.Layout, section string) (y int, active string) {
	vp := scrollspy.NewViewport(l, scrollspy.Sections, viewportHeight, scrollspy.DefaultMargin)
	tr := scrollspy.New(scrollspy.Sections, vp)
	tr.Start()
	defer tr.Stop()

	if off, ok := scrollspy.ScrollOffset(l, section, navHeight, viewportWidth, 0); ok {
		vp.ScrollTo(off)
	}
	return vp.Y(), tr.Active()
}
