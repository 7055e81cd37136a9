package listing

// FilterState is the category/page pair owned by one List.
type FilterState struct {
	Category string
	Page     int
}

// List is a filterable, paginated view over one dataset. Each section owns
// its own List; nothing is shared between instances.
type List[T Item] struct {
	items        []T
	pageSize     int
	withFeatured bool
	categories   []string
	state        FilterState
}

// New builds a List showing pageSize records per page, starting at "All", page 1.
func New[T Item](items []T, pageSize int, withFeatured bool) *List[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &List[T]{
		items:        items,
		pageSize:     pageSize,
		withFeatured: withFeatured,
		categories:   Categories(items, withFeatured),
		state:        FilterState{Category: All, Page: 1},
	}
}

// SelectCategory switches the filter and always goes back to page 1.
// An unknown category is kept as is and simply matches nothing.
func (l *List[T]) SelectCategory(category string) {
	if category == "" {
		category = All
	}
	l.state.Category = category
	l.state.Page = 1
}

// SetPage moves to page, clamped to the pages of the current filter.
func (l *List[T]) SetPage(page int) {
	total := TotalPages(Count(l.items, l.state.Category), l.pageSize)
	l.state.Page = clamp(page, 1, total)
}

// State returns the current filter state.
func (l *List[T]) State() FilterState { return l.state }

// View is everything a section needs to render the list.
type View[T any] struct {
	Category   string
	Categories []string
	Counts     map[string]int
	Page       Page[T]
	Empty      bool
	ShowPager  bool
}

// View recomputes the visible page for the current state.
func (l *List[T]) View() View[T] {
	filtered := Filter(l.items, l.state.Category)
	page := Paginate(filtered, l.pageSize, l.state.Page)
	l.state.Page = page.Number

	counts := make(map[string]int, len(l.categories))
	for _, c := range l.categories {
		counts[c] = Count(l.items, c)
	}
	return View[T]{
		Category:   l.state.Category,
		Categories: l.categories,
		Counts:     counts,
		Page:       page,
		Empty:      len(filtered) == 0,
		ShowPager:  page.TotalPages > 1,
	}
}
