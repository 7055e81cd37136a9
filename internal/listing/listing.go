// Package listing derives the visible slice of a dataset from a category
// filter and a page number. Every function here is total: empty inputs and
// out-of-range pages produce a valid, possibly empty, page.
package listing

// Sentinel categories that do not come from the data.
const (
	All      = "All"
	Featured = "Featured"
)

// Item is a record that can be filtered by category.
type Item interface {
	// Categories returns the record's category tags. Most records carry one.
	Categories() []string
	IsFeatured() bool
}

// Categories returns "All", then "Featured" when withFeatured is set, then
// every distinct category in first-seen order.
func Categories[T Item](items []T, withFeatured bool) []string {
	out := []string{All}
	if withFeatured {
		out = append(out, Featured)
	}
	seen := map[string]bool{All: true}
	if withFeatured {
		seen[Featured] = true
	}
	for _, it := range items {
		for _, c := range it.Categories() {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Filter returns the records matching category, in input order. Category
// comparison is exact and case-sensitive.
func Filter[T Item](items []T, category string) []T {
	switch category {
	case All:
		out := make([]T, len(items))
		copy(out, items)
		return out
	case Featured:
		var out []T
		for _, it := range items {
			if it.IsFeatured() {
				out = append(out, it)
			}
		}
		return out
	}
	var out []T
	for _, it := range items {
		if hasCategory(it, category) {
			out = append(out, it)
		}
	}
	return out
}

// Count is the number of records Filter would return for category.
func Count[T Item](items []T, category string) int {
	n := 0
	for _, it := range items {
		switch category {
		case All:
			n++
		case Featured:
			if it.IsFeatured() {
				n++
			}
		default:
			if hasCategory(it, category) {
				n++
			}
		}
	}
	return n
}

func hasCategory(it Item, category string) bool {
	for _, c := range it.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Page is one page of a filtered dataset.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	Total      int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Numbers lists 1..TotalPages for rendering pager buttons.
func (p Page[T]) Numbers() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// TotalPages is ceil(n/size), never less than one.
func TotalPages(n, size int) int {
	if size < 1 {
		size = 1
	}
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Paginate returns items[(page-1)*size : page*size]. The page number is
// clamped into [1, TotalPages] first, so the result is always a real page.
func Paginate[T any](items []T, size, page int) Page[T] {
	if size < 1 {
		size = 1
	}
	total := TotalPages(len(items), size)
	page = clamp(page, 1, total)

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:      items[start:end:end],
		Number:     page,
		TotalPages: total,
		Total:      len(items),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
