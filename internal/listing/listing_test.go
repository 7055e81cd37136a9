package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	title    string
	tags     []string
	featured bool
}

func (r rec) Categories() []string { return r.tags }
func (r rec) IsFeatured() bool     { return r.featured }

func recs(n int, category string) []rec {
	out := make([]rec, n)
	for i := range out {
		out[i] = rec{title: fmt.Sprintf("%s-%d", category, i+1), tags: []string{category}}
	}
	return out
}

func titles(rs []rec) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.title
	}
	return out
}

var sample = []rec{
	{title: "a", tags: []string{"Web"}, featured: true},
	{title: "b", tags: []string{"Go"}},
	{title: "c", tags: []string{"Web"}},
	{title: "d", tags: []string{"web"}, featured: true},
	{title: "e", tags: []string{"Go", "Linux"}},
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"All", "Featured", "Web", "Go", "web", "Linux"}, Categories(sample, true))
	assert.Equal(t, []string{"All", "Web", "Go", "web", "Linux"}, Categories(sample, false))
	assert.Equal(t, []string{"All"}, Categories([]rec(nil), false))
}

func TestFilter(t *testing.T) {
	t.Run("All keeps everything in order", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, titles(Filter(sample, All)))
	})
	t.Run("Featured keeps featured only", func(t *testing.T) {
		assert.Equal(t, []string{"a", "d"}, titles(Filter(sample, Featured)))
	})
	t.Run("category match is exact and case-sensitive", func(t *testing.T) {
		assert.Equal(t, []string{"a", "c"}, titles(Filter(sample, "Web")))
		assert.Equal(t, []string{"d"}, titles(Filter(sample, "web")))
		assert.Empty(t, Filter(sample, "WEB"))
	})
	t.Run("any tag matches", func(t *testing.T) {
		assert.Equal(t, []string{"e"}, titles(Filter(sample, "Linux")))
	})
	t.Run("empty dataset", func(t *testing.T) {
		assert.Empty(t, Filter([]rec{}, All))
		assert.Empty(t, Filter([]rec{}, "Go"))
	})
}

func TestCountMatchesFilter(t *testing.T) {
	for _, c := range append(Categories(sample, true), "missing") {
		assert.Equal(t, len(Filter(sample, c)), Count(sample, c), c)
	}
}

func TestPaginateSevenByThree(t *testing.T) {
	items := recs(7, "p")

	p1 := Paginate(items, 3, 1)
	p2 := Paginate(items, 3, 2)
	p3 := Paginate(items, 3, 3)

	assert.Equal(t, []string{"p-1", "p-2", "p-3"}, titles(p1.Items))
	assert.Equal(t, []string{"p-4", "p-5", "p-6"}, titles(p2.Items))
	assert.Equal(t, []string{"p-7"}, titles(p3.Items))
	assert.Equal(t, 3, p1.TotalPages)
	assert.Equal(t, 7, p3.Total)
	assert.False(t, p1.HasPrev())
	assert.True(t, p1.HasNext())
	assert.False(t, p3.HasNext())
	assert.Equal(t, []int{1, 2, 3}, p1.Numbers())
}

func TestPaginateReconstructsInput(t *testing.T) {
	for n := 0; n <= 13; n++ {
		for size := 1; size <= 5; size++ {
			items := recs(n, "x")
			first := Paginate(items, size, 1)
			want := n / size
			if n%size != 0 || n == 0 {
				want++
			}
			require.Equal(t, want, first.TotalPages, "n=%d size=%d", n, size)

			var got []rec
			for p := 1; p <= first.TotalPages; p++ {
				got = append(got, Paginate(items, size, p).Items...)
			}
			assert.Equal(t, titles(items), titles(got), "n=%d size=%d", n, size)
		}
	}
}

func TestPaginateClampsPage(t *testing.T) {
	items := recs(5, "x")

	assert.Equal(t, 1, Paginate(items, 2, 0).Number)
	assert.Equal(t, 1, Paginate(items, 2, -4).Number)
	last := Paginate(items, 2, 99)
	assert.Equal(t, 3, last.Number)
	assert.Equal(t, []string{"x-5"}, titles(last.Items))

	empty := Paginate([]rec{}, 4, 3)
	assert.Equal(t, 1, empty.Number)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)
}

func TestPaginateCoercesPageSize(t *testing.T) {
	p := Paginate(recs(3, "x"), 0, 2)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, []string{"x-2"}, titles(p.Items))
}

func TestPageItemsCannotGrowIntoNextPage(t *testing.T) {
	items := recs(4, "x")
	p := Paginate(items, 2, 1)
	_ = append(p.Items, rec{title: "intruder"})
	assert.Equal(t, "x-3", items[2].title)
}
