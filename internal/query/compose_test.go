package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposePublicDefaults(t *testing.T) {
	c := Compose(Params{}, Options{})

	assert.Equal(t, "is_published", c.Where)
	assert.Empty(t, c.Args)
	assert.Equal(t, "created_at DESC", c.OrderBy)
	assert.Equal(t, DefaultPageSize, c.Limit)
	assert.Equal(t, 0, c.Offset)
	assert.Equal(t, 1, c.Page)
}

func TestComposeCategoryAllEqualsOmitted(t *testing.T) {
	all := Compose(Params{Category: "all"}, Options{})
	omitted := Compose(Params{}, Options{})

	assert.Equal(t, omitted.Where, all.Where)
	assert.Equal(t, omitted.Args, all.Args)
}

func TestComposeCategoryFilter(t *testing.T) {
	c := Compose(Params{Category: "JavaScript"}, Options{})

	assert.Equal(t, "is_published AND category = $1", c.Where)
	assert.Equal(t, []any{"JavaScript"}, c.Args)
}

func TestComposeSorts(t *testing.T) {
	tests := []struct {
		sort Sort
		want string
	}{
		{SortNewest, "created_at DESC"},
		{SortOldest, "created_at ASC"},
		{SortPopular, "views DESC, likes DESC"},
		{SortTitle, "title ASC"},
		{Sort("bogus"), "created_at DESC"},
		{Sort(""), "created_at DESC"},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			assert.Equal(t, tt.want, Compose(Params{Sort: tt.sort}, Options{}).OrderBy)
		})
	}
}

func TestComposeSubstringSearch(t *testing.T) {
	c := Compose(Params{Search: "python"}, Options{Substring: true})

	assert.Contains(t, c.Where, "title ILIKE $1")
	assert.Contains(t, c.Where, "content ILIKE $1")
	assert.Contains(t, c.Where, "category ILIKE $1")
	assert.Contains(t, c.Where, "unnest(tags)")
	assert.Equal(t, []any{"%python%"}, c.Args)
}

func TestComposeFullTextSearch(t *testing.T) {
	c := Compose(Params{Search: "goroutines"}, Options{})

	assert.Contains(t, c.Where, "websearch_to_tsquery('english', $1)")
	assert.Contains(t, c.Where, "tag ILIKE $2")
	assert.Equal(t, []any{"goroutines", "%goroutines%"}, c.Args)
}

func TestComposePageSizeClamp(t *testing.T) {
	pub := Compose(Params{PageSize: 500}, Options{})
	adm := Compose(Params{PageSize: 500}, Options{Admin: true})

	assert.Equal(t, MaxPublicPageSize, pub.Limit)
	assert.Equal(t, MaxAdminPageSize, adm.Limit)
}

func TestComposePagination(t *testing.T) {
	c := Compose(Params{Page: 3, PageSize: 20}, Options{})

	assert.Equal(t, 20, c.Limit)
	assert.Equal(t, 40, c.Offset)
	assert.Equal(t, 3, c.Page)
}

func TestComposeAdminStatus(t *testing.T) {
	assert.Equal(t, "", Compose(Params{Status: StatusAll}, Options{Admin: true}).Where)
	assert.Equal(t, "", Compose(Params{}, Options{Admin: true}).Where)
	assert.Equal(t, "is_published", Compose(Params{Status: StatusPublished}, Options{Admin: true}).Where)
	assert.Equal(t, "NOT is_published", Compose(Params{Status: StatusDraft}, Options{Admin: true}).Where)
}

func TestBuildMeta(t *testing.T) {
	m := BuildMeta(2, 10, 35)

	assert.Equal(t, int64(35), m.Total)
	assert.Equal(t, 4, m.TotalPages)
	assert.True(t, m.HasNext)
	assert.True(t, m.HasPrev)

	first := BuildMeta(1, 10, 5)
	assert.Equal(t, 1, first.TotalPages)
	assert.False(t, first.HasNext)
	assert.False(t, first.HasPrev)

	empty := BuildMeta(1, 10, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
