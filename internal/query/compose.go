// Package query translates listing parameters into SQL filter and sort
// fragments. The public listing, the search endpoint and the admin listing
// all go through Compose so their semantics cannot drift apart.
package query

import (
	"strconv"
	"strings"
)

type Sort string

const (
	SortNewest  Sort = "newest"
	SortOldest  Sort = "oldest"
	SortPopular Sort = "popular"
	SortTitle   Sort = "title"
)

// Publication status filter, admin listing only.
const (
	StatusAll       = "all"
	StatusPublished = "published"
	StatusDraft     = "draft"
)

const (
	DefaultPageSize   = 10
	MaxPublicPageSize = 50
	MaxAdminPageSize  = 100
)

// Params are the raw listing parameters as parsed from the query string.
type Params struct {
	Category string
	Search   string
	Sort     Sort
	Page     int
	PageSize int
	Status   string
}

// Options select which listing variant is being composed.
type Options struct {
	// Admin drops the published-only restriction, honors Params.Status and
	// raises the page-size cap.
	Admin bool
	// Substring switches search from indexed full-text to case-insensitive
	// substring matching across title/content/category plus tag membership.
	// The dedicated search endpoint wants the broader match.
	Substring bool
}

// Compiled is a ready-to-splice query tail: WHERE conditions with positional
// args, an ORDER BY expression and LIMIT/OFFSET derived from the page.
type Compiled struct {
	Where   string
	Args    []any
	OrderBy string
	Limit   int
	Offset  int
	Page    int
}

// Compose normalizes the parameters and builds the query fragments.
func Compose(p Params, o Options) Compiled {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if o.Admin {
		switch p.Status {
		case StatusPublished:
			conds = append(conds, "is_published")
		case StatusDraft:
			conds = append(conds, "NOT is_published")
		}
	} else {
		conds = append(conds, "is_published")
	}

	// "all" is a sentinel meaning no category filter.
	if p.Category != "" && p.Category != "all" {
		conds = append(conds, "category = "+arg(p.Category))
	}

	if s := strings.TrimSpace(p.Search); s != "" {
		if o.Substring {
			ph := arg("%" + s + "%")
			conds = append(conds,
				"(title ILIKE "+ph+
					" OR content ILIKE "+ph+
					" OR category ILIKE "+ph+
					" OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE "+ph+"))")
		} else {
			tsq := arg(s)
			like := arg("%" + s + "%")
			conds = append(conds,
				"(search_tsv @@ websearch_to_tsquery('english', "+tsq+")"+
					" OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE "+like+"))")
		}
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	maxSize := MaxPublicPageSize
	if o.Admin {
		maxSize = MaxAdminPageSize
	}
	if size > maxSize {
		size = maxSize
	}

	return Compiled{
		Where:   strings.Join(conds, " AND "),
		Args:    args,
		OrderBy: orderBy(p.Sort),
		Limit:   size,
		Offset:  (page - 1) * size,
		Page:    page,
	}
}

func orderBy(s Sort) string {
	switch s {
	case SortOldest:
		return "created_at ASC"
	case SortPopular:
		return "views DESC, likes DESC"
	case SortTitle:
		return "title ASC"
	default: // newest
		return "created_at DESC"
	}
}

// Meta is the pagination envelope returned alongside every listing.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// BuildMeta derives the pagination envelope from a total row count.
func BuildMeta(page, pageSize int, total int64) Meta {
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return Meta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pages,
		HasNext:    page < pages,
		HasPrev:    page > 1,
	}
}
