package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tutorialhub/backend/internal/metrics"
	"github.com/tutorialhub/backend/internal/models"
	"github.com/tutorialhub/backend/internal/query"
	repo "github.com/tutorialhub/backend/internal/repository"
	"github.com/tutorialhub/backend/internal/slug"
	"github.com/tutorialhub/backend/internal/worker"
)

type TutorialService struct {
	tutorials  repo.Tutorials
	categories repo.Categories
	languages  repo.Languages
	wp         *worker.Pool
}

func NewTutorialService(t repo.Tutorials, c repo.Categories, l repo.Languages, wp *worker.Pool) *TutorialService {
	return &TutorialService{tutorials: t, categories: c, languages: l, wp: wp}
}

// ListPublic returns published tutorials in the reduced listing projection.
func (s *TutorialService) ListPublic(ctx context.Context, p query.Params) ([]models.ListItem, query.Meta, error) {
	c := query.Compose(p, query.Options{})
	tuts, total, err := s.tutorials.List(ctx, c)
	if err != nil {
		return nil, query.Meta{}, err
	}
	items := make([]models.ListItem, 0, len(tuts))
	for i := range tuts {
		items = append(items, tuts[i].ListItem())
	}
	return items, query.BuildMeta(c.Page, c.Limit, total), nil
}

// GetBySlug returns a published tutorial and bumps its view counter. The
// bump is a single atomic statement; under racing readers a duplicate count
// is possible but never a lost one.
func (s *TutorialService) GetBySlug(ctx context.Context, slugStr string) (models.Tutorial, error) {
	t, err := s.tutorials.GetBySlug(ctx, slugStr, true)
	if err != nil {
		return models.Tutorial{}, err
	}
	if err := s.tutorials.IncrementViews(ctx, t.ID); err != nil {
		slog.Warn("view increment failed", "tutorial", t.ID, "err", err)
	} else {
		t.Views++
		metrics.TutorialViews.Inc()
	}
	return t, nil
}

// Search is the broader substring/tag match, ordered by popularity.
func (s *TutorialService) Search(ctx context.Context, q string, p query.Params) ([]models.ListItem, query.Meta, error) {
	if strings.TrimSpace(q) == "" {
		return nil, query.Meta{}, invalid("search query is required")
	}
	p.Search = q
	if p.Sort == "" {
		p.Sort = query.SortPopular
	}
	c := query.Compose(p, query.Options{Substring: true})
	tuts, total, err := s.tutorials.List(ctx, c)
	if err != nil {
		return nil, query.Meta{}, err
	}
	items := make([]models.ListItem, 0, len(tuts))
	for i := range tuts {
		items = append(items, tuts[i].ListItem())
	}
	return items, query.BuildMeta(c.Page, c.Limit, total), nil
}

func (s *TutorialService) Create(ctx context.Context, t models.Tutorial, authorID string) (models.Tutorial, error) {
	if err := t.Validate(); err != nil {
		return models.Tutorial{}, invalid(err.Error())
	}
	if t.Slug == "" {
		t.Slug = slug.Make(t.Title)
	}
	if !slug.IsValid(t.Slug) {
		return models.Tutorial{}, invalid("cannot derive a valid slug from title")
	}
	uniq, err := s.uniqueSlug(ctx, t.Slug, "")
	if err != nil {
		return models.Tutorial{}, err
	}
	t.Slug = uniq
	t.AuthorID = &authorID
	t.Views = 0
	t.Likes = 0

	created, err := s.tutorials.Create(ctx, t)
	if err != nil {
		return models.Tutorial{}, err
	}
	s.refreshUsageCounts()
	return created, nil
}

// UpdateInput is a partial patch; nil fields are left untouched.
type UpdateInput struct {
	Title         *string                `json:"title"`
	Slug          *string                `json:"slug"`
	Category      *string                `json:"category"`
	Content       *string                `json:"content"`
	Excerpt       *string                `json:"excerpt"`
	CodeExamples  *[]models.CodeExample  `json:"code_examples"`
	ContentBlocks *[]models.ContentBlock `json:"content_blocks"`
	Tags          *[]string              `json:"tags"`
	Difficulty    *models.Difficulty     `json:"difficulty"`
	ReadTime      *int                   `json:"read_time"`
	IsPublished   *bool                  `json:"is_published"`
}

func (s *TutorialService) Update(ctx context.Context, id string, in UpdateInput) (models.Tutorial, error) {
	t, err := s.tutorials.GetByID(ctx, id)
	if err != nil {
		return models.Tutorial{}, err
	}

	titleChanged := false
	if in.Title != nil {
		titleChanged = *in.Title != t.Title
		t.Title = *in.Title
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Content != nil {
		t.Content = *in.Content
	}
	if in.Excerpt != nil {
		t.Excerpt = *in.Excerpt
	}
	if in.CodeExamples != nil {
		t.CodeExamples = *in.CodeExamples
	}
	if in.ContentBlocks != nil {
		t.ContentBlocks = *in.ContentBlocks
	}
	if in.Tags != nil {
		t.Tags = *in.Tags
	}
	if in.Difficulty != nil {
		t.Difficulty = *in.Difficulty
	}
	if in.ReadTime != nil {
		t.ReadTime = *in.ReadTime
	}
	if in.IsPublished != nil {
		t.IsPublished = *in.IsPublished
	}

	switch {
	case in.Slug != nil && *in.Slug != "":
		if !slug.IsValid(*in.Slug) {
			return models.Tutorial{}, invalid("invalid slug")
		}
		t.Slug = *in.Slug
	case titleChanged:
		derived := slug.Make(t.Title)
		if derived != "" && derived != t.Slug {
			uniq, err := s.uniqueSlug(ctx, derived, t.ID)
			if err != nil {
				return models.Tutorial{}, err
			}
			t.Slug = uniq
		}
	}

	if err := t.Validate(); err != nil {
		return models.Tutorial{}, invalid(err.Error())
	}

	updated, err := s.tutorials.Update(ctx, t)
	if err != nil {
		return models.Tutorial{}, err
	}
	s.refreshUsageCounts()
	return updated, nil
}

func (s *TutorialService) Delete(ctx context.Context, id string) error {
	if err := s.tutorials.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshUsageCounts()
	return nil
}

func (s *TutorialService) AdminList(ctx context.Context, p query.Params) ([]models.Tutorial, query.Meta, error) {
	c := query.Compose(p, query.Options{Admin: true})
	tuts, total, err := s.tutorials.List(ctx, c)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return tuts, query.BuildMeta(c.Page, c.Limit, total), nil
}

func (s *TutorialService) AdminGet(ctx context.Context, id string) (models.Tutorial, error) {
	return s.tutorials.GetByID(ctx, id)
}

func (s *TutorialService) CategoryCounts(ctx context.Context) ([]repo.CategoryCount, error) {
	return s.tutorials.CategoryCounts(ctx)
}

func (s *TutorialService) Stats(ctx context.Context) (repo.Stats, error) {
	return s.tutorials.Stats(ctx)
}

// uniqueSlug appends -2, -3, ... until the slug is free.
func (s *TutorialService) uniqueSlug(ctx context.Context, base, excludeID string) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		taken, err := s.tutorials.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// refreshUsageCounts updates the denormalized taxonomy counters in the
// background. There is no referential integrity between tutorials and the
// taxonomy tables; the counters are advisory.
func (s *TutorialService) refreshUsageCounts() {
	s.wp.Submit(func() {
		ctx := context.Background()
		if err := s.categories.RefreshUsageCounts(ctx); err != nil {
			slog.Warn("category usage recount failed", "err", err)
		}
		if err := s.languages.RefreshUsageCounts(ctx); err != nil {
			slog.Warn("language usage recount failed", "err", err)
		}
	})
}
