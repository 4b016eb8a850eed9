package services

import (
	"context"

	"github.com/tutorialhub/backend/internal/models"
	repo "github.com/tutorialhub/backend/internal/repository"
	"github.com/tutorialhub/backend/internal/slug"
)

// TaxonomyService manages the administrative lookup records. Slugs are
// re-derived whenever a name changes; renames do not cascade into tutorials,
// which reference taxonomy entries by bare name strings.
type TaxonomyService struct {
	categories repo.Categories
	languages  repo.Languages
	presets    repo.ReadTimePresets
}

func NewTaxonomyService(c repo.Categories, l repo.Languages, p repo.ReadTimePresets) *TaxonomyService {
	return &TaxonomyService{categories: c, languages: l, presets: p}
}

func nameSlug(name string) (string, error) {
	s := slug.Make(name)
	if s == "" {
		return "", invalid("cannot derive a valid slug from name")
	}
	return s, nil
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	if err := c.Validate(); err != nil {
		return models.Category{}, invalid(err.Error())
	}
	sl, err := nameSlug(c.Name)
	if err != nil {
		return models.Category{}, err
	}
	c.Slug = sl
	return s.categories.Create(ctx, c)
}

func (s *TaxonomyService) ListCategories(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	return s.categories.List(ctx, activeOnly)
}

func (s *TaxonomyService) UpdateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	if err := c.Validate(); err != nil {
		return models.Category{}, invalid(err.Error())
	}
	sl, err := nameSlug(c.Name)
	if err != nil {
		return models.Category{}, err
	}
	c.Slug = sl
	return s.categories.Update(ctx, c)
}

func (s *TaxonomyService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

func (s *TaxonomyService) CreateLanguage(ctx context.Context, l models.Language) (models.Language, error) {
	if err := l.Validate(); err != nil {
		return models.Language{}, invalid(err.Error())
	}
	sl, err := nameSlug(l.Name)
	if err != nil {
		return models.Language{}, err
	}
	l.Slug = sl
	return s.languages.Create(ctx, l)
}

func (s *TaxonomyService) ListLanguages(ctx context.Context, activeOnly bool) ([]models.Language, error) {
	return s.languages.List(ctx, activeOnly)
}

func (s *TaxonomyService) UpdateLanguage(ctx context.Context, l models.Language) (models.Language, error) {
	if err := l.Validate(); err != nil {
		return models.Language{}, invalid(err.Error())
	}
	sl, err := nameSlug(l.Name)
	if err != nil {
		return models.Language{}, err
	}
	l.Slug = sl
	return s.languages.Update(ctx, l)
}

func (s *TaxonomyService) DeleteLanguage(ctx context.Context, id string) error {
	return s.languages.Delete(ctx, id)
}

func (s *TaxonomyService) CreatePreset(ctx context.Context, p models.ReadTimePreset) (models.ReadTimePreset, error) {
	if err := p.Validate(); err != nil {
		return models.ReadTimePreset{}, invalid(err.Error())
	}
	sl, err := nameSlug(p.Name)
	if err != nil {
		return models.ReadTimePreset{}, err
	}
	p.Slug = sl
	return s.presets.Create(ctx, p)
}

func (s *TaxonomyService) ListPresets(ctx context.Context, activeOnly bool) ([]models.ReadTimePreset, error) {
	return s.presets.List(ctx, activeOnly)
}

func (s *TaxonomyService) UpdatePreset(ctx context.Context, p models.ReadTimePreset) (models.ReadTimePreset, error) {
	if err := p.Validate(); err != nil {
		return models.ReadTimePreset{}, invalid(err.Error())
	}
	sl, err := nameSlug(p.Name)
	if err != nil {
		return models.ReadTimePreset{}, err
	}
	p.Slug = sl
	return s.presets.Update(ctx, p)
}

func (s *TaxonomyService) DeletePreset(ctx context.Context, id string) error {
	return s.presets.Delete(ctx, id)
}
