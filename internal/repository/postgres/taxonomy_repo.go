package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorialhub/backend/internal/models"
	repo "github.com/tutorialhub/backend/internal/repository"
)

// The three taxonomy repos are deliberately parallel: same lifecycle, same
// columns apart from the display metadata.

type categoriesRepo struct{ pool *pgxpool.Pool }

const categoryCols = `id, name, slug, description, color, icon, is_active, sort_order, usage_count, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.Icon,
		&c.IsActive, &c.SortOrder, &c.UsageCount, &c.CreatedAt, &c.UpdatedAt)
	return c, translateErr(err)
}

func (r *categoriesRepo) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO categories(id, name, slug, description, color, icon, is_active, sort_order)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8) RETURNING `+categoryCols,
		c.ID, c.Name, c.Slug, c.Description, c.Color, c.Icon, c.IsActive, c.SortOrder)
	return scanCategory(row)
}

func (r *categoriesRepo) GetByID(ctx context.Context, id string) (models.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryCols+` FROM categories WHERE id=$1`, id))
}

func (r *categoriesRepo) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	q := `SELECT ` + categoryCols + ` FROM categories`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY sort_order, name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, translateErr(rows.Err())
}

func (r *categoriesRepo) Update(ctx context.Context, c models.Category) (models.Category, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE categories SET name=$2, slug=$3, description=$4, color=$5, icon=$6,
		        is_active=$7, sort_order=$8, updated_at=now()
		 WHERE id=$1 RETURNING `+categoryCols,
		c.ID, c.Name, c.Slug, c.Description, c.Color, c.Icon, c.IsActive, c.SortOrder)
	return scanCategory(row)
}

func (r *categoriesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *categoriesRepo) RefreshUsageCounts(ctx context.Context) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE categories c SET usage_count =
		   (SELECT count(*) FROM tutorials t WHERE t.category = c.name)`)
	return translateErr(err)
}

type languagesRepo struct{ pool *pgxpool.Pool }

const languageCols = `id, name, slug, display_name, judge0_id, editor_mode, is_active, sort_order, usage_count, created_at, updated_at`

func scanLanguage(row interface{ Scan(...any) error }) (models.Language, error) {
	var l models.Language
	err := row.Scan(&l.ID, &l.Name, &l.Slug, &l.DisplayName, &l.Judge0ID, &l.EditorMode,
		&l.IsActive, &l.SortOrder, &l.UsageCount, &l.CreatedAt, &l.UpdatedAt)
	return l, translateErr(err)
}

func (r *languagesRepo) Create(ctx context.Context, l models.Language) (models.Language, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO languages(id, name, slug, display_name, judge0_id, editor_mode, is_active, sort_order)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8) RETURNING `+languageCols,
		l.ID, l.Name, l.Slug, l.DisplayName, l.Judge0ID, l.EditorMode, l.IsActive, l.SortOrder)
	return scanLanguage(row)
}

func (r *languagesRepo) GetByID(ctx context.Context, id string) (models.Language, error) {
	return scanLanguage(r.pool.QueryRow(ctx, `SELECT `+languageCols+` FROM languages WHERE id=$1`, id))
}

func (r *languagesRepo) List(ctx context.Context, activeOnly bool) ([]models.Language, error) {
	q := `SELECT ` + languageCols + ` FROM languages`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY sort_order, name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []models.Language
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, translateErr(rows.Err())
}

func (r *languagesRepo) Update(ctx context.Context, l models.Language) (models.Language, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE languages SET name=$2, slug=$3, display_name=$4, judge0_id=$5, editor_mode=$6,
		        is_active=$7, sort_order=$8, updated_at=now()
		 WHERE id=$1 RETURNING `+languageCols,
		l.ID, l.Name, l.Slug, l.DisplayName, l.Judge0ID, l.EditorMode, l.IsActive, l.SortOrder)
	return scanLanguage(row)
}

func (r *languagesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM languages WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *languagesRepo) RefreshUsageCounts(ctx context.Context) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE languages l SET usage_count =
		   (SELECT count(*) FROM tutorials t
		    WHERE EXISTS (SELECT 1 FROM jsonb_array_elements(t.code_examples) e
		                  WHERE e->>'language' = l.name))`)
	return translateErr(err)
}

type readTimePresetsRepo struct{ pool *pgxpool.Pool }

const presetCols = `id, name, slug, label, min_minutes, max_minutes, is_active, sort_order, usage_count, created_at, updated_at`

func scanPreset(row interface{ Scan(...any) error }) (models.ReadTimePreset, error) {
	var p models.ReadTimePreset
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Label, &p.MinMinutes, &p.MaxMinutes,
		&p.IsActive, &p.SortOrder, &p.UsageCount, &p.CreatedAt, &p.UpdatedAt)
	return p, translateErr(err)
}

func (r *readTimePresetsRepo) Create(ctx context.Context, p models.ReadTimePreset) (models.ReadTimePreset, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO read_time_presets(id, name, slug, label, min_minutes, max_minutes, is_active, sort_order)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8) RETURNING `+presetCols,
		p.ID, p.Name, p.Slug, p.Label, p.MinMinutes, p.MaxMinutes, p.IsActive, p.SortOrder)
	return scanPreset(row)
}

func (r *readTimePresetsRepo) GetByID(ctx context.Context, id string) (models.ReadTimePreset, error) {
	return scanPreset(r.pool.QueryRow(ctx, `SELECT `+presetCols+` FROM read_time_presets WHERE id=$1`, id))
}

func (r *readTimePresetsRepo) List(ctx context.Context, activeOnly bool) ([]models.ReadTimePreset, error) {
	q := `SELECT ` + presetCols + ` FROM read_time_presets`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY sort_order, min_minutes`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []models.ReadTimePreset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, translateErr(rows.Err())
}

func (r *readTimePresetsRepo) Update(ctx context.Context, p models.ReadTimePreset) (models.ReadTimePreset, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE read_time_presets SET name=$2, slug=$3, label=$4, min_minutes=$5, max_minutes=$6,
		        is_active=$7, sort_order=$8, updated_at=now()
		 WHERE id=$1 RETURNING `+presetCols,
		p.ID, p.Name, p.Slug, p.Label, p.MinMinutes, p.MaxMinutes, p.IsActive, p.SortOrder)
	return scanPreset(row)
}

func (r *readTimePresetsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM read_time_presets WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
