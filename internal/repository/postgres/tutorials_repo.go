package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorialhub/backend/internal/models"
	"github.com/tutorialhub/backend/internal/query"
	repo "github.com/tutorialhub/backend/internal/repository"
)

type tutorialsRepo struct{ pool *pgxpool.Pool }

const tutorialCols = `t.id, t.title, t.slug, t.category, t.content, t.excerpt,
	t.code_examples, t.content_blocks, t.tags, t.difficulty, t.read_time,
	t.is_published, t.views, t.likes, t.author_id, u.id, u.username,
	t.created_at, t.updated_at`

const tutorialFrom = ` FROM tutorials t LEFT JOIN users u ON u.id = t.author_id`

func scanTutorial(row interface{ Scan(...any) error }) (models.Tutorial, error) {
	var t models.Tutorial
	var examples, blocks []byte
	var authorID, authorName *string
	err := row.Scan(&t.ID, &t.Title, &t.Slug, &t.Category, &t.Content, &t.Excerpt,
		&examples, &blocks, &t.Tags, &t.Difficulty, &t.ReadTime,
		&t.IsPublished, &t.Views, &t.Likes, &t.AuthorID, &authorID, &authorName,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Tutorial{}, translateErr(err)
	}
	if err := json.Unmarshal(examples, &t.CodeExamples); err != nil {
		return models.Tutorial{}, fmt.Errorf("decode code_examples: %w", err)
	}
	if err := json.Unmarshal(blocks, &t.ContentBlocks); err != nil {
		return models.Tutorial{}, fmt.Errorf("decode content_blocks: %w", err)
	}
	if authorID != nil && authorName != nil {
		t.Author = &models.AuthorRef{ID: *authorID, Username: *authorName}
	}
	return t, nil
}

func encodeDocs(t models.Tutorial) (examples, blocks []byte, err error) {
	if t.CodeExamples == nil {
		t.CodeExamples = []models.CodeExample{}
	}
	if t.ContentBlocks == nil {
		t.ContentBlocks = []models.ContentBlock{}
	}
	if examples, err = json.Marshal(t.CodeExamples); err != nil {
		return nil, nil, err
	}
	if blocks, err = json.Marshal(t.ContentBlocks); err != nil {
		return nil, nil, err
	}
	return examples, blocks, nil
}

func (r *tutorialsRepo) Create(ctx context.Context, t models.Tutorial) (models.Tutorial, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	examples, blocks, err := encodeDocs(t)
	if err != nil {
		return models.Tutorial{}, err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO tutorials(id, title, slug, category, content, excerpt,
		        code_examples, content_blocks, tags, difficulty, read_time,
		        is_published, author_id)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		t.ID, t.Title, t.Slug, t.Category, t.Content, t.Excerpt,
		examples, blocks, t.Tags, t.Difficulty, t.ReadTime,
		t.IsPublished, t.AuthorID,
	)
	if err != nil {
		return models.Tutorial{}, translateErr(err)
	}
	return r.GetByID(ctx, t.ID)
}

func (r *tutorialsRepo) GetByID(ctx context.Context, id string) (models.Tutorial, error) {
	return scanTutorial(r.pool.QueryRow(ctx, `SELECT `+tutorialCols+tutorialFrom+` WHERE t.id=$1`, id))
}

func (r *tutorialsRepo) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (models.Tutorial, error) {
	q := `SELECT ` + tutorialCols + tutorialFrom + ` WHERE t.slug=$1`
	if publishedOnly {
		q += ` AND t.is_published`
	}
	return scanTutorial(r.pool.QueryRow(ctx, q, slug))
}

func (r *tutorialsRepo) List(ctx context.Context, c query.Compiled) ([]models.Tutorial, int64, error) {
	where := ""
	if c.Where != "" {
		where = " WHERE " + c.Where
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM tutorials t`+where, c.Args...).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	args := append(append([]any{}, c.Args...), c.Limit, c.Offset)
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s%s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
			tutorialCols, tutorialFrom, where, c.OrderBy, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var out []models.Tutorial
	for rows.Next() {
		t, err := scanTutorial(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, translateErr(rows.Err())
}

func (r *tutorialsRepo) Update(ctx context.Context, t models.Tutorial) (models.Tutorial, error) {
	examples, blocks, err := encodeDocs(t)
	if err != nil {
		return models.Tutorial{}, err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE tutorials SET title=$2, slug=$3, category=$4, content=$5, excerpt=$6,
		        code_examples=$7, content_blocks=$8, tags=$9, difficulty=$10,
		        read_time=$11, is_published=$12, updated_at=now()
		 WHERE id=$1`,
		t.ID, t.Title, t.Slug, t.Category, t.Content, t.Excerpt,
		examples, blocks, t.Tags, t.Difficulty, t.ReadTime, t.IsPublished,
	)
	if err != nil {
		return models.Tutorial{}, translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Tutorial{}, repo.ErrNotFound
	}
	return r.GetByID(ctx, t.ID)
}

func (r *tutorialsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tutorials WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// IncrementViews is a single-statement counter bump; no read-modify-write.
func (r *tutorialsRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE tutorials SET views = views + 1 WHERE id=$1`, id)
	return translateErr(err)
}

func (r *tutorialsRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tutorials WHERE slug=$1 AND id<>$2)`, slug, excludeID,
	).Scan(&exists)
	return exists, translateErr(err)
}

func (r *tutorialsRepo) CategoryCounts(ctx context.Context) ([]repo.CategoryCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category, count(*) FROM tutorials WHERE is_published GROUP BY category ORDER BY count(*) DESC`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []repo.CategoryCount
	for rows.Next() {
		var c repo.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, c)
	}
	return out, translateErr(rows.Err())
}

func (r *tutorialsRepo) Stats(ctx context.Context) (repo.Stats, error) {
	var s repo.Stats
	err := r.pool.QueryRow(ctx,
		`SELECT count(*), count(*) FILTER (WHERE is_published),
		        COALESCE(sum(views),0), COALESCE(sum(likes),0)
		 FROM tutorials`,
	).Scan(&s.Tutorials, &s.Published, &s.TotalViews, &s.TotalLikes)
	if err != nil {
		return repo.Stats{}, translateErr(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT difficulty, count(*) FROM tutorials WHERE is_published GROUP BY difficulty`)
	if err != nil {
		return repo.Stats{}, translateErr(err)
	}
	defer rows.Close()

	s.ByDifficulty = map[string]int64{}
	for rows.Next() {
		var d string
		var n int64
		if err := rows.Scan(&d, &n); err != nil {
			return repo.Stats{}, translateErr(err)
		}
		s.ByDifficulty[d] = n
	}
	return s, translateErr(rows.Err())
}
