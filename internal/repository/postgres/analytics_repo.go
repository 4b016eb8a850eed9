package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/tutorialhub/backend/internal/repository"
)

type analyticsRepo struct{ pool *pgxpool.Pool }

func (r *analyticsRepo) countByDay(ctx context.Context, table string, from, to time.Time) ([]repo.DayCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT date_trunc('day', created_at) AS day, count(*)
		 FROM `+table+`
		 WHERE created_at >= $1 AND created_at < $2
		 GROUP BY day ORDER BY day`,
		from, to)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var out []repo.DayCount
	for rows.Next() {
		var d repo.DayCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, d)
	}
	return out, translateErr(rows.Err())
}

func (r *analyticsRepo) NewUsersByDay(ctx context.Context, from, to time.Time) ([]repo.DayCount, error) {
	return r.countByDay(ctx, "users", from, to)
}

func (r *analyticsRepo) NewTutorialsByDay(ctx context.Context, from, to time.Time) ([]repo.DayCount, error) {
	return r.countByDay(ctx, "tutorials", from, to)
}

func (r *analyticsRepo) TotalViews(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(sum(views),0) FROM tutorials`).Scan(&n)
	return n, translateErr(err)
}
