package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutorialhub/backend/internal/models"
	repo "github.com/tutorialhub/backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userCols = `id, username, email, password_hash, role, is_active, display_name, bio, avatar_url, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.DisplayName, &u.Bio, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	return u, translateErr(err)
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users(id, username, email, password_hash, role, is_active, display_name, bio, avatar_url)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING `+userCols,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.IsActive, u.DisplayName, u.Bio, u.AvatarURL,
	)
	return scanUser(row)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (r *usersRepo) List(ctx context.Context, p repo.ListUsersParams) ([]models.User, int64, error) {
	var conds []string
	var args []any
	if p.Role != "" {
		args = append(args, p.Role)
		conds = append(conds, "role = $"+strconv.Itoa(len(args)))
	}
	if p.Active != nil {
		args = append(args, *p.Active)
		conds = append(conds, "is_active = $"+strconv.Itoa(len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 || size > 100 {
		size = 100
	}
	args = append(args, size, (page-1)*size)
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM users`+where+
			` ORDER BY created_at DESC LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)),
		args...)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, translateErr(rows.Err())
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET username=$2, email=$3, password_hash=$4, role=$5, is_active=$6,
		        display_name=$7, bio=$8, avatar_url=$9, updated_at=now()
		 WHERE id=$1
		 RETURNING `+userCols,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.IsActive, u.DisplayName, u.Bio, u.AvatarURL,
	)
	return scanUser(row)
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
