package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tutorialhub/backend/internal/models"
	"github.com/tutorialhub/backend/internal/query"
)

// ErrNotFound is returned when no row matches. Implementations translate
// their driver's not-found sentinel into this one.
var ErrNotFound = errors.New("not found")

// ConflictError reports a uniqueness violation on a specific field.
type ConflictError struct {
	Field string
}

func (e ConflictError) Error() string { return e.Field + " already exists" }

// ListUsersParams filters the admin user listing.
type ListUsersParams struct {
	Role     string // "" means any
	Active   *bool  // nil means any
	Page     int
	PageSize int
}

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context, p ListUsersParams) ([]models.User, int64, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id string) error
}

// CategoryCount pairs a category name with its published tutorial count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// Stats aggregates the public counters.
type Stats struct {
	Tutorials    int64            `json:"tutorials"`
	Published    int64            `json:"published"`
	TotalViews   int64            `json:"total_views"`
	TotalLikes   int64            `json:"total_likes"`
	ByDifficulty map[string]int64 `json:"by_difficulty"`
}

type Tutorials interface {
	Create(ctx context.Context, t models.Tutorial) (models.Tutorial, error)
	GetByID(ctx context.Context, id string) (models.Tutorial, error)
	// GetBySlug with publishedOnly set ignores drafts entirely.
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (models.Tutorial, error)
	List(ctx context.Context, c query.Compiled) ([]models.Tutorial, int64, error)
	Update(ctx context.Context, t models.Tutorial) (models.Tutorial, error)
	Delete(ctx context.Context, id string) error
	// IncrementViews adds one to the view counter in a single statement so
	// concurrent readers never lose an update.
	IncrementViews(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)
	Stats(ctx context.Context) (Stats, error)
}

type Categories interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	GetByID(ctx context.Context, id string) (models.Category, error)
	List(ctx context.Context, activeOnly bool) ([]models.Category, error)
	Update(ctx context.Context, c models.Category) (models.Category, error)
	Delete(ctx context.Context, id string) error
	// RefreshUsageCounts recomputes usage_count from the tutorials that
	// name each category. Denormalized and best-effort.
	RefreshUsageCounts(ctx context.Context) error
}

type Languages interface {
	Create(ctx context.Context, l models.Language) (models.Language, error)
	GetByID(ctx context.Context, id string) (models.Language, error)
	List(ctx context.Context, activeOnly bool) ([]models.Language, error)
	Update(ctx context.Context, l models.Language) (models.Language, error)
	Delete(ctx context.Context, id string) error
	RefreshUsageCounts(ctx context.Context) error
}

type ReadTimePresets interface {
	Create(ctx context.Context, p models.ReadTimePreset) (models.ReadTimePreset, error)
	GetByID(ctx context.Context, id string) (models.ReadTimePreset, error)
	List(ctx context.Context, activeOnly bool) ([]models.ReadTimePreset, error)
	Update(ctx context.Context, p models.ReadTimePreset) (models.ReadTimePreset, error)
	Delete(ctx context.Context, id string) error
}

// DayCount is one bucket of the analytics range queries.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

type Analytics interface {
	NewUsersByDay(ctx context.Context, from, to time.Time) ([]DayCount, error)
	NewTutorialsByDay(ctx context.Context, from, to time.Time) ([]DayCount, error)
	TotalViews(ctx context.Context) (int64, error)
}
