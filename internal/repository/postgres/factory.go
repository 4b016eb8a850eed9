package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/tutorialhub/backend/internal/repository"
)

type Repositories struct {
	Users           repo.Users
	Tutorials       repo.Tutorials
	Categories      repo.Categories
	Languages       repo.Languages
	ReadTimePresets repo.ReadTimePresets
	Analytics       repo.Analytics
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:           &usersRepo{pool},
		Tutorials:       &tutorialsRepo{pool},
		Categories:      &categoriesRepo{pool},
		Languages:       &languagesRepo{pool},
		ReadTimePresets: &readTimePresetsRepo{pool},
		Analytics:       &analyticsRepo{pool},
	}
}
