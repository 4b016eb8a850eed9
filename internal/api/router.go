package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/tutorialhub/backend/internal/api/handlers"
	"github.com/tutorialhub/backend/internal/config"
	"github.com/tutorialhub/backend/internal/metrics"
	"github.com/tutorialhub/backend/internal/middleware"
)

// Deps carries everything the router mounts.
type Deps struct {
	Cfg       config.Config
	Auth      *middleware.AuthMiddleware
	AuthH     *handlers.AuthHandler
	Tutorials *handlers.TutorialsHandler
	Taxonomy  *handlers.TaxonomyHandler
	Users     *handlers.UsersHandler
	Compiler  *handlers.CompilerHandler
	Upload    *handlers.UploadHandler
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	r.Use(middleware.RateLimitPerIP(float64(d.Cfg.RateRPS), d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", d.AuthH.Register)
		r.Post("/login", d.AuthH.Login)
		r.Post("/refresh", d.AuthH.Refresh)
		r.With(d.Auth.Authenticate).Get("/me", d.AuthH.Me)
	})

	r.Route("/tutorials", func(r chi.Router) {
		r.Get("/", d.Tutorials.List)
		r.Get("/search", d.Tutorials.Search)
		r.Get("/meta/categories", d.Tutorials.CategoryCounts)
		r.Get("/meta/stats", d.Tutorials.Stats)

		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Authenticate, d.Auth.RequireAdmin)
			r.Get("/admin/all", d.Tutorials.AdminList)
			r.Get("/admin/{id}", d.Tutorials.AdminGet)
			r.Post("/", d.Tutorials.Create)
			r.Patch("/{id}", d.Tutorials.Update)
			r.Delete("/{id}", d.Tutorials.Delete)
		})

		// Slug route last so the static segments above win.
		r.With(d.Auth.OptionalAuthenticate).Get("/{slug}", d.Tutorials.GetBySlug)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", d.Taxonomy.ListCategories)
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Authenticate, d.Auth.RequireAdmin)
			r.Post("/", d.Taxonomy.CreateCategory)
			r.Patch("/{id}", d.Taxonomy.UpdateCategory)
			r.Delete("/{id}", d.Taxonomy.DeleteCategory)
		})
	})

	r.Route("/languages", func(r chi.Router) {
		r.Get("/", d.Taxonomy.ListLanguages)
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Authenticate, d.Auth.RequireAdmin)
			r.Post("/", d.Taxonomy.CreateLanguage)
			r.Patch("/{id}", d.Taxonomy.UpdateLanguage)
			r.Delete("/{id}", d.Taxonomy.DeleteLanguage)
		})
	})

	r.Route("/read-time-presets", func(r chi.Router) {
		r.Get("/", d.Taxonomy.ListPresets)
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Authenticate, d.Auth.RequireAdmin)
			r.Post("/", d.Taxonomy.CreatePreset)
			r.Patch("/{id}", d.Taxonomy.UpdatePreset)
			r.Delete("/{id}", d.Taxonomy.DeletePreset)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(d.Auth.Authenticate, d.Auth.RequireAdmin)
		r.Get("/users", d.Users.List)
		r.Post("/users", d.Users.Create)
		r.Get("/users/{id}", d.Users.Get)
		r.Patch("/users/{id}", d.Users.Update)
		r.Delete("/users/{id}", d.Users.Delete)
		r.Get("/analytics", d.Users.Analytics)
	})

	r.Route("/compiler", func(r chi.Router) {
		r.Use(middleware.RateLimitPerIP(d.Cfg.CompilerRPS, d.Cfg.CompilerBurst))
		r.Post("/execute", d.Compiler.Execute)
		r.Get("/languages", d.Compiler.Languages)
		r.Get("/health", d.Compiler.Health)
	})

	r.Route("/upload", func(r chi.Router) {
		r.Use(d.Auth.Authenticate, d.Auth.RequireAdmin)
		r.Post("/image", d.Upload.UploadImage)
		r.Delete("/image/*", d.Upload.DeleteImage)
	})

	return r
}
