package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ticketboard/internal/handlers"
	"ticketboard/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Sections  service.SectionService
	DB        *sql.DB
	BoardRoot string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)

	// Add request logger and CORS middleware
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	sectionsHandler := handlers.NewSectionsHandler(deps.Sections)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.BoardRoot)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/sections", sectionsHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
