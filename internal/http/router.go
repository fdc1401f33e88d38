package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sectiontoc/internal/handlers"
	"sectiontoc/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	TocService service.TocService
	DB         handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	tocHandler := handlers.NewTocHandler(deps.TocService)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/toc", tocHandler)
		r.Get("/pages/{pageID}/toc", tocHandler.ServePage)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
