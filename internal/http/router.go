package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ragstore/internal/handlers"
	"ragstore/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Content      *service.ContentService
	Ingester     *service.Ingester // nil disables the ingest endpoint
	Searcher     handlers.HybridSearcher
	Answerer     handlers.Answerer // nil disables /api/ask
	HealthChecks []handlers.HealthCheck
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	folders := handlers.NewFolderHandler(deps.Content, deps.Ingester)
	documents := handlers.NewDocumentHandler(deps.Content)
	annotations := handlers.NewAnnotationHandler(deps.Content)

	r.Route("/api", func(r chi.Router) {
		r.Route("/folders", func(r chi.Router) {
			r.Post("/", folders.Create)
			r.Get("/", folders.List)
			r.Get("/stats", folders.AllStats)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", folders.Get)
				r.Delete("/", folders.Delete)
				r.Get("/documents", folders.Documents)
				r.Get("/chunks", folders.Chunks)
				r.Get("/stats", folders.Stats)
				r.Post("/ingest", folders.Ingest)
			})
		})

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", documents.Create)
			r.Get("/", documents.Find)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", documents.Get)
				r.Delete("/", documents.Delete)
				r.Put("/embedding", documents.UpdateEmbedding)
				r.Put("/metadata", documents.UpdateMetadata)
				r.Get("/labels", documents.Labels)
				r.Post("/labels", documents.AddLabel)
				r.Get("/qa", documents.QA)
				r.Post("/qa", documents.AddQA)
			})
		})

		r.Get("/labels", annotations.Labels)
		r.Get("/qa", annotations.QA)

		r.Method(http.MethodPost, "/search", handlers.NewSearchHandler(deps.Searcher))
		if deps.Answerer != nil {
			r.Method(http.MethodPost, "/ask", handlers.NewAskHandler(deps.Answerer))
		}
		r.Method(http.MethodGet, "/tags/popular", handlers.NewTagHandler(deps.Content))
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.HealthChecks...))
	})

	return r
}
