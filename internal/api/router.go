package api

import (
	"log/slog"
	"net/http"

	"hashnotes/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions configures the HTTP surface around the handlers.
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// NewRouter wires the API routes.
// Middleware order: RequestID -> Logging -> Recoverer -> CORS.
func NewRouter(h *Handlers, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader, "Mcp-Session-Id"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.HealthHandler)
	r.Post("/new-user-note", h.NewUserNoteHandler)
	r.Post("/notes", h.AddNoteHandler)
	r.Get("/notes/{hash}", h.GetNotesHandler)

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}

	return r
}
