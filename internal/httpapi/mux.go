package httpapi

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"climate-server/internal/utils"
)

type RouterOptions struct {
	Logger *slog.Logger
	// Metrics is nil when metrics are disabled; /metrics is then not served.
	Metrics *Metrics
	Gzip    bool
}

// NewRouter builds the root router with the cross-cutting middleware and the
// health and metrics endpoints. Feature routes are registered on the result.
func NewRouter(db *sql.DB, opts RouterOptions) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.middleware)
	}
	if opts.Gzip {
		r.Use(gzipResponses)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	registerHealthcheck(r, db)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	return r
}
