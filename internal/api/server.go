// Package api provides the REST API server for the cheeseshop index.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cheeseshop/cheeseshop/internal/api/common"
	"github.com/cheeseshop/cheeseshop/internal/api/legacy"
	"github.com/cheeseshop/cheeseshop/internal/service"
	"github.com/cheeseshop/cheeseshop/pkg/logger"
)

// ServerOption configures the index API server
type ServerOption func(*serverConfig)

// serverConfig holds the server configuration
type serverConfig struct {
	middlewares []func(http.Handler) http.Handler
	legacyOpts  []legacy.Option
}

// WithMiddlewares adds middleware to the server
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithLegacyOptions forwards options to the legacy route handlers
func WithLegacyOptions(opts ...legacy.Option) ServerOption {
	return func(cfg *serverConfig) {
		cfg.legacyOpts = append(cfg.legacyOpts, opts...)
	}
}

// NewServer creates and configures the HTTP router with the given service,
// site URL builder and options
func NewServer(svc service.PackagingService, site *common.SiteURLs, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()

	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	// Health check routes; static routes win over the catch-all mount below
	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(svc))
	r.Get("/version", versionHandler)

	// Legacy index endpoints at the site root
	r.Mount("/", legacy.Router(svc, site, cfg.legacyOpts...))

	return r
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Debugf("HTTP %s %s %d %s %s",
			r.Method,
			r.URL.Path,
			ww.Status(),
			time.Since(start),
			middleware.GetReqID(r.Context()),
		)
	})
}
