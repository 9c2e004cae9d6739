// Package legacy provides the legacy index endpoints: the :action
// dispatcher, the JSON project API, the RSS feeds and the daytime handler.
package legacy

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cheeseshop/cheeseshop/internal/api/common"
	"github.com/cheeseshop/cheeseshop/internal/service"
)

// Routes handles HTTP requests for the legacy index endpoints.
type Routes struct {
	service service.PackagingService
	site    *common.SiteURLs
	actions map[string]http.HandlerFunc

	// now is the clock used by the daytime handler, replaceable in tests
	now func() time.Time
}

// Option configures a Routes instance.
type Option func(*Routes)

// WithClock replaces the clock used by the daytime handler.
func WithClock(now func() time.Time) Option {
	return func(routes *Routes) {
		routes.now = now
	}
}

// NewRoutes creates a new Routes instance with the given service and site
// URL builder, and registers the built-in actions.
func NewRoutes(svc service.PackagingService, site *common.SiteURLs, opts ...Option) *Routes {
	routes := &Routes{
		service: svc,
		site:    site,
		actions: make(map[string]http.HandlerFunc),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(routes)
	}

	routes.RegisterAction("daytime", routes.daytime)
	routes.RegisterAction("rss", routes.rss)
	routes.RegisterAction("packages_rss", routes.packagesRSS)

	return routes
}

// RegisterAction adds a handler to the :action dispatch table. Registering
// the same name twice is a configuration error and panics; the table is
// built once at startup, before any request is served.
func (routes *Routes) RegisterAction(name string, handler http.HandlerFunc) {
	if _, exists := routes.actions[name]; exists {
		panic(fmt.Sprintf("legacy: action %q registered twice", name))
	}
	routes.actions[name] = handler
}

// Router creates and configures the HTTP router for the legacy endpoints.
func Router(svc service.PackagingService, site *common.SiteURLs, opts ...Option) http.Handler {
	return NewRoutes(svc, site, opts...).Handler()
}

// Handler returns the HTTP router serving this instance's endpoints.
func (routes *Routes) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/pypi", routes.dispatch)
	r.Get("/pypi/{project}/json", routes.projectJSON)
	r.Get("/pypi/{project}/{version}/json", routes.projectJSON)

	// The actions are reachable under their own paths as well.
	r.Get("/daytime", routes.daytime)
	r.Get("/rss", routes.rss)
	r.Get("/packages/rss", routes.packagesRSS)

	return r
}

// dispatch handles GET /pypi
//
// Requests carrying an `:action` query parameter are routed through the
// action table; requests without one get a permanent redirect to the site
// index.
func (routes *Routes) dispatch(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get(":action")
	if action == "" {
		http.Redirect(w, r, "/", http.StatusMovedPermanently)
		return
	}

	handler, ok := routes.actions[action]
	if !ok {
		common.WriteErrorResponse(w, fmt.Sprintf("unknown action %q", action), http.StatusNotFound)
		return
	}

	handler(w, r)
}

// daytime handles GET /daytime and the `daytime` action
//
// It returns the current UTC time in the historic compact timestamp form,
// newline-terminated.
func (routes *Routes) daytime(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(routes.now().UTC().Format("20060102T15:04:05") + "\n"))
}
