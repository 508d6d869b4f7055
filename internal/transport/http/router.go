// Package httptransport assembles the HTTP surface: middleware chain, route
// mounting, health, and metrics. Business logic stays in the domain packages;
// this layer only wires them together.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	claimhandler "reclaim/internal/claim/handler"
	itemshandler "reclaim/internal/items/handler"
	matchhandler "reclaim/internal/match/handler"
	notifyhandler "reclaim/internal/notify/handler"
	"reclaim/internal/platform/metrics"
	"reclaim/internal/platform/middleware"
)

// Handlers bundles every domain handler the router mounts.
type Handlers struct {
	Items         *itemshandler.Handler
	Matches       *matchhandler.Handler
	Claims        *claimhandler.Handler
	Notifications *notifyhandler.Handler
}

// NewRouter builds the service router. Item reporting and browsing work
// anonymously; a valid bearer token, when present, attributes the request to
// its account. The notification inbox requires authentication.
func NewRouter(h Handlers, validator middleware.JWTValidator, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.OptionalAuth(validator, logger))

		h.Items.Register(r)
		h.Matches.Register(r)
		h.Claims.Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(validator, logger))

		h.Notifications.Register(r)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
