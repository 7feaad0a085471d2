package web

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routePrefixes serves every route bare and under /api, the prefix the mobile client uses
var routePrefixes = []string{"", "/api"}

// NewMux creates and configures the HTTP router / Crée et configure le routeur HTTP
// ctx bounds the rate limiters' background sweeps.
func NewMux(ctx context.Context, h *Handler) http.Handler {
	conf := h.container.Config
	mux := http.NewServeMux()
	mw := NewMiddleware(ctx, conf, h.container.Metrics, h.container.Tokens)

	for _, p := range routePrefixes {
		// Health endpoints: no auth, no per-route limit
		mux.HandleFunc("GET "+p+"/health", h.HealthCheck)
		mux.HandleFunc("GET "+p+"/readiness", h.ReadinessCheck)

		mux.Handle("POST "+p+"/auth/signup", chain(h.Signup, mw.RateLimitAuth))
		mux.Handle("POST "+p+"/auth/login", chain(h.Login, mw.RateLimitAuth))

		mux.Handle("POST "+p+"/sync/all", chain(h.PushAll, mw.Auth, mw.RateLimitByUser))
		mux.Handle("GET "+p+"/sync/all", chain(h.PullAll, mw.Auth, mw.RateLimitByUser))
	}

	if conf.Metrics.Enabled && h.container.Registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(h.container.Registry, promhttp.HandlerOpts{}))
	}

	// Global middlewares - applied in reverse order / Middlewares globaux appliqués en ordre inverse
	var handler http.Handler = mux
	handler = mw.MetricsMiddleware(handler)
	handler = mw.RateLimit(handler)
	handler = mw.SecurityHeaders(handler)
	handler = mw.Cors(handler)
	handler = Recover(handler)
	handler = Logging(handler)
	handler = RequestID(handler)

	return handler
}

// chain applies middleware to HTTP handler / Applique les middlewares au gestionnaire HTTP
// The first middleware listed runs first.
func chain(f http.HandlerFunc, middlewares ...func(http.Handler) http.Handler) http.Handler {
	var handler http.Handler = f

	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}
