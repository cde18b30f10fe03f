package app

// pkg/app/kernel.go builds an http.Handler from the Application config.
// This file has no imports of project-specific code (controllers, views);
// everything project-level is injected via the Routes() builder method.

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/shakkar/pkg/metrics"
	"github.com/shashiranjanraj/shakkar/pkg/middleware"
	"github.com/shashiranjanraj/shakkar/pkg/reqid"
	"github.com/shashiranjanraj/shakkar/pkg/router"
	"github.com/shashiranjanraj/shakkar/pkg/session"
)

// buildHandler constructs the HTTP handler from the Application config.
// It sets up the global middleware stack, then calls the route-registration
// callbacks.
func buildHandler(a *Application) http.Handler {
	r := router.New()

	// Global middleware stack (outermost to innermost):
	//  1. Prometheus metrics, outermost for accurate total latency
	//  2. Recovery, catches panics before they kill the goroutine
	//  3. Request ID, inject unique ID before anything logs
	//  4. Logger, logs request_id from context
	//  5. Session, load/create session cookie via Redis
	//  6. CORS
	//  7. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus /metrics endpoint, no auth, no rate limit.
	r.HandleFunc("/metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}

	return r.Handler()
}

// Handler exposes the built handler for tests that drive the full
// middleware-plus-routes stack through httptest.
func (a *Application) Handler() http.Handler {
	return buildHandler(a)
}
