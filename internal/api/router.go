package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octofit/dashboard/internal/api/handler"
	"github.com/octofit/dashboard/internal/api/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Views   handler.ViewService
	Checker handler.BackendChecker
	// HealthProbeURL is the backend URL probed by /health.
	HealthProbeURL string
	Version        string
	// CSRFKey enables CSRF protection of the page routes when set.
	CSRFKey    []byte
	CSRFSecure bool
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) (*chi.Mux, error) {
	pages, err := handler.NewPageHandler(deps.Views)
	if err != nil {
		return nil, fmt.Errorf("creating page handler: %w", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.Checker, deps.HealthProbeURL, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	viewAPI := handler.NewViewAPIHandler(deps.Views)
	r.Get("/api/views/{id}", viewAPI.Get)

	r.Group(func(r chi.Router) {
		if len(deps.CSRFKey) > 0 {
			r.Use(middleware.CSRF(deps.CSRFKey, deps.CSRFSecure))
		}

		r.Get("/", pages.Home)
		r.Get("/{resource}", pages.Mount)
		r.Route("/views/{id}", func(r chi.Router) {
			r.Get("/", pages.Show)
			r.Post("/edit", pages.OpenEdit)
			r.Post("/draft", pages.SubmitDraft)
		})
	})

	return r, nil
}
