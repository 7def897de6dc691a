// Package handler serves the dashboard pages, the JSON view state and health.
package handler

import (
	"context"
	"errors"

	"github.com/octofit/dashboard/internal/backend"
	"github.com/octofit/dashboard/internal/dashboard"
)

// ViewService mounts and looks up resource views.
type ViewService interface {
	Mount(ctx context.Context, resource string) (*dashboard.View, error)
	View(id string) (*dashboard.View, error)
}

// BackendChecker probes the REST backend.
type BackendChecker interface {
	CheckConnectivity(ctx context.Context, url string) backend.ConnectivityStatus
}

func isNotFound(err error) bool {
	return errors.Is(err, dashboard.ErrViewNotFound) || errors.Is(err, dashboard.ErrUnknownResource)
}
