package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/octofit/dashboard/internal/editflow"
	"github.com/octofit/dashboard/internal/endpoint"
	"github.com/octofit/dashboard/internal/observability"
	"github.com/octofit/dashboard/internal/remotelist"
)

// ErrUnknownResource is returned when mounting a resource with no definition.
var ErrUnknownResource = errors.New("unknown resource")

// Backend is the REST API the views read from and the edit flow writes to.
type Backend interface {
	remotelist.Fetcher
	editflow.Patcher
}

// Service mounts views and looks them up.
type Service struct {
	resolver endpoint.Resolver
	backend  Backend
	store    *Store
}

// NewService creates a Service.
func NewService(resolver endpoint.Resolver, backend Backend, store *Store) *Service {
	return &Service{
		resolver: resolver,
		backend:  backend,
		store:    store,
	}
}

// Mount creates a view of resource and starts its fetches in the background.
// The fetches are detached from ctx: they are never cancelled once started.
func (s *Service) Mount(ctx context.Context, resource string) (*View, error) {
	def, ok := Lookup(resource)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}

	v := &View{
		ID:        uuid.New().String(),
		Def:       def,
		List:      remotelist.New(def.Resource, s.resolver.URL(def.Resource)),
		MountedAt: s.store.now(),
	}
	if def.Editable {
		v.Teams = remotelist.New(Teams.Resource, s.resolver.URL(Teams.Resource))
		v.Edit = editflow.New(v.List, s.backend)
	}

	s.store.Add(v)
	observability.RecordViewMounted(def.Resource)
	slog.Info("view mounted", "viewId", v.ID, "resource", def.Resource, "endpoint", v.List.Endpoint())

	bg := context.WithoutCancel(ctx)
	go v.List.Load(bg, s.backend)
	if v.Teams != nil {
		go s.loadTeamOptions(bg, v)
	}

	return v, nil
}

func (s *Service) loadTeamOptions(ctx context.Context, v *View) {
	v.Teams.Load(ctx, s.backend)
	if snap := v.Teams.Snapshot(); snap.Status == remotelist.StatusFailed {
		slog.Warn("team options unavailable; edit form keeps an empty team list", "viewId", v.ID, "error", snap.Err)
	}
}

// View returns a mounted view.
func (s *Service) View(id string) (*View, error) {
	return s.store.Get(id)
}

// Endpoint returns the backend URL of resource.
func (s *Service) Endpoint(resource string) string {
	return s.resolver.URL(resource)
}
