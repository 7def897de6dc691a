package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/octofit/dashboard/internal/observability"
)

// ErrViewNotFound is returned for unknown or reaped view ids.
var ErrViewNotFound = errors.New("view not found")

// Store holds mounted views in memory until they go idle.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	views map[string]*View
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces the time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store evicting views idle for longer than ttl.
func NewStore(ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		ttl:   ttl,
		now:   time.Now,
		views: make(map[string]*View),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers v.
func (s *Store) Add(v *View) {
	v.Touch(s.now())

	s.mu.Lock()
	s.views[v.ID] = v
	n := len(s.views)
	s.mu.Unlock()

	observability.SetActiveViews(n)
}

// Get returns the view with id and marks it as used.
func (s *Store) Get(id string) (*View, error) {
	s.mu.RLock()
	v, ok := s.views[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrViewNotFound
	}
	v.Touch(s.now())
	return v, nil
}

// Len returns the number of live views.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}

// Reap evicts idle views and returns how many were removed.
func (s *Store) Reap() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	removed := 0
	for id, v := range s.views {
		if v.LastSeen().Before(cutoff) {
			delete(s.views, id)
			removed++
		}
	}
	n := len(s.views)
	s.mu.Unlock()

	observability.SetActiveViews(n)
	return removed
}

// Start runs the reaper every interval. It blocks until ctx is cancelled.
func (s *Store) Start(ctx context.Context, interval time.Duration) {
	slog.Info("view reaper started", "interval", interval.String(), "ttl", s.ttl.String())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("view reaper stopped")
			return
		case <-ticker.C:
			if n := s.Reap(); n > 0 {
				slog.Debug("reaped idle views", "count", n, "remaining", s.Len())
			}
		}
	}
}
