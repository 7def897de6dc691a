// Package remotelist holds the fetch-once state of a backend collection as shown
// by one dashboard view.
package remotelist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/octofit/dashboard/internal/collection"
)

// Status is the lifecycle state of a List.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Fetcher retrieves a collection payload from an endpoint.
type Fetcher interface {
	FetchCollection(ctx context.Context, url string) (collection.Response, error)
}

// Snapshot is a consistent copy of a List's state.
type Snapshot struct {
	Status  Status
	Records []collection.Record
	Err     string
}

// List is a collection fetched once from a single endpoint. It starts in
// StatusLoading and settles in StatusReady or StatusFailed; it never goes back.
type List struct {
	resource string
	endpoint string
	once     sync.Once

	mu      sync.RWMutex
	status  Status
	records []collection.Record
	err     string
}

// New creates a List in the loading state.
func New(resource, endpoint string) *List {
	return &List{
		resource: resource,
		endpoint: endpoint,
		status:   StatusLoading,
	}
}

// Resource returns the backend resource name.
func (l *List) Resource() string { return l.resource }

// Endpoint returns the URL the list is fetched from.
func (l *List) Endpoint() string { return l.endpoint }

// Load performs the fetch and settles the list. Only the first call fetches.
func (l *List) Load(ctx context.Context, f Fetcher) {
	l.once.Do(func() {
		l.load(ctx, f)
	})
}

func (l *List) load(ctx context.Context, f Fetcher) {
	slog.Debug("fetching collection", "resource", l.resource, "endpoint", l.endpoint)

	resp, err := f.FetchCollection(ctx, l.endpoint)
	if err != nil {
		slog.Warn("collection fetch failed", "resource", l.resource, "endpoint", l.endpoint, "error", err)
		l.settle(StatusFailed, nil, err.Error())
		return
	}

	if resp.Shape == collection.ShapeUnrecognized {
		slog.Warn("unrecognized collection payload; showing no records", "resource", l.resource, "endpoint", l.endpoint)
	}

	records := resp.Unwrap()
	slog.Debug("collection loaded", "resource", l.resource, "shape", resp.Shape.String(), "count", len(records))
	l.settle(StatusReady, records, "")
}

func (l *List) settle(status Status, records []collection.Record, errMsg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status = status
	l.records = records
	l.err = errMsg
}

// Snapshot returns a copy of the current state.
func (l *List) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var records []collection.Record
	if l.records != nil {
		records = make([]collection.Record, len(l.records))
		copy(records, l.records)
	}
	return Snapshot{Status: l.status, Records: records, Err: l.err}
}

// Find returns the first record whose identifier is id. Records without an
// identifier are never found.
func (l *List) Find(id string) (collection.Record, bool) {
	if id == "" {
		return collection.Record{}, false
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, r := range l.records {
		if r.ID() == id {
			return r, true
		}
	}
	return collection.Record{}, false
}

// Replace swaps every record sharing rec's identifier for rec, in place.
// Other records and the ordering are untouched. It returns the number replaced.
func (l *List) Replace(rec collection.Record) int {
	id := rec.ID()
	if id == "" {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for i := range l.records {
		if l.records[i].ID() == id {
			l.records[i] = rec
			n++
		}
	}
	return n
}
