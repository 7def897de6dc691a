package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/octofit/dashboard/internal/collection"
	"github.com/octofit/dashboard/internal/dashboard"
	"github.com/octofit/dashboard/internal/endpoint"
	"github.com/octofit/dashboard/internal/remotelist"
)

const (
	usersURL       = "http://localhost:8000/api/users/"
	teamsURL       = "http://localhost:8000/api/teams/"
	leaderboardURL = "http://localhost:8000/api/leaderboard/"
)

const usersPayload = `{"results": [
	{"id": 3, "name": "Tony Stark", "email": "ironman@marvel.com", "team_id": "1", "team_name": "Team Marvel"},
	{"id": 7, "name": "Bruce Wayne", "email": "batman@dc.com", "team_id": null}
]}`

const teamsPayload = `[
	{"id": "1", "name": "Team Marvel", "member_count": 3},
	{"id": "2", "name": "Team DC", "member_count": 2}
]`

// --- Fakes ---

// fakeBackend answers fetches from a per-URL table. A non-nil gate blocks
// every fetch until it is closed.
type fakeBackend struct {
	mu        sync.Mutex
	payloads  map[string]string
	fetchErrs map[string]error
	gate      chan struct{}
	patchFn   func(ctx context.Context, url string, body any) (collection.Record, error)
	patches   []patchCall
}

type patchCall struct {
	url  string
	body []byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		payloads: map[string]string{
			usersURL: usersPayload,
			teamsURL: teamsPayload,
		},
		fetchErrs: map[string]error{},
	}
}

func (f *fakeBackend) FetchCollection(_ context.Context, url string) (collection.Response, error) {
	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	body, ok := f.payloads[url]
	err := f.fetchErrs[url]
	f.mu.Unlock()

	if err != nil {
		return collection.Response{}, err
	}
	if !ok {
		body = "[]"
	}
	return collection.Decode([]byte(body))
}

func (f *fakeBackend) Patch(ctx context.Context, url string, body any) (collection.Record, error) {
	raw, _ := json.Marshal(body)
	f.mu.Lock()
	f.patches = append(f.patches, patchCall{url: url, body: raw})
	f.mu.Unlock()
	return f.patchFn(ctx, url, body)
}

func (f *fakeBackend) patchCalls() []patchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]patchCall(nil), f.patches...)
}

// --- Helpers ---

func newService(fb *fakeBackend) *dashboard.Service {
	return dashboard.NewService(endpoint.NewResolver("", ""), fb, dashboard.NewStore(time.Hour))
}

// mountSettled mounts resource and waits until its lists stop loading.
func mountSettled(t *testing.T, svc *dashboard.Service, resource string) *dashboard.View {
	t.Helper()
	v, err := svc.Mount(context.Background(), resource)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		if v.List.Snapshot().Status == remotelist.StatusLoading {
			return false
		}
		return v.Teams == nil || v.Teams.Snapshot().Status != remotelist.StatusLoading
	}, 2*time.Second, 5*time.Millisecond)
	return v
}

func makeChiRequest(method, path string, form url.Values, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err, "failed to parse response body")
	return env
}
