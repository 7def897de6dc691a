// Package backend talks to the fitness tracker REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/octofit/dashboard/internal/collection"
	"github.com/octofit/dashboard/internal/observability"
)

const maxBodyBytes = 10 << 20

// StatusError is returned when the backend answers outside the 2xx range.
type StatusError struct {
	StatusCode int
	// Detail is the "detail" message of a structured error body, if any.
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// ConnectivityStatus is the result of probing the backend.
type ConnectivityStatus struct {
	Connected  bool
	StatusCode int
}

// ClientOption configures the Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
}

// WithTimeout bounds every request. Zero leaves the transport default in place.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// Client issues collection reads and partial updates against the backend.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client.
func NewClient(opts ...ClientOption) *Client {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}
	return &Client{httpClient: hc}
}

// FetchCollection GETs a list endpoint and decodes its payload.
func (c *Client) FetchCollection(ctx context.Context, url string) (collection.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return collection.Response{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.RecordBackendRequest(http.MethodGet, observability.OutcomeNetworkError, time.Since(start))
		return collection.Response{}, err
	}
	defer resp.Body.Close()

	slog.Debug("backend responded", "method", http.MethodGet, "endpoint", url, "status", resp.StatusCode)

	if !isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		observability.RecordBackendRequest(http.MethodGet, observability.OutcomeHTTPError, time.Since(start))
		return collection.Response{}, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		observability.RecordBackendRequest(http.MethodGet, observability.OutcomeNetworkError, time.Since(start))
		return collection.Response{}, fmt.Errorf("reading response body: %w", err)
	}

	decoded, err := collection.Decode(body)
	if err != nil {
		observability.RecordBackendRequest(http.MethodGet, observability.OutcomeDecodeError, time.Since(start))
		return collection.Response{}, err
	}

	observability.RecordBackendRequest(http.MethodGet, observability.OutcomeSuccess, time.Since(start))
	return decoded, nil
}

// Patch sends a partial update and returns the record the backend answers with.
// Non-2xx answers yield a *StatusError carrying the body's "detail" when present.
func (c *Client) Patch(ctx context.Context, url string, body any) (collection.Record, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return collection.Record{}, fmt.Errorf("encoding patch body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return collection.Record{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.RecordBackendRequest(http.MethodPatch, observability.OutcomeNetworkError, time.Since(start))
		return collection.Record{}, err
	}
	defer resp.Body.Close()

	slog.Debug("backend responded", "method", http.MethodPatch, "endpoint", url, "status", resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		observability.RecordBackendRequest(http.MethodPatch, observability.OutcomeNetworkError, time.Since(start))
		return collection.Record{}, fmt.Errorf("reading response body: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		observability.RecordBackendRequest(http.MethodPatch, observability.OutcomeHTTPError, time.Since(start))
		return collection.Record{}, &StatusError{StatusCode: resp.StatusCode, Detail: errorDetail(data)}
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		observability.RecordBackendRequest(http.MethodPatch, observability.OutcomeDecodeError, time.Since(start))
		return collection.Record{}, fmt.Errorf("decoding updated record: %w", err)
	}

	observability.RecordBackendRequest(http.MethodPatch, observability.OutcomeSuccess, time.Since(start))
	return collection.NewRecord(raw), nil
}

// CheckConnectivity probes url. Any answer below 500 counts as reachable.
func (c *Client) CheckConnectivity(ctx context.Context, url string) ConnectivityStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ConnectivityStatus{Connected: false}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ConnectivityStatus{Connected: false}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	return ConnectivityStatus{
		Connected:  resp.StatusCode < http.StatusInternalServerError,
		StatusCode: resp.StatusCode,
	}
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func errorDetail(body []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if s, ok := payload.Detail.(string); ok {
		return s
	}
	return ""
}
