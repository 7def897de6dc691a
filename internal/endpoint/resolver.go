// Package endpoint derives backend collection URLs from injected configuration.
package endpoint

import (
	"fmt"
	"strings"
)

const localBase = "http://localhost:8000"

// Resolver builds resource URLs. The zero value targets the local backend.
type Resolver struct {
	// SandboxName is the Codespaces environment name. When set, URLs point at the
	// forwarded port 8000 of that environment.
	SandboxName string
	// BaseURL overrides both the sandbox and the local base when non-empty.
	BaseURL string
}

// NewResolver creates a Resolver from the sandbox signal and an optional base override.
func NewResolver(sandboxName, baseURL string) Resolver {
	return Resolver{
		SandboxName: strings.TrimSpace(sandboxName),
		BaseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// URL returns the collection endpoint of resource, always with a trailing slash.
func (r Resolver) URL(resource string) string {
	if r.BaseURL != "" {
		return fmt.Sprintf("%s/api/%s/", r.BaseURL, resource)
	}
	return Resolve(r.SandboxName, resource)
}

// Resolve maps a sandbox signal and resource name to the collection endpoint.
func Resolve(sandboxName, resource string) string {
	if sandboxName != "" {
		return fmt.Sprintf("https://%s-8000.app.github.dev/api/%s/", sandboxName, resource)
	}
	return fmt.Sprintf("%s/api/%s/", localBase, resource)
}

// ItemURL returns the URL of one record below a collection endpoint.
func ItemURL(collectionURL, id string) string {
	if !strings.HasSuffix(collectionURL, "/") {
		collectionURL += "/"
	}
	return collectionURL + id + "/"
}
