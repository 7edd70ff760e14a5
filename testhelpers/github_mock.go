package testhelpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// MockPagesRequest is a request captured by the mock Pages API
type MockPagesRequest struct {
	Method        string
	Path          string
	Authorization string
	Body          map[string]any
}

// MockPagesServerConfig configures the behavior of a mock GitHub Pages API
type MockPagesServerConfig struct {
	Owner string
	Repo  string
	// HTMLURL is returned by GET /repos/{owner}/{repo}/pages; empty means 404
	HTMLURL string
	// UpdateStatus is the status returned for PUT; zero means 204
	UpdateStatus int

	mu       sync.Mutex
	Requests []MockPagesRequest
}

// NewMockPagesServerConfig creates a new mock server config with defaults
func NewMockPagesServerConfig() *MockPagesServerConfig {
	return &MockPagesServerConfig{
		Owner: "owner",
		Repo:  "repo",
	}
}

// Captured returns a copy of the captured requests
func (c *MockPagesServerConfig) Captured() []MockPagesRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MockPagesRequest(nil), c.Requests...)
}

// NewMockPagesServer creates an httptest server that mocks the GitHub Pages endpoints
func NewMockPagesServer(t *testing.T, config *MockPagesServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockPagesServerConfig()
	}

	capture := func(r *http.Request) {
		req := MockPagesRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		}
		if b, err := io.ReadAll(r.Body); err == nil && len(b) > 0 {
			_ = json.Unmarshal(b, &req.Body)
		}
		config.mu.Lock()
		config.Requests = append(config.Requests, req)
		config.mu.Unlock()
	}

	path := "/repos/" + config.Owner + "/" + config.Repo + "/pages"
	mux := http.NewServeMux()

	mux.HandleFunc("PUT "+path, func(w http.ResponseWriter, r *http.Request) {
		capture(r)
		status := config.UpdateStatus
		if status == 0 {
			status = http.StatusNoContent
		}
		if status >= 400 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Validation Failed"})
			return
		}
		w.WriteHeader(status)
	})

	mux.HandleFunc("GET "+path, func(w http.ResponseWriter, r *http.Request) {
		capture(r)
		if config.HTMLURL == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Not Found"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"url":      "https://api.github.com" + path,
			"status":   "built",
			"html_url": config.HTMLURL,
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}
