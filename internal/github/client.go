// Package github provides GitHub Pages operations through the gh CLI and the REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// TokenEnvVars lists the environment variables checked for a bearer token, in order
var TokenEnvVars = []string{"GH_TOKEN", "GITHUB_TOKEN"}

// TokenFromEnv returns the first non-empty token from TokenEnvVars.
// getenv defaults to os.Getenv.
func TokenFromEnv(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, key := range TokenEnvVars {
		if token := strings.TrimSpace(getenv(key)); token != "" {
			return token
		}
	}
	return ""
}

// PagesClient talks to the GitHub Pages REST endpoints
type PagesClient struct {
	client *github.Client
}

// ClientOption customizes the underlying go-github client
type ClientOption func(*github.Client) error

// WithBaseURL points the client at a different API root, such as a GitHub
// Enterprise instance (https://host/api/v3/) or a test server.
func WithBaseURL(raw string) ClientOption {
	return func(c *github.Client) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		baseURL, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("failed to parse base URL %s: %w", raw, err)
		}
		c.BaseURL = baseURL
		return nil
	}
}

// NewPagesClient creates a client authenticated with a static bearer token
func NewPagesClient(ctx context.Context, token string, opts ...ClientOption) (*PagesClient, error) {
	if token == "" {
		return nil, fmt.Errorf("empty GitHub token")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return &PagesClient{client: client}, nil
}

// pagesSourceRequest is the body of PUT /repos/{owner}/{repo}/pages
type pagesSourceRequest struct {
	Source pagesSource `json:"source"`
}

type pagesSource struct {
	Branch string `json:"branch"`
	Path   string `json:"path"`
}

// UpdatePagesSource sets the branch and path GitHub Pages publishes from
func (c *PagesClient) UpdatePagesSource(ctx context.Context, owner, repo, branch, path string) error {
	body := &pagesSourceRequest{Source: pagesSource{Branch: branch, Path: path}}

	req, err := c.client.NewRequest(http.MethodPut, pagesEndpoint(owner, repo), body)
	if err != nil {
		return fmt.Errorf("failed to build pages request: %w", err)
	}

	if _, err := c.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("failed to update pages source: %w", err)
	}
	return nil
}

// PagesURL returns the html_url GitHub reports for the Pages site
func (c *PagesClient) PagesURL(ctx context.Context, owner, repo string) (string, error) {
	pages, _, err := c.client.Repositories.GetPagesInfo(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("failed to get pages info: %w", err)
	}
	return pages.GetHTMLURL(), nil
}

func pagesEndpoint(owner, repo string) string {
	return fmt.Sprintf("repos/%s/%s/pages", owner, repo)
}
