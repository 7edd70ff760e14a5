package github

import (
	"context"
	"fmt"
	"strings"

	siteerrors "sitepub.dev/sitepub/internal/errors"
)

// URLDetector asks a provider for the published site URL
type URLDetector interface {
	Name() string
	Available() bool
	DetectURL(ctx context.Context) (string, error)
}

// Detection records where the site URL came from
type Detection struct {
	URL      string
	Source   string
	Attempts []error
}

// FallbackSource names the constructed URL in a Detection
const FallbackSource = "constructed"

// DetectSiteURL returns the first non-empty URL reported by an available
// detector, or fallback when none answers.
func DetectSiteURL(ctx context.Context, detectors []URLDetector, fallback string) Detection {
	var attempts []error
	for _, d := range detectors {
		if !d.Available() {
			continue
		}
		u, err := d.DetectURL(ctx)
		if err != nil {
			attempts = append(attempts, fmt.Errorf("%s: %w", d.Name(), err))
			continue
		}
		if u = normalizeURL(u); u != "" {
			return Detection{URL: u, Source: d.Name(), Attempts: attempts}
		}
		attempts = append(attempts, fmt.Errorf("%s: %w", d.Name(), siteerrors.ErrEmptyResult))
	}
	return Detection{URL: fallback, Source: FallbackSource, Attempts: attempts}
}

// normalizeURL treats the jq rendering of a missing field as empty
func normalizeURL(u string) string {
	u = strings.Trim(strings.TrimSpace(u), `"`)
	if u == "null" {
		return ""
	}
	return u
}

// GHDetector reads html_url with `gh api --jq`
type GHDetector struct {
	cli    CLI
	target Target
}

// NewGHDetector creates a GHDetector
func NewGHDetector(cli CLI, target Target) *GHDetector {
	return &GHDetector{cli: cli, target: target}
}

// Name implements URLDetector
func (d *GHDetector) Name() string { return "gh" }

// Available implements URLDetector
func (d *GHDetector) Available() bool {
	return d.cli != nil && d.cli.Available()
}

// Args returns the gh arguments for the html_url query
func (d *GHDetector) Args() []string {
	return []string{"api", d.target.Endpoint(), "--jq", ".html_url"}
}

// DetectURL implements URLDetector
func (d *GHDetector) DetectURL(ctx context.Context) (string, error) {
	return d.cli.Run(ctx, d.Args()...)
}

// APIDetector reads html_url from the REST API
type APIDetector struct {
	client *PagesClient
	target Target
}

// NewAPIDetector creates an APIDetector. A nil client makes it unavailable.
func NewAPIDetector(client *PagesClient, target Target) *APIDetector {
	return &APIDetector{client: client, target: target}
}

// Name implements URLDetector
func (d *APIDetector) Name() string { return "api" }

// Available implements URLDetector
func (d *APIDetector) Available() bool { return d.client != nil }

// DetectURL implements URLDetector
func (d *APIDetector) DetectURL(ctx context.Context) (string, error) {
	return d.client.PagesURL(ctx, d.target.Owner, d.target.Repo)
}
