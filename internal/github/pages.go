package github

import (
	"context"
	"fmt"
)

// CLI is the part of the gh command line tool sitepub relies on
type CLI interface {
	// Available reports whether gh is on PATH
	Available() bool
	// Run executes gh with args and returns trimmed stdout
	Run(ctx context.Context, args ...string) (string, error)
}

// Target identifies the repository and branch to serve with GitHub Pages
type Target struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
}

// Endpoint returns the REST path of the Pages resource
func (t Target) Endpoint() string {
	return pagesEndpoint(t.Owner, t.Repo)
}

func (t Target) path() string {
	if t.Path == "" {
		return "/"
	}
	return t.Path
}

// Status describes how an enable attempt ended
type Status int

const (
	// StatusEnabled means the provider accepted the request
	StatusEnabled Status = iota
	// StatusFailed means the provider was tried and returned an error
	StatusFailed
	// StatusManual means the user has to enable Pages in the settings page
	StatusManual
)

func (s Status) String() string {
	switch s {
	case StatusEnabled:
		return "enabled"
	case StatusFailed:
		return "failed"
	case StatusManual:
		return "manual"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the result of a single enable attempt
type Outcome struct {
	Provider string
	Status   Status
	Detail   string
	Err      error
}

// Enabler is one way of turning on GitHub Pages
type Enabler interface {
	Name() string
	Available() bool
	Enable(ctx context.Context) Outcome
}

// EnablePages tries each available enabler in order and stops at the first
// attempt that does not fail. Every attempt is returned.
func EnablePages(ctx context.Context, enablers []Enabler) []Outcome {
	var outcomes []Outcome
	for _, e := range enablers {
		if !e.Available() {
			continue
		}
		outcome := e.Enable(ctx)
		outcomes = append(outcomes, outcome)
		if outcome.Status != StatusFailed {
			break
		}
	}
	return outcomes
}

// GHEnabler enables Pages through `gh api`
type GHEnabler struct {
	cli    CLI
	target Target
}

// NewGHEnabler creates a GHEnabler
func NewGHEnabler(cli CLI, target Target) *GHEnabler {
	return &GHEnabler{cli: cli, target: target}
}

// Name implements Enabler
func (e *GHEnabler) Name() string { return "gh" }

// Available implements Enabler
func (e *GHEnabler) Available() bool {
	return e.cli != nil && e.cli.Available()
}

// Args returns the gh arguments for the PUT request.
// The fields produce the JSON body {"branch": <branch>, "path": "/"}.
func (e *GHEnabler) Args() []string {
	return []string{
		"api", "--method", "PUT", e.target.Endpoint(),
		"-f", "branch=" + e.target.Branch,
		"-f", "path=" + e.target.path(),
	}
}

// Enable implements Enabler
func (e *GHEnabler) Enable(ctx context.Context) Outcome {
	output, err := e.cli.Run(ctx, e.Args()...)
	if err != nil {
		return Outcome{Provider: e.Name(), Status: StatusFailed, Err: err}
	}
	return Outcome{Provider: e.Name(), Status: StatusEnabled, Detail: output}
}

// APIEnabler enables Pages with an authenticated REST call
type APIEnabler struct {
	client *PagesClient
	target Target
}

// NewAPIEnabler creates an APIEnabler. A nil client makes it unavailable.
func NewAPIEnabler(client *PagesClient, target Target) *APIEnabler {
	return &APIEnabler{client: client, target: target}
}

// Name implements Enabler
func (e *APIEnabler) Name() string { return "api" }

// Available implements Enabler
func (e *APIEnabler) Available() bool { return e.client != nil }

// Enable implements Enabler
func (e *APIEnabler) Enable(ctx context.Context) Outcome {
	if err := e.client.UpdatePagesSource(ctx, e.target.Owner, e.target.Repo, e.target.Branch, e.target.path()); err != nil {
		return Outcome{Provider: e.Name(), Status: StatusFailed, Err: err}
	}
	return Outcome{Provider: e.Name(), Status: StatusEnabled}
}

// ManualEnabler tells the user where to enable Pages by hand
type ManualEnabler struct {
	settingsURL string
}

// NewManualEnabler creates a ManualEnabler pointing at settingsURL
func NewManualEnabler(settingsURL string) *ManualEnabler {
	return &ManualEnabler{settingsURL: settingsURL}
}

// Name implements Enabler
func (e *ManualEnabler) Name() string { return "manual" }

// Available implements Enabler
func (e *ManualEnabler) Available() bool { return true }

// Enable implements Enabler
func (e *ManualEnabler) Enable(context.Context) Outcome {
	return Outcome{Provider: e.Name(), Status: StatusManual, Detail: e.settingsURL}
}
