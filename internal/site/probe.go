// Package site checks whether a published site is reachable.
package site

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultProbeTimeout bounds a single liveness request
const DefaultProbeTimeout = 30 * time.Second

// maxTitleBytes limits how much of the page is read when looking for a title
const maxTitleBytes = 1 << 20

// IsLive classifies an HTTP status code. 2xx and 3xx are live.
func IsLive(status int) bool {
	return status >= 200 && status < 400
}

// Result is the outcome of probing a URL
type Result struct {
	URL        string
	StatusCode int
	Title      string
	Err        error
}

// Live reports whether the probed URL answered with a live status
func (r Result) Live() bool {
	return IsLive(r.StatusCode)
}

// Code renders the status code the way curl does, with 000 for no response
func (r Result) Code() string {
	return fmt.Sprintf("%03d", r.StatusCode)
}

// Prober issues unauthenticated GET requests. Redirects are not followed
// so a 3xx answer is reported as such.
type Prober struct {
	client *http.Client
}

// NewProber creates a Prober. A nil client gets a default one with
// DefaultProbeTimeout.
func NewProber(client *http.Client) *Prober {
	if client == nil {
		client = &http.Client{Timeout: DefaultProbeTimeout}
	}
	c := *client
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Prober{client: &c}
}

// Probe requests url once. Transport failures are returned in Result.Err
// with a zero status code.
func (p *Prober) Probe(ctx context.Context, url string) Result {
	result := Result{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Err = fmt.Errorf("failed to build request for %s: %w", url, err)
		return result
	}
	req.Header.Set("User-Agent", "sitepub")

	resp, err := p.client.Do(req)
	if err != nil {
		result.Err = err
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode == http.StatusOK && strings.Contains(resp.Header.Get("Content-Type"), "html") {
		result.Title = pageTitle(io.LimitReader(resp.Body, maxTitleBytes))
	}
	return result
}

func pageTitle(r io.Reader) string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
