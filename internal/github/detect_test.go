package github_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"sitepub.dev/sitepub/internal/github"
	"sitepub.dev/sitepub/testhelpers"
)

const fallbackURL = "https://owner.github.io/repo/"

func TestDetectSiteURL(t *testing.T) {
	ctx := context.Background()

	t.Run("uses gh html_url", func(t *testing.T) {
		cli := testhelpers.NewFakeCLI()
		gh := github.NewGHDetector(cli, target)
		require.Equal(t, []string{"api", "repos/owner/repo/pages", "--jq", ".html_url"}, gh.Args())
		cli.On(gh.Args(), "https://example.com/site/\n", nil)

		d := github.DetectSiteURL(ctx, []github.URLDetector{gh}, fallbackURL)
		require.Equal(t, "https://example.com/site/", d.URL)
		require.Equal(t, "gh", d.Source)
	})

	t.Run("null result falls back", func(t *testing.T) {
		cli := testhelpers.NewFakeCLI()
		gh := github.NewGHDetector(cli, target)
		cli.On(gh.Args(), "null", nil)

		d := github.DetectSiteURL(ctx, []github.URLDetector{gh}, fallbackURL)
		require.Equal(t, fallbackURL, d.URL)
		require.Equal(t, github.FallbackSource, d.Source)
		require.Len(t, d.Attempts, 1)
	})

	t.Run("error falls back", func(t *testing.T) {
		cli := testhelpers.NewFakeCLI()
		gh := github.NewGHDetector(cli, target)
		cli.On(gh.Args(), "", errors.New("HTTP 404"))

		d := github.DetectSiteURL(ctx, []github.URLDetector{gh}, fallbackURL)
		require.Equal(t, fallbackURL, d.URL)
	})

	t.Run("no tool available gives the constructed URL", func(t *testing.T) {
		cli := testhelpers.NewFakeCLI()
		cli.Installed = false

		d := github.DetectSiteURL(ctx, []github.URLDetector{
			github.NewGHDetector(cli, target), github.NewAPIDetector(nil, target),
		}, fallbackURL)
		require.Equal(t, fallbackURL, d.URL)
		require.Empty(t, d.Attempts)
		require.Zero(t, cli.CallCount())
	})

	t.Run("api detector reads html_url", func(t *testing.T) {
		cfg := testhelpers.NewMockPagesServerConfig()
		cfg.HTMLURL = "https://owner.github.io/repo/"
		api := github.NewAPIDetector(newAPIClient(t, cfg), target)

		d := github.DetectSiteURL(ctx, []github.URLDetector{api}, "https://unused/")
		require.Equal(t, "https://owner.github.io/repo/", d.URL)
		require.Equal(t, "api", d.Source)
	})

	t.Run("api 404 falls back", func(t *testing.T) {
		cfg := testhelpers.NewMockPagesServerConfig()
		api := github.NewAPIDetector(newAPIClient(t, cfg), target)

		d := github.DetectSiteURL(ctx, []github.URLDetector{api}, fallbackURL)
		require.Equal(t, fallbackURL, d.URL)
		require.Len(t, d.Attempts, 1)
	})
}
