package github_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"sitepub.dev/sitepub/internal/github"
	"sitepub.dev/sitepub/testhelpers"
)

var target = github.Target{Owner: "owner", Repo: "repo", Branch: "main"}

func newAPIClient(t *testing.T, cfg *testhelpers.MockPagesServerConfig) *github.PagesClient {
	t.Helper()
	server := testhelpers.NewMockPagesServer(t, cfg)
	client, err := github.NewPagesClient(context.Background(), "test-token", github.WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestGHEnabler(t *testing.T) {
	t.Run("issues PUT with branch and path fields", func(t *testing.T) {
		enabler := github.NewGHEnabler(testhelpers.NewFakeCLI(), target)
		require.Equal(t, []string{
			"api", "--method", "PUT", "repos/owner/repo/pages",
			"-f", "branch=main", "-f", "path=/",
		}, enabler.Args())
	})

	t.Run("reports success", func(t *testing.T) {
		cli := testhelpers.NewFakeCLI()
		enabler := github.NewGHEnabler(cli, target)
		cli.On(enabler.Args(), "", nil)

		outcome := enabler.Enable(context.Background())
		require.Equal(t, github.StatusEnabled, outcome.Status)
		require.Equal(t, "gh", outcome.Provider)
		require.NoError(t, outcome.Err)
	})

	t.Run("reports failure", func(t *testing.T) {
		cli := testhelpers.NewFakeCLI()
		enabler := github.NewGHEnabler(cli, target)
		cli.On(enabler.Args(), "", errors.New("HTTP 409"))

		outcome := enabler.Enable(context.Background())
		require.Equal(t, github.StatusFailed, outcome.Status)
		require.Error(t, outcome.Err)
	})

	t.Run("unavailable without gh", func(t *testing.T) {
		cli := testhelpers.NewFakeCLI()
		cli.Installed = false
		require.False(t, github.NewGHEnabler(cli, target).Available())
		require.False(t, github.NewGHEnabler(nil, target).Available())
	})
}

func TestAPIEnabler(t *testing.T) {
	t.Run("sends source body with bearer token", func(t *testing.T) {
		cfg := testhelpers.NewMockPagesServerConfig()
		enabler := github.NewAPIEnabler(newAPIClient(t, cfg), target)
		require.True(t, enabler.Available())

		outcome := enabler.Enable(context.Background())
		require.Equal(t, github.StatusEnabled, outcome.Status, "err: %v", outcome.Err)

		reqs := cfg.Captured()
		require.Len(t, reqs, 1)
		require.Equal(t, http.MethodPut, reqs[0].Method)
		require.Equal(t, "Bearer test-token", reqs[0].Authorization)
		require.Equal(t, map[string]any{
			"source": map[string]any{"branch": "main", "path": "/"},
		}, reqs[0].Body)
	})

	t.Run("reports API errors", func(t *testing.T) {
		cfg := testhelpers.NewMockPagesServerConfig()
		cfg.UpdateStatus = http.StatusUnprocessableEntity
		outcome := github.NewAPIEnabler(newAPIClient(t, cfg), target).Enable(context.Background())
		require.Equal(t, github.StatusFailed, outcome.Status)
		require.Error(t, outcome.Err)
	})

	t.Run("unavailable without client", func(t *testing.T) {
		require.False(t, github.NewAPIEnabler(nil, target).Available())
	})
}

func TestEnablePages(t *testing.T) {
	manual := github.NewManualEnabler("https://github.com/owner/repo/settings/pages")

	t.Run("stops at first success", func(t *testing.T) {
		cli := testhelpers.NewFakeCLI()
		gh := github.NewGHEnabler(cli, target)
		cli.On(gh.Args(), "", nil)

		outcomes := github.EnablePages(context.Background(), []github.Enabler{gh, github.NewAPIEnabler(nil, target), manual})
		require.Len(t, outcomes, 1)
		require.Equal(t, "gh", outcomes[0].Provider)
	})

	t.Run("falls through failures to the next provider", func(t *testing.T) {
		cli := testhelpers.NewFakeCLI()
		gh := github.NewGHEnabler(cli, target)
		cli.On(gh.Args(), "", errors.New("gh: not authenticated"))

		cfg := testhelpers.NewMockPagesServerConfig()
		api := github.NewAPIEnabler(newAPIClient(t, cfg), target)

		outcomes := github.EnablePages(context.Background(), []github.Enabler{gh, api, manual})
		require.Len(t, outcomes, 2)
		require.Equal(t, github.StatusFailed, outcomes[0].Status)
		require.Equal(t, github.StatusEnabled, outcomes[1].Status)
	})

	t.Run("manual instructions when nothing is available", func(t *testing.T) {
		cli := testhelpers.NewFakeCLI()
		cli.Installed = false

		outcomes := github.EnablePages(context.Background(), []github.Enabler{
			github.NewGHEnabler(cli, target), github.NewAPIEnabler(nil, target), manual,
		})
		require.Len(t, outcomes, 1)
		require.Equal(t, github.StatusManual, outcomes[0].Status)
		require.Equal(t, "https://github.com/owner/repo/settings/pages", outcomes[0].Detail)
		require.Zero(t, cli.CallCount())
	})
}

func TestTokenFromEnv(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	require.Empty(t, github.TokenFromEnv(getenv))

	env["GITHUB_TOKEN"] = "fallback"
	require.Equal(t, "fallback", github.TokenFromEnv(getenv))

	env["GH_TOKEN"] = " primary "
	require.Equal(t, "primary", github.TokenFromEnv(getenv))
}

func TestNewPagesClientRequiresToken(t *testing.T) {
	_, err := github.NewPagesClient(context.Background(), "")
	require.Error(t, err)
}
