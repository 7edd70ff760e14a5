package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"sitepub.dev/sitepub/internal/config"
	"sitepub.dev/sitepub/internal/git"
	"sitepub.dev/sitepub/internal/github"
	"sitepub.dev/sitepub/internal/output"
	"sitepub.dev/sitepub/internal/site"
)

// Context provides access to configuration, output and collaborators for commands
type Context struct {
	context.Context
	Config    config.Config
	Splog     *output.Splog
	RepoRoot  string
	Git       git.Runner
	GH        github.CLI
	Pages     *github.PagesClient
	Enablers  []github.Enabler
	Detectors []github.URLDetector
	Prober    *site.Prober
}

// NewContext creates a context for cfg with the standard provider chains
// built from gh and the optional Pages API client.
func NewContext(cfg config.Config, splog *output.Splog, runner git.Runner, gh github.CLI, pages *github.PagesClient) *Context {
	target := Target(cfg)
	return &Context{
		Context: context.Background(),
		Config:  cfg,
		Splog:   splog,
		Git:     runner,
		GH:      gh,
		Pages:   pages,
		Enablers: []github.Enabler{
			github.NewGHEnabler(gh, target),
			github.NewAPIEnabler(pages, target),
			github.NewManualEnabler(cfg.SettingsURL()),
		},
		Detectors: []github.URLDetector{
			github.NewGHDetector(gh, target),
			github.NewAPIDetector(pages, target),
		},
		Prober: site.NewProber(nil),
	}
}

// Target returns the Pages target described by cfg
func Target(cfg config.Config) github.Target {
	return github.Target{
		Owner:  cfg.Owner,
		Repo:   cfg.Repo,
		Branch: cfg.Branch,
		Path:   "/",
	}
}

// GetContext resolves the repository containing the working directory, loads
// configuration with flags applied and wires real collaborators.
// A working directory outside a git repository is an error.
func GetContext(ctx context.Context, flags *pflag.FlagSet) (*Context, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	repoRoot, err := git.FindRepoRoot(wd)
	if err != nil {
		return nil, err
	}

	if err := config.LoadEnvFile(repoRoot); err != nil {
		return nil, err
	}

	cfg, err := config.Load(repoRoot, flags)
	if err != nil {
		return nil, err
	}
	cfg.Message, err = config.ResolveMessage(cfg.Message, os.Stdin)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	splog, err := output.NewSplogWithConfig(os.Stdout, output.GetLogFilePath())
	if err != nil {
		return nil, err
	}

	trace := func(name string, args []string) {
		splog.Debug("$ %s %s", name, strings.Join(args, " "))
	}

	runner := git.NewRealRunner(wd)
	runner.SetTrace(trace)

	gh := git.NewToolRunner("gh", repoRoot)
	gh.SetTrace(trace)

	// The API client is optional; without a token only gh and manual remain
	var pages *github.PagesClient
	if token := github.TokenFromEnv(os.Getenv); token != "" {
		pages, err = github.NewPagesClient(ctx, token)
		if err != nil {
			splog.Debug("GitHub API client unavailable: %v", err)
			pages = nil
		}
	}

	rt := NewContext(cfg, splog, runner, gh, pages)
	rt.Context = ctx
	rt.RepoRoot = repoRoot
	return rt, nil
}
