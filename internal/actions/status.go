package actions

import (
	"errors"

	siteerrors "sitepub.dev/sitepub/internal/errors"
	"sitepub.dev/sitepub/internal/github"
	"sitepub.dev/sitepub/internal/runtime"
	"sitepub.dev/sitepub/internal/site"
)

// StatusReport describes the publishing state without changing anything
type StatusReport struct {
	RepoRoot       string
	RemoteURL      string
	RemoteMissing  bool
	TrackingBranch bool
	Staged         []string
	Removed        []string
	Missing        []string
	GHAvailable    bool
	TokenAvailable bool

	Detection *github.Detection
	Probe     *site.Result
}

// Warnings returns the problems a publish run would run into
func (r *StatusReport) Warnings() []string {
	var warnings []string
	if r.RemoteMissing {
		warnings = append(warnings, "remote is not configured; publish will add it")
	}
	if len(r.Missing) > 0 {
		warnings = append(warnings, "some configured files are missing and will be skipped")
	}
	if !r.GHAvailable && !r.TokenAvailable {
		warnings = append(warnings, "neither gh nor GH_TOKEN is available; Pages must be enabled manually")
	}
	return warnings
}

// StatusAction reports repository, remote, tooling and site state.
// It issues no commands that modify the repository.
func StatusAction(ctx *runtime.Context) (*StatusReport, error) {
	cfg := ctx.Config
	splog := ctx.Splog

	inside, err := ctx.Git.IsInsideWorkTree(ctx.Context)
	if err != nil {
		return nil, err
	}
	if !inside {
		return nil, siteerrors.NewNotARepositoryError(ctx.Git.WorkingDir(), nil)
	}

	report := &StatusReport{
		GHAvailable:    ctx.GH != nil && ctx.GH.Available(),
		TokenAvailable: ctx.Pages != nil,
	}

	// Repository checks
	splog.Heading("Repository:")
	if root, err := ctx.Git.RepoRoot(); err == nil {
		report.RepoRoot = root
		splog.Info("  root: %s", root)
	}

	url, err := ctx.Git.RemoteURL(ctx.Context, cfg.Remote)
	switch {
	case err == nil:
		report.RemoteURL = url
		splog.Info("  %s: %s", cfg.Remote, url)
	case errors.Is(err, siteerrors.ErrNoRemote):
		report.RemoteMissing = true
		splog.Warn("  %s: not configured", cfg.Remote)
	default:
		splog.Error("  %s: %s", cfg.Remote, describe(err))
	}

	exists, err := ctx.Git.RemoteBranchExists(cfg.Remote, cfg.Branch)
	if err == nil {
		report.TrackingBranch = exists
	}
	if report.TrackingBranch {
		splog.Info("  branch %s: tracking %s/%s", cfg.Branch, cfg.Remote, cfg.Branch)
	} else {
		splog.Info("  branch %s: not yet pushed (next push sets upstream)", cfg.Branch)
	}

	if !cfg.StageAll {
		_, report.Removed, report.Missing = partitionFiles(ctx, cfg.StagedFiles())
		for _, f := range report.Removed {
			splog.Info("  deleted file: %s (publish stages the removal)", f)
		}
		for _, f := range report.Missing {
			splog.Warn("  missing file: %s", f)
		}
	}
	if staged, err := ctx.Git.StagedFileNames(ctx.Context); err == nil {
		report.Staged = staged
		splog.Info("  staged files: %d", len(staged))
	}

	splog.Newline()

	// Tooling checks
	splog.Heading("Pages providers:")
	if report.GHAvailable {
		splog.Info("  ✅ gh")
	} else {
		splog.Info("  gh: not installed")
	}
	if report.TokenAvailable {
		splog.Info("  ✅ GH_TOKEN")
	} else {
		splog.Info("  GH_TOKEN: not set")
	}
	splog.Info("  manual: %s", cfg.SettingsURL())

	if !cfg.NoCheck {
		splog.Newline()
		splog.Heading("Site:")
		detection, result := checkSite(ctx)
		report.Detection = &detection
		report.Probe = &result
	}

	if warnings := report.Warnings(); len(warnings) > 0 {
		splog.Newline()
		for _, w := range warnings {
			splog.Warn("%s", w)
		}
	}
	return report, nil
}

// URLAction prints the detected hosting URL, or the constructed one
func URLAction(ctx *runtime.Context) github.Detection {
	detection := github.DetectSiteURL(ctx.Context, ctx.Detectors, ctx.Config.SiteURL())
	for _, err := range detection.Attempts {
		ctx.Splog.Debug("URL detection: %s", describe(err))
	}
	ctx.Splog.Info("%s", detection.URL)
	return detection
}
