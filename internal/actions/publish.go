package actions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	siteerrors "sitepub.dev/sitepub/internal/errors"
	"sitepub.dev/sitepub/internal/git"
	"sitepub.dev/sitepub/internal/github"
	"sitepub.dev/sitepub/internal/runtime"
	"sitepub.dev/sitepub/internal/site"
)

// PublishReport records what a publish run did
type PublishReport struct {
	// Missing lists configured files that were not found and not staged
	Missing []string
	// Removed lists tracked files deleted from the work tree; their removal is staged
	Removed []string
	Staged  []string

	Committed bool
	CommitErr error

	RemoteURL    string
	RemoteErr    error
	RemoteAdded  bool
	RemoteHTTPS  bool
	PushSkipped  bool
	Pushed       bool
	SetUpstream  bool
	PushErr      error
	PagesResults []github.Outcome

	Detection *github.Detection
	Probe     *site.Result
}

// PagesEnabled reports whether any provider accepted the Pages request
func (r *PublishReport) PagesEnabled() bool {
	for _, o := range r.PagesResults {
		if o.Status == github.StatusEnabled {
			return true
		}
	}
	return false
}

// PublishAction stages, commits and pushes the site, optionally enables
// GitHub Pages and checks the published URL.
// Only a missing repository is returned as an error; every other failure is
// reported and recorded in the returned PublishReport.
func PublishAction(ctx *runtime.Context) (*PublishReport, error) {
	cfg := ctx.Config
	splog := ctx.Splog

	inside, err := ctx.Git.IsInsideWorkTree(ctx.Context)
	if err != nil {
		return nil, err
	}
	if !inside {
		return nil, siteerrors.NewNotARepositoryError(ctx.Git.WorkingDir(), nil)
	}

	if cfg.DryRun {
		splog.Info("Dry run: commit, push and Pages requests are only printed.")
	}

	report := &PublishReport{}

	stageAndCommit(ctx, report)
	ensureRemote(ctx, report)

	if cfg.NoPush {
		report.PushSkipped = true
		splog.Info("--no-push set: skipping push step.")
	} else {
		push(ctx, report)
	}

	if cfg.EnablePages {
		enablePages(ctx, report)
	}

	if !cfg.NoCheck {
		detection, result := checkSite(ctx)
		report.Detection = &detection
		report.Probe = &result
	}

	printSummary(ctx, report)
	return report, nil
}

func stageAndCommit(ctx *runtime.Context, report *PublishReport) {
	cfg := ctx.Config
	splog := ctx.Splog

	var stageErr error
	if cfg.StageAll {
		stageErr = ctx.Git.StageAll(ctx.Context)
	} else {
		present, removed, missing := partitionFiles(ctx, cfg.StagedFiles())
		report.Removed = removed
		report.Missing = missing
		for _, f := range removed {
			splog.Info("Staging removal of %s", f)
		}
		for _, f := range missing {
			splog.Warn("Skipping %s: file not found", f)
		}
		if paths := append(present, removed...); len(paths) > 0 {
			stageErr = ctx.Git.StageFiles(ctx.Context, paths)
		}
	}
	if stageErr != nil {
		splog.Error("Failed to stage files: %s", describe(stageErr))
	}

	staged, err := ctx.Git.StagedFileNames(ctx.Context)
	if err != nil {
		splog.Error("Failed to list staged files: %s", describe(err))
		return
	}
	report.Staged = staged

	if len(staged) == 0 {
		splog.Info("No changes to commit.")
		return
	}

	splog.Info("Staged files:")
	for _, f := range staged {
		splog.Info("  %s", f)
	}

	if cfg.DryRun {
		splog.Info("Dry-run: would commit with message: %s", cfg.Message)
		return
	}

	if err := ctx.Git.Commit(ctx.Context, cfg.Message); err != nil {
		report.CommitErr = err
		splog.Error("Commit failed: %s", describe(err))
		splog.Tip("Check that user.name and user.email are configured: git config user.email \"you@example.com\"")
		return
	}
	report.Committed = true
	splog.Success("Committed %d file(s): %s", len(staged), cfg.Message)
}

// existingFiles splits files into those present under dir and those missing
func existingFiles(dir string, files []string) (present, missing []string) {
	for _, f := range files {
		path := f
		if dir != "" && !filepath.IsAbs(f) {
			path = filepath.Join(dir, f)
		}
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, f)
			continue
		}
		present = append(present, f)
	}
	return present, missing
}

// partitionFiles splits files into present paths, tracked paths deleted from
// the work tree, and paths git has never seen
func partitionFiles(ctx *runtime.Context, files []string) (present, removed, missing []string) {
	present, absent := existingFiles(ctx.Git.WorkingDir(), files)
	if len(absent) == 0 {
		return present, nil, nil
	}

	tracked, err := ctx.Git.TrackedFiles(ctx.Context, absent)
	if err != nil {
		ctx.Splog.Debug("Could not list tracked files: %v", err)
		return present, nil, absent
	}
	for _, f := range absent {
		if slices.Contains(tracked, filepath.ToSlash(filepath.Clean(f))) {
			removed = append(removed, f)
		} else {
			missing = append(missing, f)
		}
	}
	return present, removed, missing
}

// ensureRemote adds the remote when it is missing and rewrites it to HTTPS
// when requested. Failures are reported; the push step surfaces the effect.
func ensureRemote(ctx *runtime.Context, report *PublishReport) {
	cfg := ctx.Config
	splog := ctx.Splog

	current, err := ctx.Git.RemoteURL(ctx.Context, cfg.Remote)
	if err != nil {
		if !errors.Is(err, siteerrors.ErrNoRemote) {
			report.RemoteErr = err
			splog.Error("Failed to read remote %s: %s", cfg.Remote, describe(err))
			return
		}

		url := cfg.SSHRemoteURL()
		if cfg.UseHTTPS {
			url = cfg.HTTPSRemoteURL()
		}
		splog.Info("No %s remote found. Adding %s -> %s", cfg.Remote, cfg.Remote, url)
		if err := ctx.Git.AddRemote(ctx.Context, cfg.Remote, url); err != nil {
			report.RemoteErr = err
			splog.Error("Failed to add remote %s: %s", cfg.Remote, describe(err))
			return
		}
		report.RemoteAdded = true
		report.RemoteHTTPS = cfg.UseHTTPS
		report.RemoteURL = url
		return
	}

	report.RemoteURL = current
	if !cfg.UseHTTPS {
		splog.Info("%s remote configured: %s", cfg.Remote, current)
		return
	}

	url := cfg.HTTPSRemoteURL()
	if err := ctx.Git.SetRemoteURL(ctx.Context, cfg.Remote, url); err != nil {
		report.RemoteErr = err
		splog.Error("Failed to set %s to %s: %s", cfg.Remote, url, describe(err))
		return
	}
	report.RemoteURL = url
	report.RemoteHTTPS = true
	splog.Info("Set %s remote to %s", cfg.Remote, url)
}

func push(ctx *runtime.Context, report *PublishReport) {
	cfg := ctx.Config
	splog := ctx.Splog

	exists, err := ctx.Git.RemoteBranchExists(cfg.Remote, cfg.Branch)
	if err != nil {
		splog.Debug("Could not read tracking branch %s/%s: %v", cfg.Remote, cfg.Branch, err)
	}
	report.SetUpstream = !exists

	splog.Info("Pushing to %s %s...", cfg.Remote, cfg.Branch)
	if cfg.DryRun {
		splog.Info("Dry-run: would run:")
		splog.Command("git", git.PushArgs(cfg.Remote, cfg.Branch, report.SetUpstream))
		return
	}

	if err := ctx.Git.Push(ctx.Context, cfg.Remote, cfg.Branch, report.SetUpstream); err != nil {
		report.PushErr = err
		splog.Error("Push failed: %s", describe(err))
		splog.Tip("Pushing requires SSH keys or HTTPS credentials for GitHub. Try --use-https.")
		return
	}
	report.Pushed = true
	if report.SetUpstream {
		splog.Success("Pushed %s to %s and set upstream", cfg.Branch, cfg.Remote)
	} else {
		splog.Success("Pushed %s to %s", cfg.Branch, cfg.Remote)
	}
}

func enablePages(ctx *runtime.Context, report *PublishReport) {
	cfg := ctx.Config
	splog := ctx.Splog

	splog.Info("Enabling GitHub Pages for %s/%s (branch %s)...", cfg.Owner, cfg.Repo, cfg.Branch)
	if cfg.DryRun {
		splog.Info("Dry-run: would request Pages from branch %s, path /", cfg.Branch)
		return
	}

	report.PagesResults = github.EnablePages(ctx.Context, ctx.Enablers)
	for _, outcome := range report.PagesResults {
		switch outcome.Status {
		case github.StatusEnabled:
			splog.Success("GitHub Pages enabled via %s", outcome.Provider)
		case github.StatusFailed:
			splog.Warn("Enabling Pages via %s failed: %s", outcome.Provider, describe(outcome.Err))
		case github.StatusManual:
			splog.Info("Enable GitHub Pages manually at %s", outcome.Detail)
			splog.Tip("Choose branch %s and folder / as the source.", cfg.Branch)
		}
	}
}

// checkSite detects the hosting URL and probes it once
func checkSite(ctx *runtime.Context) (github.Detection, site.Result) {
	cfg := ctx.Config
	splog := ctx.Splog

	detection := github.DetectSiteURL(ctx.Context, ctx.Detectors, cfg.SiteURL())
	for _, err := range detection.Attempts {
		splog.Debug("URL detection: %s", describe(err))
	}
	if detection.Source == github.FallbackSource {
		splog.Info("Site URL: %s", detection.URL)
	} else {
		splog.Info("Site URL: %s (from %s)", detection.URL, detection.Source)
	}

	result := ctx.Prober.Probe(ctx.Context, detection.URL)
	if result.Live() {
		msg := fmt.Sprintf("Site is live (HTTP %s)", result.Code())
		if result.Title != "" {
			msg += fmt.Sprintf(": %q", result.Title)
		}
		splog.Success("%s", msg)
	} else {
		splog.Warn("Site not yet live (HTTP %s). Pages can take a few minutes to build.", result.Code())
		if result.Err != nil {
			splog.Debug("Probe error: %v", result.Err)
		}
	}
	return detection, result
}

func printSummary(ctx *runtime.Context, report *PublishReport) {
	splog := ctx.Splog
	splog.Newline()

	var parts []string
	switch {
	case report.Committed:
		parts = append(parts, "committed")
	case report.CommitErr != nil:
		parts = append(parts, "commit failed")
	case len(report.Staged) == 0:
		parts = append(parts, "nothing to commit")
	}
	switch {
	case report.PushSkipped:
		parts = append(parts, "push skipped")
	case report.PushErr != nil:
		parts = append(parts, "push failed")
	case report.Pushed:
		parts = append(parts, "pushed")
	}
	if ctx.Config.EnablePages && len(report.PagesResults) > 0 {
		if report.PagesEnabled() {
			parts = append(parts, "pages enabled")
		} else {
			parts = append(parts, "pages not enabled")
		}
	}
	if report.RemoteErr != nil {
		parts = append(parts, "remote not updated")
	}
	if report.Probe != nil {
		if report.Probe.Live() {
			parts = append(parts, "site live")
		} else {
			parts = append(parts, "site not yet live")
		}
	}

	if len(parts) == 0 {
		splog.Info("Done.")
		return
	}
	if report.RemoteErr != nil || report.PushErr != nil {
		splog.Warn("Done with errors: %s.", strings.Join(parts, ", "))
		return
	}
	splog.Info("Done: %s.", strings.Join(parts, ", "))
}

// describe returns a one-line description of err, preferring command output
func describe(err error) string {
	if err == nil {
		return ""
	}
	var cmdErr *siteerrors.CommandError
	if errors.As(err, &cmdErr) {
		if out := cmdErr.Output(); out != "" {
			return firstLine(out)
		}
		if cmdErr.Err != nil {
			return cmdErr.Err.Error()
		}
	}
	return firstLine(err.Error())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
