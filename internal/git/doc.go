// Package git provides the Git operations needed to publish a site.
//
// It wraps git command execution and go-git repository inspection behind the
// Runner interface:
//   - Repository detection (work tree check, repository root)
//   - Staging and commits
//   - Remote management (add, set-url, tracking refs)
//   - Pushing, with upstream setup on first publish
//
// This package should be the only place where git commands are executed.
package git
