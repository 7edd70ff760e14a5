package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	siteerrors "sitepub.dev/sitepub/internal/errors"
)

// FindRepoRoot returns the root of the work tree containing dir.
// An empty dir means the process working directory.
func FindRepoRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	repo, err := openRepository(dir)
	if err != nil {
		return "", siteerrors.NewNotARepositoryError(dir, err)
	}

	// Bare repositories have no work tree
	worktree, err := repo.Worktree()
	if err != nil {
		return "", siteerrors.NewNotARepositoryError(dir, err)
	}

	return worktree.Filesystem.Root(), nil
}

func openRepository(dir string) (*gogit.Repository, error) {
	if dir == "" {
		dir = "."
	}
	// Linked worktrees keep remotes and refs/remotes in the common dir
	return gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

// CommonDir returns the absolute git directory shared by every worktree of
// the repository containing dir.
func CommonDir(ctx context.Context, dir string) (string, error) {
	output, err := NewCommandRunner(dir).Run(ctx, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", siteerrors.NewNotARepositoryError(dir, err)
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(dir, output)
	}
	return filepath.Clean(output), nil
}

// IsInsideWorkTree asks git whether the working directory belongs to a work tree
func (r *RealRunner) IsInsideWorkTree(ctx context.Context) (bool, error) {
	output, err := r.cmd.Run(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		if errors.Is(err, siteerrors.ErrToolNotFound) {
			return false, fmt.Errorf("git is not installed or not in PATH: %w", err)
		}
		var cmdErr *siteerrors.CommandError
		if errors.As(err, &cmdErr) && ctx.Err() == nil {
			// git exits non-zero outside of a repository
			return false, nil
		}
		return false, err
	}
	return output == "true", nil
}

// RepoRoot returns the root of the work tree the runner operates in
func (r *RealRunner) RepoRoot() (string, error) {
	return FindRepoRoot(r.cmd.WorkingDir())
}

// RemoteURL returns the first configured URL of a remote.
// When go-git cannot see the remote, git itself is asked before reporting
// it missing.
func (r *RealRunner) RemoteURL(ctx context.Context, remote string) (string, error) {
	url, err := r.configuredRemoteURL(remote)
	if err == nil {
		return url, nil
	}
	if output, gitErr := r.cmd.Run(ctx, "remote", "get-url", remote); gitErr == nil && output != "" {
		return output, nil
	}
	return "", err
}

func (r *RealRunner) configuredRemoteURL(remote string) (string, error) {
	repo, err := openRepository(r.cmd.WorkingDir())
	if err != nil {
		return "", siteerrors.NewNotARepositoryError(r.cmd.WorkingDir(), err)
	}

	rem, err := repo.Remote(remote)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return "", siteerrors.NewRemoteNotFoundError(remote)
		}
		return "", fmt.Errorf("failed to read remote %s: %w", remote, err)
	}

	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", siteerrors.NewRemoteNotFoundError(remote)
	}
	return urls[0], nil
}

// RemoteBranchExists reports whether refs/remotes/<remote>/<branch> exists locally
func (r *RealRunner) RemoteBranchExists(remote, branch string) (bool, error) {
	repo, err := openRepository(r.cmd.WorkingDir())
	if err != nil {
		return false, siteerrors.NewNotARepositoryError(r.cmd.WorkingDir(), err)
	}

	_, err = repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to resolve %s/%s: %w", remote, branch, err)
	}
	return true, nil
}
