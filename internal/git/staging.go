package git

import (
	"context"
	"fmt"
)

// StageFiles stages the given paths
func (r *RealRunner) StageFiles(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	if _, err := r.cmd.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	return nil
}

// StageAll stages all changes including untracked files
func (r *RealRunner) StageAll(ctx context.Context) error {
	if _, err := r.cmd.Run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}

// StagedFileNames returns the paths that differ between the index and HEAD
func (r *RealRunner) StagedFileNames(ctx context.Context) ([]string, error) {
	names, err := r.cmd.RunLines(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("failed to list staged changes: %w", err)
	}
	return names, nil
}

// TrackedFiles returns the subset of files that are in the index, including
// tracked files deleted from the work tree
func (r *RealRunner) TrackedFiles(ctx context.Context, files []string) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	args := append([]string{"ls-files", "--"}, files...)
	tracked, err := r.cmd.RunLines(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files: %w", err)
	}
	return tracked, nil
}
