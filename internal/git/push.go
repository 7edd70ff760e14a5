package git

import (
	"context"
	"fmt"
)

// PushArgs returns the git arguments used to push branch to remote.
// setUpstream is used on first publish, when no remote-tracking branch exists yet.
func PushArgs(remote, branch string, setUpstream bool) []string {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "--set-upstream")
	}
	return append(args, remote, branch)
}

// Push pushes branch to remote
func (r *RealRunner) Push(ctx context.Context, remote, branch string, setUpstream bool) error {
	if _, err := r.cmd.Run(ctx, PushArgs(remote, branch, setUpstream)...); err != nil {
		return fmt.Errorf("failed to push branch %s to %s: %w", branch, remote, err)
	}
	return nil
}
