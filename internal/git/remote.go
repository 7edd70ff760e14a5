package git

import (
	"context"
	"fmt"
)

// AddRemote registers a new remote
func (r *RealRunner) AddRemote(ctx context.Context, name, url string) error {
	if _, err := r.cmd.Run(ctx, "remote", "add", name, url); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

// SetRemoteURL points an existing remote at url
func (r *RealRunner) SetRemoteURL(ctx context.Context, name, url string) error {
	if _, err := r.cmd.Run(ctx, "remote", "set-url", name, url); err != nil {
		return fmt.Errorf("failed to set url of remote %s: %w", name, err)
	}
	return nil
}
