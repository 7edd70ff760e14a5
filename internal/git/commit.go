package git

import (
	"context"
	"fmt"
)

// Commit records the staged changes with the given message
func (r *RealRunner) Commit(ctx context.Context, message string) error {
	if _, err := r.cmd.Run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
