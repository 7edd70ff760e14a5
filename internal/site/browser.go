package site

import (
	"context"
	"fmt"
	"os/exec"
)

// Open opens url in the default browser
func Open(ctx context.Context, url string) error {
	name, args := browserCommand(url)
	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("failed to open %s with %s: %w", url, name, err)
	}
	return nil
}
