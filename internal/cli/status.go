package cli

import (
	"github.com/spf13/cobra"

	"sitepub.dev/sitepub/internal/actions"
	"sitepub.dev/sitepub/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show repository, remote and site status without changing anything",
		Long: `Show the state sitepub would publish from.

Checks:
  - Repository: root, remote URL, tracking branch, missing site files, staged files
  - Pages providers: gh CLI, GH_TOKEN, manual settings page
  - Site: detected URL and whether it is live`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			ctx, err := runtime.GetContext(cmd.Context(), cmd.Flags())
			if err != nil {
				return err
			}
			defer func() { _ = ctx.Splog.Close() }()

			_, err = actions.StatusAction(ctx)
			return err
		},
	}
	return cmd
}
