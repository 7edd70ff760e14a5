package cli

import (
	"github.com/spf13/cobra"

	"sitepub.dev/sitepub/internal/actions"
	"sitepub.dev/sitepub/internal/runtime"
	"sitepub.dev/sitepub/internal/site"
)

// newURLCmd creates the url command
func newURLCmd() *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the GitHub Pages URL of the site",
		Long: `Print the GitHub Pages URL of the site.

The URL is read from the Pages API through gh or GH_TOKEN. When neither
answers, https://<owner>.github.io/<repo>/ is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			ctx, err := runtime.GetContext(cmd.Context(), cmd.Flags())
			if err != nil {
				return err
			}
			defer func() { _ = ctx.Splog.Close() }()

			detection := actions.URLAction(ctx)
			if open {
				if err := site.Open(ctx.Context, detection.URL); err != nil {
					ctx.Splog.Warn("%v", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Open the URL in the default browser")
	return cmd
}
