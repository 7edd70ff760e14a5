package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitepub.dev/sitepub/internal/actions"
	"sitepub.dev/sitepub/internal/config"
	"sitepub.dev/sitepub/internal/output"
	"sitepub.dev/sitepub/internal/runtime"
)

// NewRootCmd creates the root cobra command. Running it without a
// subcommand publishes the site.
func NewRootCmd(version, commit, date string) *cobra.Command {
	def := config.Default()

	rootCmd := &cobra.Command{
		Use:   "sitepub",
		Short: "Stage, commit and push a static site, then check its GitHub Pages URL",
		Long: `sitepub stages the site files, commits them when something changed, pushes the
branch and optionally enables GitHub Pages for it. It finishes by detecting the
published URL and checking whether it is live.

Pages is enabled through the gh CLI when it is installed, otherwise through the
REST API when GH_TOKEN is set, otherwise the settings page is printed.`,
		Args:    cobra.NoArgs,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			output.ConfigureColor()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Flags parsed; from here on errors are not usage errors
			cmd.SilenceUsage = true

			ctx, err := runtime.GetContext(cmd.Context(), cmd.Flags())
			if err != nil {
				return err
			}
			defer func() { _ = ctx.Splog.Close() }()

			_, err = actions.PublishAction(ctx)
			return err
		},
	}

	rootCmd.PersistentFlags().String(config.FlagRemote, def.Remote, "Remote name to push to")
	rootCmd.PersistentFlags().String(config.FlagBranch, def.Branch, "Branch name to push and serve")
	rootCmd.PersistentFlags().Bool(config.FlagNoCheck, false, "Skip site URL detection and the liveness check")

	rootCmd.Flags().Bool(config.FlagUseHTTPS, false, "Set the remote URL to https://github.com/<owner>/<repo>.git before pushing")
	rootCmd.Flags().Bool(config.FlagEnablePages, false, "Enable GitHub Pages for the branch")
	rootCmd.Flags().Bool(config.FlagNoPush, false, "Do everything except push to the remote")
	rootCmd.Flags().StringP(config.FlagMessage, "m", def.Message, "Commit message to use (- reads it from stdin)")
	rootCmd.Flags().Bool(config.FlagAll, false, "Stage all changes (git add -A) instead of the site files")
	rootCmd.Flags().Bool(config.FlagDryRun, false, "Print commit, push and Pages actions without running them")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newURLCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
