package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sitepub.dev/sitepub/internal/config"
	"sitepub.dev/sitepub/internal/git"
	"sitepub.dev/sitepub/internal/output"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, get and set repository configuration",
		Long: `Show, get and set repository configuration values.

Values are stored in .git/.sitepub_config. SITEPUB_* environment variables
(also read from .env) and command line flags take precedence.

Keys: owner, repo, branch, remote, files, message

Examples:
  sitepub config
  sitepub config get owner
  sitepub config set files "index.html about.html"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			for _, key := range config.RepoKeys {
				value, _ := cfg.Value(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "site = %s\n", cfg.SiteURL())
			return nil
		},
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get an effective configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			value, err := cfg.Value(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			repoRoot, err := findRepoRoot()
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			if err := config.SetRepoConfigValue(repoRoot, key, value); err != nil {
				return fmt.Errorf("failed to set %s: %w", key, err)
			}
			output.NewSplog().Info("Set %s to: %s", key, value)
			return nil
		},
	}
}

func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return git.FindRepoRoot(wd)
}

// loadConfig resolves configuration for the repository containing the
// working directory, applying the command's flags
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	repoRoot, err := findRepoRoot()
	if err != nil {
		return config.Config{}, err
	}
	if err := config.LoadEnvFile(repoRoot); err != nil {
		return config.Config{}, err
	}
	return config.Load(repoRoot, cmd.Flags())
}
