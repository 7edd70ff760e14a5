package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Defaults for the published site
const (
	DefaultOwner   = "Ravi-Chandra24"
	DefaultRepo    = "Ask-her-Out"
	DefaultBranch  = "main"
	DefaultRemote  = "origin"
	DefaultMessage = "Prepare site for GitHub Pages"
)

// Flag names that may override configuration values
const (
	FlagBranch      = "branch"
	FlagRemote      = "remote"
	FlagMessage     = "message"
	FlagUseHTTPS    = "use-https"
	FlagEnablePages = "enable-pages"
	FlagNoPush      = "no-push"
	FlagAll         = "all"
	FlagDryRun      = "dry-run"
	FlagNoCheck     = "no-check"
)

const envPrefix = "SITEPUB"

// DefaultFiles returns the files staged when no other list is configured
func DefaultFiles() []string {
	return []string{"index.html", "ask_her_out.html", "schedule.html"}
}

// Config is the resolved configuration for a single publish run.
// It is passed by value and never mutated after Load returns.
type Config struct {
	Owner   string
	Repo    string
	Branch  string
	Remote  string
	Files   []string
	Message string

	UseHTTPS    bool
	EnablePages bool
	NoPush      bool
	StageAll    bool
	DryRun      bool
	NoCheck     bool
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Owner:   DefaultOwner,
		Repo:    DefaultRepo,
		Branch:  DefaultBranch,
		Remote:  DefaultRemote,
		Files:   DefaultFiles(),
		Message: DefaultMessage,
	}
}

// SiteURL returns the GitHub Pages URL derived from owner and repo
func (c Config) SiteURL() string {
	return fmt.Sprintf("https://%s.github.io/%s/", c.Owner, c.Repo)
}

// HTTPSRemoteURL returns the HTTPS clone URL of the repository
func (c Config) HTTPSRemoteURL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", c.Owner, c.Repo)
}

// SSHRemoteURL returns the SSH clone URL of the repository
func (c Config) SSHRemoteURL() string {
	return fmt.Sprintf("git@github.com:%s/%s.git", c.Owner, c.Repo)
}

// SettingsURL returns the Pages settings page for manual enablement
func (c Config) SettingsURL() string {
	return fmt.Sprintf("https://github.com/%s/%s/settings/pages", c.Owner, c.Repo)
}

// StagedFiles returns a copy of the configured file list
func (c Config) StagedFiles() []string {
	return slices.Clone(c.Files)
}

// Validate checks that the configuration can drive a publish run
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Owner) == "" {
		problems = append(problems, "owner is empty")
	}
	if strings.TrimSpace(c.Repo) == "" {
		problems = append(problems, "repo is empty")
	}
	if strings.TrimSpace(c.Branch) == "" {
		problems = append(problems, "branch is empty")
	}
	if strings.TrimSpace(c.Remote) == "" {
		problems = append(problems, "remote is empty")
	}
	if !c.StageAll && len(c.Files) == 0 {
		problems = append(problems, "no files configured to stage")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

// Load resolves the configuration for repoRoot. Precedence, highest first:
// changed flags, SITEPUB_* environment variables, the repository config
// file, built-in defaults.
func Load(repoRoot string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyOwner, def.Owner)
	v.SetDefault(KeyRepo, def.Repo)
	v.SetDefault(KeyBranch, def.Branch)
	v.SetDefault(KeyRemote, def.Remote)
	v.SetDefault(KeyFiles, def.Files)
	v.SetDefault(KeyMessage, def.Message)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if repoRoot != "" {
		path := RepoConfigPath(repoRoot)
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("failed to read repo config %s: %w", path, err)
			}
		}
	}

	if flags != nil {
		for _, name := range []string{FlagBranch, FlagRemote, FlagMessage, FlagUseHTTPS, FlagEnablePages, FlagNoPush, FlagAll, FlagDryRun, FlagNoCheck} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := Config{
		Owner:       strings.TrimSpace(v.GetString(KeyOwner)),
		Repo:        strings.TrimSpace(v.GetString(KeyRepo)),
		Branch:      strings.TrimSpace(v.GetString(KeyBranch)),
		Remote:      strings.TrimSpace(v.GetString(KeyRemote)),
		Files:       slices.Clone(v.GetStringSlice(KeyFiles)),
		Message:     v.GetString(KeyMessage),
		UseHTTPS:    v.GetBool(FlagUseHTTPS),
		EnablePages: v.GetBool(FlagEnablePages),
		NoPush:      v.GetBool(FlagNoPush),
		StageAll:    v.GetBool(FlagAll),
		DryRun:      v.GetBool(FlagDryRun),
		NoCheck:     v.GetBool(FlagNoCheck),
	}
	if cfg.Message == "" {
		cfg.Message = DefaultMessage
	}

	return cfg, nil
}

// LoadEnvFile loads a .env file from the repository root into the process
// environment. Variables already set are left untouched.
func LoadEnvFile(repoRoot string) error {
	path := filepath.Join(repoRoot, ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Value returns the effective value of a repository config key as text
func (c Config) Value(key string) (string, error) {
	switch key {
	case KeyOwner:
		return c.Owner, nil
	case KeyRepo:
		return c.Repo, nil
	case KeyBranch:
		return c.Branch, nil
	case KeyRemote:
		return c.Remote, nil
	case KeyFiles:
		return strings.Join(c.Files, " "), nil
	case KeyMessage:
		return c.Message, nil
	default:
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(RepoKeys, ", "))
	}
}
