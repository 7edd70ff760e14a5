// Package config provides repository configuration management,
// including reading and writing sitepub configuration files.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sitepub.dev/sitepub/internal/git"
)

const repoConfigFileName = ".sitepub_config"

// Keys accepted by the repository configuration file
const (
	KeyOwner   = "owner"
	KeyRepo    = "repo"
	KeyBranch  = "branch"
	KeyRemote  = "remote"
	KeyFiles   = "files"
	KeyMessage = "message"
)

// RepoKeys lists the keys that can be stored in the repository config, in display order
var RepoKeys = []string{KeyOwner, KeyRepo, KeyBranch, KeyRemote, KeyFiles, KeyMessage}

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Owner   *string  `json:"owner,omitempty"`
	Repo    *string  `json:"repo,omitempty"`
	Branch  *string  `json:"branch,omitempty"`
	Remote  *string  `json:"remote,omitempty"`
	Files   []string `json:"files,omitempty"`
	Message *string  `json:"message,omitempty"`
}

// RepoConfigPath returns the path of the repository config file
func RepoConfigPath(repoRoot string) string {
	return filepath.Join(gitDir(repoRoot), repoConfigFileName)
}

// gitDir returns the git directory shared by all worktrees of the repository.
// In a linked worktree .git is a file pointing elsewhere.
func gitDir(repoRoot string) string {
	dotGit := filepath.Join(repoRoot, ".git")
	if info, err := os.Stat(dotGit); err == nil && info.IsDir() {
		return dotGit
	}
	if dir, err := git.CommonDir(context.Background(), repoRoot); err == nil {
		return dir
	}
	return dotGit
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	path := RepoConfigPath(repoRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &RepoConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read repo config %s: %w", path, err)
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// SetRepoConfigValue updates a single key in the repository config.
// Files are given as a whitespace or comma separated list.
func SetRepoConfigValue(repoRoot, key, value string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyOwner:
		config.Owner = &value
	case KeyRepo:
		config.Repo = &value
	case KeyBranch:
		config.Branch = &value
	case KeyRemote:
		config.Remote = &value
	case KeyMessage:
		config.Message = &value
	case KeyFiles:
		config.Files = splitList(value)
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(RepoKeys, ", "))
	}

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(RepoConfigPath(repoRoot), configJSON, 0600)
}

func splitList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
