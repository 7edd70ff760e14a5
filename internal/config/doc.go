// Package config manages sitepub configuration.
//
// It handles:
//   - Built-in defaults for the published site (owner, repo, branch, files)
//   - Repository-specific overrides stored in .git/.sitepub_config
//   - SITEPUB_* environment overrides and a repository-local .env file
package config
