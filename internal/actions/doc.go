// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a sitepub command (publish, status, url)
// and orchestrates operations across the git, github and site packages.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Config, Splog and collaborators
//   - Only the repository precondition is returned as an error; optional steps
//     are reported through Splog and recorded in the returned report
//
// Dependencies:
//   - git: staging, commits, remotes and pushes
//   - github: Pages enablement and URL detection
//   - site: liveness probe
package actions
