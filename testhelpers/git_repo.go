package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo represents a Git repository for testing purposes.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	// Use git -c flags to avoid reading global config and set local configs
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %s: %w", string(output), err)
	}

	// Configure Git user (required for commits)
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "commit.gpgsign", "false"); err != nil {
		return nil, err
	}

	return repo, nil
}

// gitEnv avoids reading the global git config for faster, hermetic operations
func gitEnv() []string {
	return append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
}

// RunGitCommand executes a git command in the repository directory.
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %s: %w", strings.Join(args, " "), string(output), err)
	}
	return nil
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// WriteFile writes a file relative to the repository root without staging it.
func (r *GitRepo) WriteFile(name, content string) error {
	filePath := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// CreateChangeAndCommit writes a file and commits it.
func (r *GitRepo) CreateChangeAndCommit(name, content string) error {
	if err := r.WriteFile(name, content); err != nil {
		return err
	}
	if err := r.RunGitCommand("add", name); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", "update "+name)
}

// CommitCount returns the number of commits reachable from HEAD.
func (r *GitRepo) CommitCount() (int, error) {
	output, err := r.RunGitCommandAndGetOutput("rev-list", "--count", "HEAD")
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(output, "%d", &count); err != nil {
		return 0, fmt.Errorf("failed to parse commit count: %w", err)
	}
	return count, nil
}

// LastCommitMessage returns the subject of HEAD.
func (r *GitRepo) LastCommitMessage() (string, error) {
	return r.RunGitCommandAndGetOutput("log", "-1", "--format=%s")
}

// RemoteURL returns the URL of a remote.
func (r *GitRepo) RemoteURL(name string) (string, error) {
	return r.RunGitCommandAndGetOutput("remote", "get-url", name)
}

// CreateBareRemote creates a bare git repository to act as a remote.
// Returns the path to the bare repository.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	// Create bare repo as a sibling directory so each test gets its own remote
	bareDir := r.Dir + "-" + name + ".git"

	cmd := exec.Command("git", "init", "--bare", "-b", "main", bareDir)
	cmd.Env = gitEnv()
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %s: %w", string(output), err)
	}

	if err := r.RunGitCommand("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}

	return bareDir, nil
}

// AddWorktree checks out a new branch in a linked worktree next to the
// repository. Returns the path to the worktree.
func (r *GitRepo) AddWorktree(branch string) (string, error) {
	dir := r.Dir + "-" + branch
	if err := r.RunGitCommand("worktree", "add", "-b", branch, dir); err != nil {
		return "", fmt.Errorf("failed to add worktree: %w", err)
	}
	return dir, nil
}

// PushBranch pushes a branch to a remote, setting upstream.
func (r *GitRepo) PushBranch(remote, branch string) error {
	return r.RunGitCommand("push", "-u", remote, branch)
}

// RemoteBranchSHA returns the SHA a bare remote holds for branch.
func RemoteBranchSHA(bareDir, branch string) (string, error) {
	cmd := exec.Command("git", "--git-dir", bareDir, "rev-parse", "refs/heads/"+branch)
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s in %s: %w", branch, bareDir, err)
	}
	return strings.TrimSpace(string(output)), nil
}
