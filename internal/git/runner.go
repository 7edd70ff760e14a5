package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	siteerrors "sitepub.dev/sitepub/internal/errors"
)

// DefaultCommandTimeout is the default timeout for external commands
const DefaultCommandTimeout = 5 * time.Minute

// TraceFunc is called before a command is executed
type TraceFunc func(name string, args []string)

// CommandRunner handles execution of an external command line tool
type CommandRunner struct {
	name       string
	workingDir string
	trace      TraceFunc
}

// NewCommandRunner creates a CommandRunner for git in the given directory.
// An empty directory means the process working directory.
func NewCommandRunner(workingDir string) *CommandRunner {
	return NewToolRunner("git", workingDir)
}

// NewToolRunner creates a CommandRunner for an arbitrary executable, such as gh
func NewToolRunner(name, workingDir string) *CommandRunner {
	return &CommandRunner{name: name, workingDir: workingDir}
}

// SetTrace installs a hook that sees every command before it runs
func (r *CommandRunner) SetTrace(trace TraceFunc) {
	r.trace = trace
}

// Name returns the executable this runner invokes
func (r *CommandRunner) Name() string {
	return r.name
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Available reports whether the executable can be found on PATH
func (r *CommandRunner) Available() bool {
	_, err := exec.LookPath(r.name)
	return err == nil
}

// Run executes the command with the given context and returns trimmed stdout
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "", true, args...)
}

// RunRaw executes the command and returns stdout untouched
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "", false, args...)
}

// RunWithInput executes the command with input on stdin
func (r *CommandRunner) RunWithInput(ctx context.Context, input string, args ...string) (string, error) {
	return r.runInternal(ctx, input, true, args...)
}

// RunLines executes the command and returns non-empty output lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// runInternal is the internal implementation that handles directory and input
func (r *CommandRunner) runInternal(ctx context.Context, input string, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	if r.trace != nil {
		r.trace(r.name, args)
	}

	cmd := exec.CommandContext(ctx, r.name, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			err = fmt.Errorf("%w: %w", siteerrors.ErrToolNotFound, err)
		} else if ctx.Err() == context.DeadlineExceeded {
			return "", siteerrors.NewCommandError(r.name, args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", siteerrors.NewCommandError(r.name, args, stdout.String(), stderr.String(), err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}

// Runner defines the git operations used by the publish workflow.
// This allows the workflow to be used with both real git and fakes.
type Runner interface {
	// Repository state
	IsInsideWorkTree(ctx context.Context) (bool, error)
	RepoRoot() (string, error)

	// Staging and commits
	StageFiles(ctx context.Context, files []string) error
	StageAll(ctx context.Context) error
	StagedFileNames(ctx context.Context) ([]string, error)
	TrackedFiles(ctx context.Context, files []string) ([]string, error)
	Commit(ctx context.Context, message string) error

	// Remotes
	RemoteURL(ctx context.Context, remote string) (string, error)
	AddRemote(ctx context.Context, name, url string) error
	SetRemoteURL(ctx context.Context, name, url string) error
	RemoteBranchExists(remote, branch string) (bool, error)
	Push(ctx context.Context, remote, branch string, setUpstream bool) error

	// Runner state
	WorkingDir() string
}

// NewRealRunner returns a Runner that shells out to git in dir and reads
// repository state through go-git.
func NewRealRunner(dir string) *RealRunner {
	return &RealRunner{cmd: NewCommandRunner(dir)}
}

// RealRunner implements Runner against an on-disk repository
type RealRunner struct {
	cmd *CommandRunner
}

var _ Runner = (*RealRunner)(nil)

// SetTrace installs a hook that sees every git command before it runs
func (r *RealRunner) SetTrace(trace TraceFunc) {
	r.cmd.SetTrace(trace)
}

// WorkingDir returns the directory git runs in
func (r *RealRunner) WorkingDir() string {
	return r.cmd.WorkingDir()
}
