package testhelpers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	siteerrors "sitepub.dev/sitepub/internal/errors"
	"sitepub.dev/sitepub/internal/git"
)

// FakeGitRunner is an in-memory git.Runner that records every call as a
// git-like command line.
type FakeGitRunner struct {
	mu sync.Mutex

	NotRepository bool
	Root          string
	Dir           string

	// Staged is returned by StagedFileNames
	Staged []string
	// Tracked holds paths known to the index
	Tracked map[string]bool
	// Remotes maps remote name to URL
	Remotes map[string]string
	// Tracking holds "<remote>/<branch>" entries that exist locally
	Tracking map[string]bool

	StageErr     error
	CommitErr    error
	PushErr      error
	AddRemoteErr error
	SetURLErr    error

	Calls []string
}

var _ git.Runner = (*FakeGitRunner)(nil)

// NewFakeGitRunner returns a fake inside a repository with an "origin" remote
func NewFakeGitRunner() *FakeGitRunner {
	return &FakeGitRunner{
		Root:     "/fake/site",
		Remotes:  map[string]string{"origin": "git@github.com:owner/repo.git"},
		Tracking: map[string]bool{},
		Tracked:  map[string]bool{},
	}
}

func (f *FakeGitRunner) record(args ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, strings.Join(args, " "))
}

// CallsWithPrefix returns the recorded calls starting with prefix
func (f *FakeGitRunner) CallsWithPrefix(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// IndexOf returns the position of the first call starting with prefix, or -1
func (f *FakeGitRunner) IndexOf(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

// IsInsideWorkTree implements git.Runner
func (f *FakeGitRunner) IsInsideWorkTree(context.Context) (bool, error) {
	f.record("rev-parse", "--is-inside-work-tree")
	return !f.NotRepository, nil
}

// RepoRoot implements git.Runner
func (f *FakeGitRunner) RepoRoot() (string, error) {
	if f.NotRepository {
		return "", siteerrors.NewNotARepositoryError(f.Dir, nil)
	}
	return f.Root, nil
}

// StageFiles implements git.Runner
func (f *FakeGitRunner) StageFiles(_ context.Context, files []string) error {
	f.record(append([]string{"add", "--"}, files...)...)
	return f.StageErr
}

// StageAll implements git.Runner
func (f *FakeGitRunner) StageAll(context.Context) error {
	f.record("add", "-A")
	return f.StageErr
}

// StagedFileNames implements git.Runner
func (f *FakeGitRunner) StagedFileNames(context.Context) ([]string, error) {
	f.record("diff", "--cached", "--name-only")
	return append([]string(nil), f.Staged...), nil
}

// TrackedFiles implements git.Runner
func (f *FakeGitRunner) TrackedFiles(_ context.Context, files []string) ([]string, error) {
	f.record(append([]string{"ls-files", "--"}, files...)...)
	f.mu.Lock()
	defer f.mu.Unlock()
	var tracked []string
	for _, file := range files {
		if f.Tracked[file] {
			tracked = append(tracked, file)
		}
	}
	return tracked, nil
}

// Commit implements git.Runner
func (f *FakeGitRunner) Commit(_ context.Context, message string) error {
	f.record("commit", "-m", message)
	return f.CommitErr
}

// RemoteURL implements git.Runner
func (f *FakeGitRunner) RemoteURL(_ context.Context, remote string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.Remotes[remote]
	if !ok {
		return "", siteerrors.NewRemoteNotFoundError(remote)
	}
	return u, nil
}

// AddRemote implements git.Runner
func (f *FakeGitRunner) AddRemote(_ context.Context, name, url string) error {
	f.record("remote", "add", name, url)
	if f.AddRemoteErr != nil {
		return f.AddRemoteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Remotes[name] = url
	return nil
}

// SetRemoteURL implements git.Runner
func (f *FakeGitRunner) SetRemoteURL(_ context.Context, name, url string) error {
	f.record("remote", "set-url", name, url)
	if f.SetURLErr != nil {
		return f.SetURLErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Remotes[name]; !ok {
		return fmt.Errorf("no such remote '%s'", name)
	}
	f.Remotes[name] = url
	return nil
}

// RemoteBranchExists implements git.Runner
func (f *FakeGitRunner) RemoteBranchExists(remote, branch string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Tracking[remote+"/"+branch], nil
}

// Push implements git.Runner
func (f *FakeGitRunner) Push(_ context.Context, remote, branch string, setUpstream bool) error {
	f.record(git.PushArgs(remote, branch, setUpstream)...)
	if f.PushErr != nil {
		return f.PushErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Tracking[remote+"/"+branch] = true
	return nil
}

// WorkingDir implements git.Runner
func (f *FakeGitRunner) WorkingDir() string {
	return f.Dir
}

// FakeResponse is a canned reply for FakeCLI
type FakeResponse struct {
	Output string
	Err    error
}

// FakeCLI is a scripted stand-in for the gh command line tool
type FakeCLI struct {
	mu        sync.Mutex
	Installed bool
	// Responses is keyed by the space-joined argument list
	Responses map[string]FakeResponse
	Calls     [][]string
}

// NewFakeCLI returns an installed FakeCLI with no scripted responses
func NewFakeCLI() *FakeCLI {
	return &FakeCLI{Installed: true, Responses: map[string]FakeResponse{}}
}

// On scripts the reply for an exact argument list
func (f *FakeCLI) On(args []string, output string, err error) *FakeCLI {
	f.Responses[strings.Join(args, " ")] = FakeResponse{Output: output, Err: err}
	return f
}

// Available reports whether the fake is "installed"
func (f *FakeCLI) Available() bool {
	return f.Installed
}

// Run returns the scripted response, or an error for unscripted calls
func (f *FakeCLI) Run(_ context.Context, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, append([]string(nil), args...))
	resp, ok := f.Responses[strings.Join(args, " ")]
	if !ok {
		return "", siteerrors.NewCommandError("gh", args, "", "unexpected call", errors.New("exit status 1"))
	}
	return resp.Output, resp.Err
}

// CallCount returns the number of recorded calls
func (f *FakeCLI) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
