// Package errors provides sentinel errors and custom error types for the sitepub application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates that the working directory is not inside a git work tree
	ErrNotARepository = errors.New("not a git repository")

	// ErrNoRemote indicates that the configured remote does not exist
	ErrNoRemote = errors.New("remote not found")

	// ErrToolNotFound indicates that an external command is not on PATH
	ErrToolNotFound = errors.New("command not found on PATH")

	// ErrEmptyResult indicates that a query returned nothing usable
	ErrEmptyResult = errors.New("empty result")
)

// NotARepositoryError is returned by the precondition check
type NotARepositoryError struct {
	Dir string
	Err error
}

func (e *NotARepositoryError) Error() string {
	msg := "this directory is not a git repository; initialize one or run from the repository root"
	if e.Dir != "" {
		msg = fmt.Sprintf("%s is not a git repository; initialize one or run from the repository root", e.Dir)
	}
	return msg
}

// Is returns true if the target error is ErrNotARepository
func (e *NotARepositoryError) Is(target error) bool {
	return target == ErrNotARepository
}

func (e *NotARepositoryError) Unwrap() error {
	return e.Err
}

// NewNotARepositoryError creates a new NotARepositoryError
func NewNotARepositoryError(dir string, err error) *NotARepositoryError {
	return &NotARepositoryError{Dir: dir, Err: err}
}

// RemoteNotFoundError represents an error when a named remote is missing
type RemoteNotFoundError struct {
	Remote string
}

func (e *RemoteNotFoundError) Error() string {
	return fmt.Sprintf("remote %s does not exist", e.Remote)
}

// Is returns true if the target error is ErrNoRemote
func (e *RemoteNotFoundError) Is(target error) bool {
	return target == ErrNoRemote
}

// NewRemoteNotFoundError creates a new RemoteNotFoundError
func NewRemoteNotFoundError(remote string) *RemoteNotFoundError {
	return &RemoteNotFoundError{Remote: remote}
}

// CommandError represents a failed external command (git or gh)
type CommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(": %s %s", e.Command, strings.Join(e.Args, " "))
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", strings.TrimSpace(e.Stderr))
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", strings.TrimSpace(e.Stdout))
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Output returns the most useful captured output, preferring stderr
func (e *CommandError) Output() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(e.Stdout)
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, stdout, stderr string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
