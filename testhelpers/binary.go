// Package testhelpers provides shared test utilities for sitepub packages,
// including a scene system, Git repository helpers, fakes for git and gh,
// and a mock GitHub Pages API.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	sharedBinaryPath string
	binaryOnce       sync.Once
	binaryErr        error
	binaryDir        string
)

// SetSharedBinaryPath sets the shared binary path for tests.
func SetSharedBinaryPath(path string) {
	sharedBinaryPath = path
}

// GetSharedBinaryPath returns the shared binary path, building it if necessary.
// This function is safe to call from any test package and will build the binary
// lazily on first access if it hasn't been set via SetSharedBinaryPath.
func GetSharedBinaryPath() string {
	binaryOnce.Do(func() {
		if sharedBinaryPath == "" {
			path, err := buildBinary()
			if err != nil {
				binaryErr = err
				return
			}
			sharedBinaryPath = path
		}
	})
	return sharedBinaryPath
}

// GetBinaryError returns any error that occurred during binary building.
func GetBinaryError() error {
	return binaryErr
}

// buildBinary builds the sitepub binary and returns its path.
func buildBinary() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		return "", fmt.Errorf("could not find module root (go.mod) starting from %s", wd)
	}

	tmpDir, err := os.MkdirTemp("", "sitepub-test-binary-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	binaryDir = tmpDir

	binaryPath := filepath.Join(tmpDir, "sitepub")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/sitepub")
	cmd.Dir = moduleRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to build: %s: %w", string(output), err)
	}

	return binaryPath, nil
}

// findModuleRoot walks up the directory tree from startDir to find the module root
// (directory containing go.mod file).
func findModuleRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// TestMain provides a shared TestMain function for packages that need
// the sitepub binary to be built once before running tests.
func TestMain(m *testing.M, cleanup func()) {
	if GetSharedBinaryPath() == "" {
		fmt.Fprintf(os.Stderr, "Failed to build sitepub binary: %v\n", GetBinaryError())
		os.Exit(1)
	}

	code := m.Run()

	if binaryDir != "" {
		_ = os.RemoveAll(binaryDir)
	}
	if cleanup != nil {
		cleanup()
	}
	os.Exit(code)
}
