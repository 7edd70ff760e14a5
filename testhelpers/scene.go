package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// The directory lives under t.TempDir() and is removed automatically, so
// scenes are safe to use from parallel tests.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	// Resolve symlinks so paths compare equal to what git reports (macOS /private/var)
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	repoDir := filepath.Join(tmpDir, "site")
	if err := os.MkdirAll(repoDir, 0750); err != nil {
		t.Fatalf("Failed to create repo dir: %v", err)
	}

	repo, err := NewGitRepo(repoDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  repoDir,
		Repo: repo,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// BasicSceneSetup creates a scene with a committed index.html.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("index.html", "<html><title>v1</title></html>")
}

// PublishedSceneSetup creates a committed scene pushed to a bare "origin" remote.
func PublishedSceneSetup(scene *Scene) error {
	if err := BasicSceneSetup(scene); err != nil {
		return err
	}
	if _, err := scene.Repo.CreateBareRemote("origin"); err != nil {
		return err
	}
	return scene.Repo.PushBranch("origin", "main")
}
