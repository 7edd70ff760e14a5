package cli_test

import (
	"os"
	"os/exec"
	"testing"

	"sitepub.dev/sitepub/testhelpers"
)

func TestMain(m *testing.M) {
	testhelpers.TestMain(m, nil)
}

// getSitepubBinary returns the path to the pre-built sitepub binary.
func getSitepubBinary(t *testing.T) string {
	t.Helper()
	binaryPath := testhelpers.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelpers.GetBinaryError(); err != nil {
			t.Fatalf("failed to build sitepub binary: %v", err)
		}
		t.Fatal("sitepub binary not built")
	}
	return binaryPath
}

// sitepubCmd returns a command running sitepub in dir with a hermetic
// environment: no global git config, no color and no GitHub token.
func sitepubCmd(t *testing.T, dir string, args ...string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command(getSitepubBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_CONFIG_GLOBAL=/dev/null",
		"NO_COLOR=1",
		"GH_TOKEN=",
		"GITHUB_TOKEN=",
		"SITEPUB_LOG_FILE=",
		"SITEPUB_OWNER=owner",
		"SITEPUB_REPO=site",
	)
	return cmd
}
