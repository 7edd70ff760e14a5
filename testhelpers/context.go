package testhelpers

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"sitepub.dev/sitepub/internal/config"
	"sitepub.dev/sitepub/internal/git"
	"sitepub.dev/sitepub/internal/github"
	"sitepub.dev/sitepub/internal/output"
	"sitepub.dev/sitepub/internal/runtime"
)

// NewTestContext builds a runtime context around the given collaborators.
// Console output is captured in the returned buffer without styling.
func NewTestContext(t *testing.T, cfg config.Config, runner git.Runner, gh github.CLI) (*runtime.Context, *bytes.Buffer) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	var buf bytes.Buffer
	splog, err := output.NewSplogWithConfig(&buf, "")
	require.NoError(t, err)

	return runtime.NewContext(cfg, splog, runner, gh, nil), &buf
}

// OfflineConfig returns the default configuration with the site check disabled
func OfflineConfig() config.Config {
	cfg := config.Default()
	cfg.NoCheck = true
	return cfg
}
