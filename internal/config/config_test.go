package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"sitepub.dev/sitepub/internal/config"
	"sitepub.dev/sitepub/testhelpers"
)

// newRepoRoot creates a directory with an empty .git dir so config files can be written
func newRepoRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0750))
	return root
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(config.FlagBranch, config.DefaultBranch, "")
	fs.String(config.FlagRemote, config.DefaultRemote, "")
	fs.StringP(config.FlagMessage, "m", config.DefaultMessage, "")
	fs.Bool(config.FlagUseHTTPS, false, "")
	fs.Bool(config.FlagEnablePages, false, "")
	fs.Bool(config.FlagNoPush, false, "")
	fs.Bool(config.FlagAll, false, "")
	fs.Bool(config.FlagDryRun, false, "")
	fs.Bool(config.FlagNoCheck, false, "")
	return fs
}

func TestDerivedURLs(t *testing.T) {
	cfg := config.Config{Owner: "octo", Repo: "site"}

	require.Equal(t, "https://octo.github.io/site/", cfg.SiteURL())
	require.Equal(t, "https://github.com/octo/site.git", cfg.HTTPSRemoteURL())
	require.Equal(t, "git@github.com:octo/site.git", cfg.SSHRemoteURL())
	require.Equal(t, "https://github.com/octo/site/settings/pages", cfg.SettingsURL())
}

func TestLoad(t *testing.T) {
	t.Run("uses defaults without config", func(t *testing.T) {
		cfg, err := config.Load(newRepoRoot(t), nil)
		require.NoError(t, err)
		require.Equal(t, config.Default(), cfg)
		require.NoError(t, cfg.Validate())
	})

	t.Run("repo config overrides defaults", func(t *testing.T) {
		root := newRepoRoot(t)
		require.NoError(t, config.SetRepoConfigValue(root, config.KeyOwner, "octo"))
		require.NoError(t, config.SetRepoConfigValue(root, config.KeyFiles, "a.html, b.html"))

		cfg, err := config.Load(root, nil)
		require.NoError(t, err)
		require.Equal(t, "octo", cfg.Owner)
		require.Equal(t, config.DefaultRepo, cfg.Repo)
		require.Equal(t, []string{"a.html", "b.html"}, cfg.Files)
	})

	t.Run("environment overrides repo config", func(t *testing.T) {
		root := newRepoRoot(t)
		require.NoError(t, config.SetRepoConfigValue(root, config.KeyRepo, "from-file"))
		t.Setenv("SITEPUB_REPO", "from-env")
		t.Setenv("SITEPUB_FILES", "x.html y.html")

		cfg, err := config.Load(root, nil)
		require.NoError(t, err)
		require.Equal(t, "from-env", cfg.Repo)
		require.Equal(t, []string{"x.html", "y.html"}, cfg.Files)
	})

	t.Run("changed flags win", func(t *testing.T) {
		root := newRepoRoot(t)
		require.NoError(t, config.SetRepoConfigValue(root, config.KeyBranch, "gh-pages"))

		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--branch", "release", "-m", "hello", "--use-https", "--no-push"}))

		cfg, err := config.Load(root, fs)
		require.NoError(t, err)
		require.Equal(t, "release", cfg.Branch)
		require.Equal(t, "hello", cfg.Message)
		require.True(t, cfg.UseHTTPS)
		require.True(t, cfg.NoPush)
		require.False(t, cfg.EnablePages)
	})

	t.Run("unchanged flags keep file values", func(t *testing.T) {
		root := newRepoRoot(t)
		require.NoError(t, config.SetRepoConfigValue(root, config.KeyBranch, "gh-pages"))

		fs := newFlagSet()
		require.NoError(t, fs.Parse(nil))

		cfg, err := config.Load(root, fs)
		require.NoError(t, err)
		require.Equal(t, "gh-pages", cfg.Branch)
	})

	t.Run("rejects malformed repo config", func(t *testing.T) {
		root := newRepoRoot(t)
		require.NoError(t, os.WriteFile(config.RepoConfigPath(root), []byte("{not json"), 0600))

		_, err := config.Load(root, nil)
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Owner = ""
	cfg.Files = nil
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "owner is empty")
	require.Contains(t, err.Error(), "no files configured")

	cfg.Owner = "octo"
	cfg.StageAll = true
	require.NoError(t, cfg.Validate())
}

func TestSetRepoConfigValue(t *testing.T) {
	root := newRepoRoot(t)

	err := config.SetRepoConfigValue(root, "bogus", "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown config key")

	require.NoError(t, config.SetRepoConfigValue(root, config.KeyMessage, "  Deploy  "))
	rc, err := config.GetRepoConfig(root)
	require.NoError(t, err)
	require.NotNil(t, rc.Message)
	require.Equal(t, "Deploy", *rc.Message)

	t.Run("refuses to overwrite a malformed config", func(t *testing.T) {
		root := newRepoRoot(t)
		path := config.RepoConfigPath(root)
		require.NoError(t, os.WriteFile(path, []byte(`{"owner": "octo",`), 0600))

		err := config.SetRepoConfigValue(root, config.KeyBranch, "gh-pages")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse repo config")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, `{"owner": "octo",`, string(data))
	})

	t.Run("unreadable config is an error", func(t *testing.T) {
		root := newRepoRoot(t)
		require.NoError(t, os.Mkdir(config.RepoConfigPath(root), 0750))

		_, err := config.GetRepoConfig(root)
		require.Error(t, err)
		require.Error(t, config.SetRepoConfigValue(root, config.KeyOwner, "octo"))
	})
}

func TestRepoConfigPathInWorktree(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	wt, err := scene.Repo.AddWorktree("preview")
	require.NoError(t, err)

	require.Equal(t, filepath.Join(scene.Dir, ".git", ".sitepub_config"), config.RepoConfigPath(wt))

	require.NoError(t, config.SetRepoConfigValue(wt, config.KeyOwner, "octo"))
	cfg, err := config.Load(scene.Dir, nil)
	require.NoError(t, err)
	require.Equal(t, "octo", cfg.Owner)
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is fine", func(t *testing.T) {
		require.NoError(t, config.LoadEnvFile(t.TempDir()))
	})

	t.Run("does not override existing variables", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("SITEPUB_TEST_A=file\nSITEPUB_TEST_B=file\n"), 0600))
		t.Setenv("SITEPUB_TEST_A", "process")
		t.Setenv("SITEPUB_TEST_B", "")
		require.NoError(t, os.Unsetenv("SITEPUB_TEST_B"))

		require.NoError(t, config.LoadEnvFile(root))
		require.Equal(t, "process", os.Getenv("SITEPUB_TEST_A"))
		require.Equal(t, "file", os.Getenv("SITEPUB_TEST_B"))
		require.NoError(t, os.Unsetenv("SITEPUB_TEST_B"))
	})
}

func TestValue(t *testing.T) {
	cfg := config.Default()

	for _, key := range config.RepoKeys {
		_, err := cfg.Value(key)
		require.NoError(t, err, key)
	}

	files, err := cfg.Value(config.KeyFiles)
	require.NoError(t, err)
	require.Equal(t, "index.html ask_her_out.html schedule.html", files)

	_, err = cfg.Value("colour")
	require.Error(t, err)
}
