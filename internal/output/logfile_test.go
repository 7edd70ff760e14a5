package output

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateLumberjackLogger(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		logger := createLumberjackLogger("/tmp/x.log")
		require.Equal(t, 1, logger.MaxSize)
		require.Equal(t, 2, logger.MaxBackups)
		require.Equal(t, 30, logger.MaxAge)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SITEPUB_LOG_MAX_SIZE", "5")
		t.Setenv("SITEPUB_LOG_MAX_BACKUPS", "0")
		t.Setenv("SITEPUB_LOG_MAX_AGE", "bogus")
		logger := createLumberjackLogger("/tmp/x.log")
		require.Equal(t, 5, logger.MaxSize)
		require.Equal(t, 0, logger.MaxBackups)
		require.Equal(t, 30, logger.MaxAge)
	})
}
