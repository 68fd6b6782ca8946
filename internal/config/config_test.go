package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennecworks/dealscope/pkg/errors"
)

// chdir changes the working directory for the duration of the test,
// mirroring t.Chdir from newer Go releases.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultThreshold, cfg.Threshold)
	assert.Equal(t, DefaultSchedule, cfg.Schedule)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dealscope.yaml")
	content := "threshold: 0.9\nschedule: \"*/30 * * * *\"\ndatabase_url: postgres://localhost/dealscope\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Threshold)
	assert.Equal(t, "*/30 * * * *", cfg.Schedule)
	assert.Equal(t, "postgres://localhost/dealscope", cfg.DatabaseURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DEALSCOPE_THRESHOLD", "0.75")
	t.Setenv("DEALSCOPE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.75, cfg.Threshold)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DEALSCOPE_THRESHOLD", "1.5")

	_, err := Load("")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load("/nonexistent/dealscope.yaml")
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DEALSCOPE_SCHEDULE=0 12 * * *\n"), 0o644))
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0 12 * * *", cfg.Schedule)
}
