package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/cssval/internal/config"
	"bennypowers.dev/cssval/internal/log"
	"bennypowers.dev/cssval/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, token.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, []string{"**/*.css", "**/*.html"}, cfg.Include)
	assert.Contains(t, cfg.Ignore, "**/node_modules/**")
	assert.Empty(t, cfg.Properties)
}

func TestLoadYAML(t *testing.T) {
	cfg, err := config.Load("testdata/.cssval.yaml")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, []string{"src/**/*.css", "src/**/*.ts"}, cfg.Include)
	assert.Equal(t, []string{"src/vendor/**"}, cfg.Ignore)
	assert.Equal(t, map[string]string{
		"--brand-color": "color",
		"gap":           "non-negative-length-percentage",
	}, cfg.Properties)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.LevelDebug, level)
}

func TestLoadJSONC(t *testing.T) {
	cfg, err := config.Load("testdata/cssval.jsonc")
	require.NoError(t, err)

	assert.Equal(t, []string{"components/**/*.js"}, cfg.Include)
	assert.Equal(t, map[string]string{"--radius": "border-radius"}, cfg.Properties)

	// fields the file leaves out keep their defaults
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, token.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, config.DefaultConfig().Ignore, cfg.Ignore)
}

func TestLoadErrors(t *testing.T) {
	t.Run("unsupported format", func(t *testing.T) {
		_, err := config.Load("testdata/cssval.toml")
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrUnsupportedFormat))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load("testdata/missing.yaml")
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.Load("testdata/broken.yml")
		assert.Error(t, err)
	})

	t.Run("negative depth", func(t *testing.T) {
		_, err := config.Load("testdata/negative.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maxDepth must not be negative")
	})
}

func TestFindAndLoadDir(t *testing.T) {
	assert.Equal(t, filepath.Join("testdata", ".cssval.yaml"), config.Find("testdata"))

	dir := t.TempDir()
	assert.Equal(t, "", config.Find(dir))

	cfg, err := config.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cssval.json"), []byte(`{"logLevel": "warn"}`), 0o600))
	cfg, err = config.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}
