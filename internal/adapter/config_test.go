package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 20, cfg.Search.PageSize)
	assert.Equal(t, "dog", cfg.Search.DefaultQuery)
	assert.Equal(t, "https://api.flickr.com/services/rest/", cfg.Flickr.BaseURL)
	assert.Equal(t, "https://live.staticflickr.com", cfg.Flickr.ImageBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Flickr.Timeout)
	assert.True(t, cfg.UI.ShowInspector)
	assert.False(t, cfg.IsConfigured())
	require.NoError(t, cfg.Validate())
}

func TestIsConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flickr.APIKey = "   "
	assert.False(t, cfg.IsConfigured())

	cfg.Flickr.APIKey = "abc"
	assert.True(t, cfg.IsConfigured())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero page size", func(c *Config) { c.Search.PageSize = 0 }, "page_size"},
		{"blank default query", func(c *Config) { c.Search.DefaultQuery = "  " }, "default_query"},
		{"relative base url", func(c *Config) { c.Flickr.BaseURL = "/rest" }, "flickr.base_url"},
		{"bad image url", func(c *Config) { c.Flickr.ImageBaseURL = "::" }, "flickr.image_base_url"},
		{"negative timeout", func(c *Config) { c.Flickr.Timeout = -time.Second }, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := strings.Join([]string{
		"flickr:",
		"  api_key: from-file",
		"  timeout: 5s",
		"search:",
		"  default_query: cats",
		"storage:",
		"  dir: " + dir,
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("SHUTTER_SEARCH_PAGE_SIZE", "50")

	cfg, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Flickr.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Flickr.Timeout)
	assert.Equal(t, "cats", cfg.Search.DefaultQuery)
	assert.Equal(t, 50, cfg.Search.PageSize)
	assert.Equal(t, dir, cfg.Storage.Dir)
	// Untouched keys keep their defaults
	assert.Equal(t, "https://api.flickr.com/services/rest/", cfg.Flickr.BaseURL)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Search, cfg.Search)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Flickr.APIKey = "saved-key"
	cfg.Flickr.Timeout = 12 * time.Second
	cfg.UI.ShowInspector = false

	require.NoError(t, saveConfig(viper.New(), cfg, dir))
	require.FileExists(t, filepath.Join(dir, "config.yaml"))

	loaded, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", loaded.Flickr.APIKey)
	assert.Equal(t, 12*time.Second, loaded.Flickr.Timeout)
	assert.False(t, loaded.UI.ShowInspector)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLogLevel(" Error "))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "shutter.log")

	logger, closeLog, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("hello", "query", "dog")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"query":"dog"`)
}

func TestSetupLoggerWithoutFile(t *testing.T) {
	logger, closeLog, err := SetupLogger(&LoggingConfig{})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closeLog())
}
