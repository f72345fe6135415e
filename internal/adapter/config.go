package adapter

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "shutter"

// Config holds all application configuration
type Config struct {
	Flickr  FlickrConfig  `mapstructure:"flickr"`
	Search  SearchConfig  `mapstructure:"search"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// FlickrConfig holds the remote service settings
type FlickrConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// SearchConfig holds the fixed search parameters
type SearchConfig struct {
	PageSize     int    `mapstructure:"page_size"`
	DefaultQuery string `mapstructure:"default_query"` // Used when no query was saved
}

// StorageConfig holds the local state location
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // Empty keeps history in memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowInspector bool `mapstructure:"show_inspector"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Flickr: FlickrConfig{
			BaseURL:      "https://api.flickr.com/services/rest/",
			ImageBaseURL: "https://live.staticflickr.com",
			Timeout:      30 * time.Second,
		},
		Search: SearchConfig{
			PageSize:     20,
			DefaultQuery: "dog",
		},
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		UI: UIConfig{
			ShowInspector: true,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), appName+".log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// setDefaults registers defaults so env-only keys are visible to Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("flickr.api_key", cfg.Flickr.APIKey)
	v.SetDefault("flickr.base_url", cfg.Flickr.BaseURL)
	v.SetDefault("flickr.image_base_url", cfg.Flickr.ImageBaseURL)
	v.SetDefault("flickr.timeout", cfg.Flickr.Timeout)
	v.SetDefault("search.page_size", cfg.Search.PageSize)
	v.SetDefault("search.default_query", cfg.Search.DefaultQuery)
	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("ui.show_inspector", cfg.UI.ShowInspector)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetViper(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides, e.g. SHUTTER_FLICKR_API_KEY
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configPath string) error {
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("flickr.api_key", cfg.Flickr.APIKey)
	v.Set("flickr.base_url", cfg.Flickr.BaseURL)
	v.Set("flickr.image_base_url", cfg.Flickr.ImageBaseURL)
	v.Set("flickr.timeout", cfg.Flickr.Timeout.String())

	v.Set("search.page_size", cfg.Search.PageSize)
	v.Set("search.default_query", cfg.Search.DefaultQuery)

	v.Set("storage.dir", cfg.Storage.Dir)

	v.Set("ui.show_inspector", cfg.UI.ShowInspector)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Flickr.APIKey) != ""
}

// Validate checks values that would make every request fail
func (c *Config) Validate() error {
	if c.Search.PageSize <= 0 {
		return fmt.Errorf("search.page_size must be positive, got %d", c.Search.PageSize)
	}
	if strings.TrimSpace(c.Search.DefaultQuery) == "" {
		return fmt.Errorf("search.default_query must not be empty")
	}
	for key, raw := range map[string]string{
		"flickr.base_url":       c.Flickr.BaseURL,
		"flickr.image_base_url": c.Flickr.ImageBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s is not an absolute URL: %q", key, raw)
		}
	}
	if c.Flickr.Timeout < 0 {
		return fmt.Errorf("flickr.timeout must not be negative")
	}
	return nil
}
