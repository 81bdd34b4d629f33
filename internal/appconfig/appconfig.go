// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mjarrell/otune/internal/settings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultHostURL is the Ollama endpoint used when the config omits one.
	DefaultHostURL = "http://localhost:11434"
	// defaultRequestTimeout is the default timeout for HTTP requests.
	defaultRequestTimeout = 120 * time.Second
	// defaultDatasetPath is where the Q&A dataset store lives by default.
	defaultDatasetPath = "config/dataset.json"
)

// Config represents the top-level application configuration.
type Config struct {
	Host           string            `json:"host"`
	AutoApply      bool              `json:"autoApply"`
	Debug          bool              `json:"debug"`
	TimeoutSeconds int               `json:"timeout,omitempty"`
	LogFile        string            `json:"logFile,omitempty"`
	DatasetPath    string            `json:"dataset,omitempty"`
	Defaults       settings.Settings `json:"defaults"`
	ConfigPath     string            `json:"-"`
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HostURL returns the configured Ollama endpoint without a trailing slash,
// applying the default when unset.
func (c Config) HostURL() string {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = DefaultHostURL
	}
	return strings.TrimRight(host, "/")
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "otune.log"
}

// DatasetFilePath returns the path to the Q&A dataset store, applying a default if not set.
func (c Config) DatasetFilePath() string {
	if path := c.DatasetPath; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultDatasetPath
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return Normalize(config), nil
}

// Normalize fills defaults into a decoded configuration so the rest of the
// application always sees a fully populated value.
func Normalize(config Config) Config {
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}
	if strings.TrimSpace(config.Host) == "" {
		config.Host = DefaultHostURL
	}
	if (config.Defaults == settings.Settings{}) {
		config.Defaults = settings.Default()
	} else {
		config.Defaults = config.Defaults.Clamped()
	}
	return config
}
