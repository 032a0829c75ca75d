// Package config loads cssval configuration files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/cssval/internal/log"
	"bennypowers.dev/cssval/token"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor JSON
var ErrUnsupportedFormat = errors.New("unsupported config format")

// FileNames are the config files Find looks for, in order of preference
var FileNames = []string{
	".cssval.yaml",
	".cssval.yml",
	".cssval.json",
	".cssval.jsonc",
}

// Config is the configuration of the lint tool
type Config struct {
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"logLevel" json:"logLevel"`

	// MaxDepth bounds grammar nesting per value. Zero means the default.
	MaxDepth int `yaml:"maxDepth" json:"maxDepth"`

	// Include lists the doublestar globs of files to lint
	Include []string `yaml:"include" json:"include"`

	// Ignore lists doublestar globs of files to skip
	Ignore []string `yaml:"ignore" json:"ignore"`

	// Properties maps property names to grammar names, overriding or
	// extending the built-in table
	Properties map[string]string `yaml:"properties" json:"properties"`
}

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		MaxDepth: token.DefaultMaxDepth,
		Include: []string{
			"**/*.css",
			"**/*.html",
		},
		Ignore: []string{
			"**/node_modules/**",
			"**/.git/**",
		},
	}
}

// Load reads the config file at path. Fields the file leaves out keep
// their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // G304: config path is chosen by the user
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json", ".jsonc":
		// Parse as JSONC (allows comments and trailing commas)
		err = json.Unmarshal(jsonc.ToJSON(data), &cfg)
	default:
		return cfg, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.MaxDepth < 0 {
		return cfg, fmt.Errorf("%s: maxDepth must not be negative", path)
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = token.DefaultMaxDepth
	}
	return cfg, nil
}

// Find looks for a config file in dir. It returns the path of the first
// of FileNames that exists, or "" when there is none.
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadDir loads the config file in dir, falling back to DefaultConfig
// when there is none
func LoadDir(dir string) (Config, error) {
	path := Find(dir)
	if path == "" {
		log.Debug("no config file in %s, using defaults", dir)
		return DefaultConfig(), nil
	}
	log.Debug("loading config from %s", path)
	return Load(path)
}

// Level returns the configured log level
func (c Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}
