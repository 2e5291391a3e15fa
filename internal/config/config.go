// Package config provides configuration loading and structs for driftlens.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/driftlens/driftlens/internal/drift"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool                 `yaml:"debug"`
	Server   ServerConfig         `yaml:"server"`
	Scan     ScanConfig           `yaml:"scan"`
	State    StateConfig          `yaml:"state"`
	Analyzer drift.AnalyzerConfig `yaml:"analyzer"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ScanConfig holds file discovery and scan worker settings.
type ScanConfig struct {
	Directories     []string `yaml:"directories"`
	Extensions      []string `yaml:"extensions"`
	Exclude         []string `yaml:"exclude"`
	Workers         int      `yaml:"workers"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
}

// StateConfig selects and locates the pair state store.
// Backend is "disk" (JSON file) or "sqlite".
type StateConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.State.Path = expandPath(cfg.State.Path, configDir)
	for i := range cfg.Scan.Directories {
		cfg.Scan.Directories[i] = expandPath(cfg.Scan.Directories[i], configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
