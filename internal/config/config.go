// ABOUTME: Fitex configuration management.
// ABOUTME: Handles the data directory, recommendation thresholds and the storage factory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fitexapp/fitex/internal/storage"
)

// Config stores fitex tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; fitex.db lives here.
	// Supports ~ expansion. Defaults to ~/.local/share/fitex.
	DataDir string `json:"data_dir,omitempty"`

	// Recommendations overrides the advisory thresholds; unset fields
	// keep the built-in defaults.
	Recommendations *RecommendationConfig `json:"recommendations,omitempty"`
}

// RecommendationConfig holds the tunable recommendation policy.
type RecommendationConfig struct {
	MaxWeight        float64 `json:"max_weight,omitempty"`
	MaxBodyFat       float64 `json:"max_body_fat,omitempty"`
	RecordWindowDays int     `json:"record_window_days,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// Thresholds resolves the recommendation policy, filling unset fields
// from the defaults.
func (c *Config) Thresholds() storage.Thresholds {
	t := storage.DefaultThresholds
	if c.Recommendations == nil {
		return t
	}
	if c.Recommendations.MaxWeight > 0 {
		t.MaxWeight = c.Recommendations.MaxWeight
	}
	if c.Recommendations.MaxBodyFat > 0 {
		t.MaxBodyFat = c.Recommendations.MaxBodyFat
	}
	if c.Recommendations.RecordWindowDays > 0 {
		t.RecordWindowDays = c.Recommendations.RecordWindowDays
	}
	return t
}

// OpenStorage opens the SQLite store in the configured data directory.
func (c *Config) OpenStorage() (storage.Repository, error) {
	dbPath := filepath.Join(c.GetDataDir(), "fitex.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitex", "config.json")
}

// Load reads config from disk. A missing file yields the zero config.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
