// Package config handles loading and saving ft configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/filetree/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Snapshot is a named snapshot file, so `ft web` can stand for a path.
type Snapshot struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// SearchConfig tunes the search box.
type SearchConfig struct {
	Debounce time.Duration `yaml:"debounce,omitempty"` // Pause before a query is committed (default 300ms)
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	ShowPreview     bool          `yaml:"show_preview"`               // Preview pane for file content
	ConfirmDelete   bool          `yaml:"confirm_delete"`             // Ask before deleting
	NotificationTTL time.Duration `yaml:"notification_ttl,omitempty"` // How long notices stay (default 3s)
	SplitRatio      float64       `yaml:"split_ratio,omitempty"`      // Tree pane share of the width (0.2-0.8)
}

// WatchConfig controls reloading snapshot files on change.
type WatchConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Debounce     time.Duration `yaml:"debounce,omitempty"`
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
	ForcePoll    bool          `yaml:"force_poll,omitempty"`
}

// Config is the top-level configuration for ft.
type Config struct {
	Snapshots []Snapshot   `yaml:"snapshots,omitempty"`
	Search    SearchConfig `yaml:"search,omitempty"`
	UI        UIConfig     `yaml:"ui,omitempty"`
	Watch     WatchConfig  `yaml:"watch,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Debounce: 300 * time.Millisecond,
		},
		UI: UIConfig{
			ShowPreview:     true,
			ConfirmDelete:   true,
			NotificationTTL: 3 * time.Second,
			SplitRatio:      0.4,
		},
		Watch: WatchConfig{
			Enabled:      true,
			Debounce:     200 * time.Millisecond,
			PollInterval: 2 * time.Second,
		},
	}
}

// ConfigDir returns the XDG config directory for ft.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "filetree")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "filetree")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	for i := range cfg.Snapshots {
		cfg.Snapshots[i].Path = expandHome(cfg.Snapshots[i].Path)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Search.Debounce <= 0 {
		c.Search.Debounce = def.Search.Debounce
	}
	if c.UI.NotificationTTL <= 0 {
		c.UI.NotificationTTL = def.UI.NotificationTTL
	}
	switch {
	case c.UI.SplitRatio == 0:
		c.UI.SplitRatio = def.UI.SplitRatio
	case c.UI.SplitRatio < 0.2:
		c.UI.SplitRatio = 0.2
	case c.UI.SplitRatio > 0.8:
		c.UI.SplitRatio = 0.8
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = def.Watch.Debounce
	}
	if c.Watch.PollInterval <= 0 {
		c.Watch.PollInterval = def.Watch.PollInterval
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// FindSnapshot returns the snapshot registered under name, or nil.
func (c Config) FindSnapshot(name string) *Snapshot {
	for i := range c.Snapshots {
		if strings.EqualFold(c.Snapshots[i].Name, name) {
			return &c.Snapshots[i]
		}
	}
	return nil
}

// ResolveSnapshot maps a command-line argument to a file path: a registered
// name resolves to its path, anything else is taken as a path.
func (c Config) ResolveSnapshot(arg string) string {
	if s := c.FindSnapshot(arg); s != nil {
		return s.ResolvedPath()
	}
	return expandHome(arg)
}

// ResolvedPath returns the snapshot path with ~ expanded.
func (s Snapshot) ResolvedPath() string {
	return expandHome(s.Path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
