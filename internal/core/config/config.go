// Package config handles configuration loading and validation for termassist.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Plugin names known to the configuration.
const (
	PluginTodo   = "todo"
	PluginRemind = "remind"
)

// Config holds the application configuration.
type Config struct {
	Picker  PickerConfig  `yaml:"picker"`
	Plugins PluginsConfig `yaml:"plugins"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// PickerConfig tunes the interactive list picker.
type PickerConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	CancelLabel  string        `yaml:"cancel_label"`
	Keys         KeysConfig    `yaml:"keys"`
}

// KeysConfig lists the key names bound to each picker action, e.g.
// ["down", "j"]. Empty lists keep the defaults.
type KeysConfig struct {
	Up      []string `yaml:"up"`
	Down    []string `yaml:"down"`
	Confirm []string `yaml:"confirm"`
	Cancel  []string `yaml:"cancel"`
}

// PluginsConfig holds the per-plugin settings.
type PluginsConfig struct {
	Todo   PluginConfig `yaml:"todo"`
	Remind PluginConfig `yaml:"remind"`
}

// PluginConfig configures one plugin.
type PluginConfig struct {
	Enabled *bool  `yaml:"enabled"` // nil means enabled
	File    string `yaml:"file"`    // store file, relative to the data dir unless absolute
}

// IsEnabled reports whether the plugin is switched on.
func (p PluginConfig) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Picker: PickerConfig{
			TickInterval: 200 * time.Millisecond,
			CancelLabel:  "Exit",
			Keys: KeysConfig{
				Up:      []string{"up"},
				Down:    []string{"down"},
				Confirm: []string{"enter"},
				Cancel:  []string{"ctrl+c"},
			},
		},
		Plugins: PluginsConfig{
			Todo:   PluginConfig{File: "todo.yml"},
			Remind: PluginConfig{File: "remind.yml"},
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Picker.TickInterval == 0 {
		c.Picker.TickInterval = defaults.Picker.TickInterval
	}
	if c.Picker.CancelLabel == "" {
		c.Picker.CancelLabel = defaults.Picker.CancelLabel
	}

	keys := &c.Picker.Keys
	if len(keys.Up) == 0 {
		keys.Up = defaults.Picker.Keys.Up
	}
	if len(keys.Down) == 0 {
		keys.Down = defaults.Picker.Keys.Down
	}
	if len(keys.Confirm) == 0 {
		keys.Confirm = defaults.Picker.Keys.Confirm
	}
	if len(keys.Cancel) == 0 {
		keys.Cancel = defaults.Picker.Keys.Cancel
	}

	if c.Plugins.Todo.File == "" {
		c.Plugins.Todo.File = defaults.Plugins.Todo.File
	}
	if c.Plugins.Remind.File == "" {
		c.Plugins.Remind.File = defaults.Plugins.Remind.File
	}
}

// TodoFile returns the path to the todo store.
func (c *Config) TodoFile() string {
	return c.resolve(c.Plugins.Todo.File)
}

// RemindFile returns the path to the reminder store.
func (c *Config) RemindFile() string {
	return c.resolve(c.Plugins.Remind.File)
}

// LogFile returns the default log file location.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "termassist.log")
}

// DisabledPlugins returns the names of plugins switched off in the config.
func (c *Config) DisabledPlugins() []string {
	var names []string
	if !c.Plugins.Todo.IsEnabled() {
		names = append(names, PluginTodo)
	}
	if !c.Plugins.Remind.IsEnabled() {
		names = append(names, PluginRemind)
	}
	return names
}

func (c *Config) resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.DataDir, file)
}
