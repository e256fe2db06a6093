// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/gapedit/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config     `toml:"logger"` // [logger] table
	Editor EditorConfig      `toml:"editor"` // Editor-specific settings
	Keys   map[string]string `toml:"keys"`   // Key name -> action name overrides
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	InitialCapacity int  `toml:"initial_capacity"` // Gap buffer size for a new document, in characters
	StreamChunk     int  `toml:"stream_chunk"`     // Read size when loading a file
	MaxHistory      int  `toml:"max_history"`      // Undo entries kept, 0 for no limit
	PageScroll      int  `toml:"page_scroll"`      // Lines per page move, 0 for screen height minus 3
	SystemClipboard bool `toml:"system_clipboard"` // Mirror kills to the OS clipboard
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			InitialCapacity: DefaultInitialCapacity,
			StreamChunk:     DefaultStreamChunk,
			MaxHistory:      DefaultMaxHistory,
			PageScroll:      DefaultPageScroll,
			SystemClipboard: SystemClipboard,
		},
		Keys: map[string]string{},
	}
}

// DefaultPath returns ~/.config/gapedit/config.toml, or "" when the user
// config directory is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes the TOML file at filePath over cfg. A missing file
// leaves cfg alone and is not an error. It returns the keys it did not
// recognise.
func loadFromFile(filePath string, cfg *Config) ([]string, error) {
	metadata, err := toml.DecodeFile(filePath, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil // File not found is not an error here
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	var unknown []string
	for _, key := range metadata.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.InitialCapacity < 0 {
		c.Editor.InitialCapacity = defaults.Editor.InitialCapacity
	}
	if c.Editor.StreamChunk <= 0 {
		c.Editor.StreamChunk = defaults.Editor.StreamChunk
	}
	if c.Editor.MaxHistory < 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.PageScroll < 0 {
		c.Editor.PageScroll = defaults.Editor.PageScroll
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Keys == nil {
		c.Keys = map[string]string{}
	}
}

// LoadConfig builds the configuration: defaults, then the config file
// (configFilePath, or the default location when empty), then flags that
// were set, then validation. The logger is not initialised yet, so the
// keys the file did not recognise are returned for the caller to report.
func LoadConfig(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var unknown []string
	if effectivePath != "" {
		var err error
		unknown, err = loadFromFile(effectivePath, cfg)
		if err != nil {
			return nil, nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, unknown, nil
}

// PageRows returns how many lines a page move covers on a screen of the
// given height.
func (c *Config) PageRows(screenHeight int) int {
	if c.Editor.PageScroll > 0 {
		return c.Editor.PageScroll
	}
	return max(screenHeight-3, 1)
}
