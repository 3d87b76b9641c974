// Package app wires the cartridge, bus, and CPU into a runnable
// emulator and holds the configuration the driver loads it with.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the driver's configuration. It covers only the
// window/video/debug/paths concerns this driver actually has — there
// is no audio or controller input here, since this core models
// neither an APU nor a controller-driven game loop.
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Debug  DebugConfig  `json:"debug"`
	Paths  PathsConfig  `json:"paths"`

	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration.
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Fullscreen bool `json:"fullscreen"`
}

// VideoConfig contains the register-visualization backend choice.
type VideoConfig struct {
	VSync   bool   `json:"vsync"`
	Backend string `json:"backend"` // "ebitengine" or "headless"
}

// DebugConfig contains debugging options.
type DebugConfig struct {
	CPUTracing bool   `json:"cpu_tracing"`
	LogLevel   string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
}

// PathsConfig contains file and directory paths.
type PathsConfig struct {
	ROMs   string `json:"roms"`
	Config string `json:"config"`
}

// NewConfig creates a configuration with default values.
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      512,
			Height:     480,
			Fullscreen: false,
		},
		Video: VideoConfig{
			VSync:   true,
			Backend: "ebitengine",
		},
		Debug: DebugConfig{
			CPUTracing: false,
			LogLevel:   "INFO",
		},
		Paths: PathsConfig{
			ROMs:   "./roms",
			Config: "./config",
		},
		loaded: false,
	}
}

// LoadFromFile loads configuration from a JSON file, writing out
// defaults first if the file does not yet exist.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a JSON file, creating the parent
// directory if needed.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window dimensions: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Video.Backend != "ebitengine" && c.Video.Backend != "headless" {
		c.Video.Backend = "ebitengine"
	}
	return nil
}

// IsLoaded returns whether the configuration was loaded from file.
func (c *Config) IsLoaded() bool { return c.loaded }

// GetConfigPath returns the path to the config file.
func (c *Config) GetConfigPath() string { return c.configPath }

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return "./config/gones.json"
}
