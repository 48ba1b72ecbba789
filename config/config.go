// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

const (
	appName        = "vimualizer"
	configFileName = "config.json"
)

// HUD positions understood by the window layer.
const (
	PositionTopRight = "top-right"
	PositionCenter   = "center"
)

// Positions lists the accepted HUD positions.
var Positions = []string{PositionTopRight, PositionCenter}

// Config represents the application configuration.
type Config struct {
	MasterEnabled bool   `json:"master_enabled"`
	HUDEnabled    bool   `json:"hud_enabled"`
	HUDPosition   string `json:"hud_position"`

	path string
}

// Load loads configuration from the default config file.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom loads configuration from path. Missing fields keep their defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if !slices.Contains(Positions, cfg.HUDPosition) {
		cfg.HUDPosition = PositionTopRight
	}

	return cfg, nil
}

// Save persists the configuration to the file it was loaded from.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := Path()
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
		path = p
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// SetMasterEnabled updates and saves the enabled flag.
func (c *Config) SetMasterEnabled(enabled bool) error {
	c.MasterEnabled = enabled
	return c.Save()
}

// SetHUDEnabled updates and saves the HUD visibility.
func (c *Config) SetHUDEnabled(enabled bool) error {
	c.HUDEnabled = enabled
	return c.Save()
}

// SetHUDPosition validates, updates and saves the HUD position.
func (c *Config) SetHUDPosition(position string) error {
	if !slices.Contains(Positions, position) {
		return fmt.Errorf("unknown hud position: %s", position)
	}
	c.HUDPosition = position
	return c.Save()
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		MasterEnabled: true,
		HUDEnabled:    true,
		HUDPosition:   PositionTopRight,
	}
}
