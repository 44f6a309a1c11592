package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Defaults for the two protocol tunables. Both are fixed at load time,
// never renegotiated at runtime.
const (
	DefaultSysExBufferSize = 4096
	DefaultMaxStreams      = 64
)

// PortConfig names a MIDI port the tools should prefer when several
// are present.
type PortConfig struct {
	PortName    string `json:"portName"`
	AutoConnect bool   `json:"autoConnect"`
}

// SyncConfig stores DAW sync preferences for the monitor tools.
type SyncConfig struct {
	LastTempo int `json:"lastTempo,omitempty"` // shown until a clock arrives
}

// Config is the main configuration structure
type Config struct {
	ClientName      string       `json:"clientName,omitempty"`
	SysExBufferSize int          `json:"sysexBufferSize,omitempty"`
	MaxStreams      int          `json:"maxStreams,omitempty"`
	SysExChunkSize  int          `json:"sysexChunkSize,omitempty"`
	Inputs          []PortConfig `json:"inputs,omitempty"`
	Outputs         []PortConfig `json:"outputs,omitempty"`
	Sync            SyncConfig   `json:"sync,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		ClientName:      "midisync",
		SysExBufferSize: DefaultSysExBufferSize,
		MaxStreams:      DefaultMaxStreams,
		Sync: SyncConfig{
			LastTempo: 120,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midisync"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return &cfg, nil
}

// fillDefaults patches zero values left by a hand-edited file.
func (c *Config) fillDefaults() {
	if c.ClientName == "" {
		c.ClientName = "midisync"
	}
	if c.SysExBufferSize <= 0 {
		c.SysExBufferSize = DefaultSysExBufferSize
	}
	if c.MaxStreams <= 0 {
		c.MaxStreams = DefaultMaxStreams
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// FindInput finds an input port config by port name
func (c *Config) FindInput(portName string) *PortConfig {
	for i := range c.Inputs {
		if c.Inputs[i].PortName == portName {
			return &c.Inputs[i]
		}
	}
	return nil
}

// AddInput adds or updates an input port config
func (c *Config) AddInput(p PortConfig) {
	for i := range c.Inputs {
		if c.Inputs[i].PortName == p.PortName {
			c.Inputs[i] = p
			return
		}
	}
	c.Inputs = append(c.Inputs, p)
}

// AutoConnectInputs returns input ports with autoConnect enabled
func (c *Config) AutoConnectInputs() []PortConfig {
	var result []PortConfig
	for _, p := range c.Inputs {
		if p.AutoConnect {
			result = append(result, p)
		}
	}
	return result
}
