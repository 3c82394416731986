package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DeviceConfig stores per-device settings.
type DeviceConfig struct {
	Nickname string `yaml:"nickname,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	ADBPath               string                  `yaml:"adb_path"`
	ListTimeoutSecs       int                     `yaml:"list_timeout_secs"`
	ConnectTimeoutSecs    int                     `yaml:"connect_timeout_secs"`
	DisconnectTimeoutSecs int                     `yaml:"disconnect_timeout_secs"`
	AutoReconnect         bool                    `yaml:"auto_reconnect"`
	Devices               map[string]DeviceConfig `yaml:"devices,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ADBPath:               "adb",
		ListTimeoutSecs:       10,
		ConnectTimeoutSecs:    10,
		DisconnectTimeoutSecs: 5,
		Devices:               make(map[string]DeviceConfig),
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "adbpick")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "adbpick")
}

// ConfigPath returns the config file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Devices == nil {
		cfg.Devices = make(map[string]DeviceConfig)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := ConfigPath()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ListTimeout returns the device-listing timeout as a duration.
func (c *Config) ListTimeout() time.Duration {
	return secs(c.ListTimeoutSecs, 10)
}

// ConnectTimeout returns the connect timeout as a duration.
func (c *Config) ConnectTimeout() time.Duration {
	return secs(c.ConnectTimeoutSecs, 10)
}

// DisconnectTimeout returns the disconnect timeout as a duration.
func (c *Config) DisconnectTimeout() time.Duration {
	return secs(c.DisconnectTimeoutSecs, 5)
}

func secs(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}
