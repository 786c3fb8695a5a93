package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	verrors "github.com/jturbide/vhost/internal/errors"
)

// Config represents the application configuration
type Config struct {
	OS        string               `yaml:"os,omitempty"`
	Force     bool                 `yaml:"force"`
	Backup    bool                 `yaml:"backup"`
	DefaultIP string               `yaml:"default_ip,omitempty"`
	Servers   map[string]string    `yaml:"servers,omitempty"`
	Platforms map[string]*Platform `yaml:"platforms"`
	Sites     []*Site              `yaml:"sites"`
}

// DefaultIP is used for hosts entries when neither the site nor its server
// reference provides one.
const DefaultIP = "127.0.0.1"

// configDir is the default config directory
const configDir = ".config/vhost"
const configFile = "config.yaml"

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Backup:    true,
		DefaultIP: DefaultIP,
		Servers:   make(map[string]string),
		Platforms: make(map[string]*Platform),
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the default config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config at path. A missing file is a configuration error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, verrors.Wrap(verrors.ErrCodeConfig, fmt.Sprintf("config file %s not found (run 'vhost init')", path), err)
		}
		return nil, verrors.IO(path, err)
	}
	return Parse(data)
}

// LoadOrDefault reads the config at path, returning defaults when it does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return Load(path)
}

// Parse decodes YAML config data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, verrors.Wrap(verrors.ErrCodeConfig, "failed to parse config", err)
	}

	if cfg.Servers == nil {
		cfg.Servers = make(map[string]string)
	}
	if cfg.Platforms == nil {
		cfg.Platforms = make(map[string]*Platform)
	}
	if cfg.DefaultIP == "" {
		cfg.DefaultIP = DefaultIP
	}

	return cfg, nil
}

// Save writes the config to path, creating its directory if needed
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Platform returns the platform section for the given OS key.
func (c *Config) Platform(osKey string) (*Platform, error) {
	if osKey == "" {
		return nil, verrors.Config("no platform selected")
	}
	p, ok := c.Platforms[osKey]
	if !ok || p == nil {
		return nil, verrors.Config(fmt.Sprintf("platform %q is not configured", osKey))
	}
	return p, nil
}

// GetSite returns a site by name
func (c *Config) GetSite(name string) (*Site, error) {
	for _, s := range c.Sites {
		if s != nil && s.Name == name {
			return s, nil
		}
	}
	return nil, verrors.NotFound(name)
}

// ServerIP returns the IP registered for a named server.
func (c *Config) ServerIP(name string) (string, bool) {
	ip, ok := c.Servers[name]
	return ip, ok && ip != ""
}
