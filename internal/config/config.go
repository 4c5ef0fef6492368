package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`

	UploadTimeoutSeconds int `yaml:"upload_timeout_seconds,omitempty"`
	RunTimeoutSeconds    int `yaml:"run_timeout_seconds,omitempty"`
}

const (
	DefaultBaseURL = "http://dify.acesohealthy.com/v1"

	defaultUploadTimeout = 60 * time.Second
	defaultRunTimeout    = 5 * time.Minute
)

func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
	}
}

// UploadTimeout bounds one attachment upload. The remote has no streaming, so
// a stalled connection would otherwise hang the input screen forever.
func (c *Config) UploadTimeout() time.Duration {
	if c.UploadTimeoutSeconds > 0 {
		return time.Duration(c.UploadTimeoutSeconds) * time.Second
	}
	return defaultUploadTimeout
}

// RunTimeout bounds one blocking workflow run.
func (c *Config) RunTimeout() time.Duration {
	if c.RunTimeoutSeconds > 0 {
		return time.Duration(c.RunTimeoutSeconds) * time.Second
	}
	return defaultRunTimeout
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "niaoyu"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// IdentityPath is where the anonymous client id lives.
func IdentityPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "client_id"), nil
}

// LogPath is where the TUI writes its log, since the terminal belongs to the
// interface.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "niaoyu.log"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a config from an explicit path. A missing file is not an
// error; it returns (nil, nil) so the caller can run first-time setup.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return &cfg, nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
