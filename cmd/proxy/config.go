package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voxelnet/mt/rudp"
)

// Config holds the proxy configuration.
type Config struct {
	Dial    string `yaml:"dial"`
	Listen  string `yaml:"listen"`
	Metrics string `yaml:"metrics"`

	// LogLevel is one of debug, info, warn and error.
	LogLevel string `yaml:"log_level"`

	Conn rudp.Config `yaml:"conn"`
}

func defaultConfig() *Config {
	return &Config{
		Listen:   ":30000",
		LogLevel: "info",
		Conn:     rudp.DefaultConfig(),
	}
}

// LoadConfig reads the configuration from the YAML file at path.
// An empty path or a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports an unusable configuration.
func (c *Config) Validate() error {
	if c.Dial == "" {
		return errors.New("no server address to dial")
	}
	if c.Listen == "" {
		return errors.New("no address to listen on")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return c.Conn.Validate()
}
