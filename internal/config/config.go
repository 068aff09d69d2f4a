// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for onboardr.
type Config struct {
	// Content is the path of a step content file. Empty means the built-in
	// steps.
	Content  string `mapstructure:"content" yaml:"content"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file"`
	// Journal records flow events in an in-process JetStream stream.
	Journal bool   `mapstructure:"journal" yaml:"journal"`
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	MCPPort int    `mapstructure:"mcp_port" yaml:"mcp_port"`
}

// envKeys lists every key that can be overridden with ONBOARDR_<KEY>.
var envKeys = []string{"content", "log_level", "log_file", "journal", "data_dir", "mcp_port"}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("onboardr")

	v.SetDefault("content", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("journal", false)
	v.SetDefault("data_dir", filepath.Join(os.TempDir(), "onboardr"))
	v.SetDefault("mcp_port", 0)

	v.SetEnvPrefix("ONBOARDR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for bool/int parsing through Unmarshal
	for _, key := range envKeys {
		if err := v.BindEnv(key, "ONBOARDR_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		logger.Debug("loaded global config %s", globalPath)
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
		logger.Debug("merged project config %s", projectPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MCPPort < 0 || c.MCPPort > 65535 {
		return fmt.Errorf("mcp_port %d out of range", c.MCPPort)
	}
	if c.Content != "" && !fileExists(c.Content) {
		return fmt.Errorf("content file %s does not exist", c.Content)
	}
	if c.Journal && c.DataDir == "" {
		return fmt.Errorf("journal requires data_dir")
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/onboardr/onboardr.yml or $XDG_CONFIG_HOME/onboardr/onboardr.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "onboardr", "onboardr.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "onboardr", "onboardr.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "onboardr.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

func write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
