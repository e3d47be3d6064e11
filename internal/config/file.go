package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/qw/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// Inference server base URL
	Host string `yaml:"host,omitempty"`

	// Model settings
	Model string `yaml:"model,omitempty"`

	// Relay timeout in seconds (kept as a string, forwarded verbatim)
	Timeout string `yaml:"timeout,omitempty"`

	// Audit log destination
	LogFile string `yaml:"log_file,omitempty"`

	// Default flags
	Defaults *DefaultsConfig `yaml:"defaults,omitempty"`
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	Render  bool `yaml:"render,omitempty"`
	Quiet   bool `yaml:"quiet,omitempty"`
	Verbose bool `yaml:"verbose,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile attempts to load configuration from a file
func LoadConfigFile() (*FileConfig, error) {
	paths := GetConfigPaths()

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}

	// No config file found, return empty config
	return &FileConfig{}, nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config
// File config has lower priority than environment variables and CLI flags
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	// Host (only if not set by env/flag)
	if c.Host == "" && fc.Host != "" {
		c.Host = fc.Host
	}

	// Model (only if not set by env/flag)
	if c.Model == "" && fc.Model != "" {
		c.Model = fc.Model
	}

	// Relay timeout (only if not set by env/flag)
	if c.Timeout == "" && fc.Timeout != "" {
		c.Timeout = fc.Timeout
	}

	// Audit log destination (only if not set by env/flag)
	if c.LogFile == "" && fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}

	// Apply defaults (these are applied unless explicitly overridden by flags)
	if fc.Defaults != nil {
		// Note: These only apply if the flags weren't explicitly set
		// Since we can't distinguish between "flag not set" and "flag set to false",
		// we apply defaults only for "true" values in the config file
		if fc.Defaults.Render && !c.Render {
			c.Render = true
		}
		if fc.Defaults.Quiet && !c.Quiet {
			c.Quiet = true
		}
		if fc.Defaults.Verbose && !c.Verbose {
			c.Verbose = true
		}
	}
}

// CreateDefaultConfigFile creates a default config file at the user config directory
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, constants.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# qw configuration
# Location: ~/.config/qw/config.yaml

# Ollama server base URL (default: http://127.0.0.1:11434)
# The OLLAMA_HOST environment variable takes precedence over this.
# host: http://127.0.0.1:11434

# Default model to use
# model: qwen2.5-coder:0.5b-instruct

# Timeout (seconds) forwarded to codex/claude. Kept as a string, qw does
# not enforce it itself.
# timeout: "180"

# Append a JSONL audit record of every run to this file
# log_file: /var/log/qw/runs.jsonl

# Default flags
# defaults:
#   render: true
#   quiet: false
#   verbose: false
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
