package config

import (
	"errors"
	"os"
	"strings"

	"github.com/quocvuong92/qw/internal/constants"
)

// Environment variable names
const (
	// Inference settings
	EnvHost    = "OLLAMA_HOST"
	EnvModel   = "QW_MODEL"
	EnvTimeout = "QW_TIMEOUT"

	// Logging
	EnvLogFile  = "QW_LOG_FILE"
	EnvLogLevel = "QW_LOG_LEVEL"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultModel        = constants.DefaultModel
	DefaultHost         = constants.DefaultHost
	DefaultRelayTimeout = constants.DefaultRelayTimeout
)

// Errors
var (
	ErrNoModel = errors.New("no model configured. Set QW_MODEL or use --model flag")
)

// Config holds the application configuration.
// Precedence: command-line flags, then environment variables, then the
// config file, then built-in defaults. Flags are bound directly to these
// fields, so Validate only fills what is still zero.
type Config struct {
	// Inference settings
	Host    string // Ollama base URL
	Model   string
	Timeout string // relay timeout in seconds, forwarded verbatim as a string

	// Sampling parameters, sent only when the caller supplied them
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	Seed        *int
	Stop        []string

	// System prompt file (--sys)
	SysFile string

	// Relay selection
	Codex  bool
	Claude bool

	// Output
	Quiet  bool
	JSON   bool
	Render bool

	// Behavior
	AutoPull    bool
	Execute     bool
	LogFile     string
	Interactive bool
	Verbose     bool
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// Validate validates the configuration and loads from environment
func (c *Config) Validate() error {
	// Environment fills what the flags left unset
	if c.Host == "" {
		c.Host = os.Getenv(EnvHost)
	}
	if c.Model == "" {
		c.Model = os.Getenv(EnvModel)
	}
	if c.Timeout == "" {
		c.Timeout = os.Getenv(EnvTimeout)
	}
	if c.LogFile == "" {
		c.LogFile = os.Getenv(EnvLogFile)
	}

	// The config file fills what the environment left unset.
	// Errors loading it are silently ignored - a broken config file must
	// not take the tool down when flags and env carry everything needed.
	if fileConfig, err := LoadConfigFile(); err == nil {
		c.ApplyFileConfig(fileConfig)
	}

	// Built-in defaults for whatever remains
	if c.Host == "" {
		c.Host = DefaultHost
	}
	c.Host = normalizeHost(c.Host)

	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Model == "" {
		return ErrNoModel
	}

	// Relay timeout. Deliberately not parsed or range-checked here: the
	// value is handed to codex/claude as an argument and interpreting it
	// is their business.
	if c.Timeout == "" {
		c.Timeout = DefaultRelayTimeout
	}

	return nil
}

// GenerateURL builds the full URL of the completion endpoint
func (c *Config) GenerateURL() string {
	return c.Host + constants.GeneratePath
}

// TagsURL builds the full URL of the model listing endpoint
func (c *Config) TagsURL() string {
	return c.Host + constants.TagsPath
}

// RequiredBins returns the external executables the requested relays need.
// Only relay tools are checked up front; ollama itself is not in the set,
// a missing ollama binary surfaces as a pull failure instead.
func (c *Config) RequiredBins() []string {
	var bins []string
	if c.Codex {
		bins = append(bins, constants.CodexBin)
	}
	if c.Claude {
		bins = append(bins, constants.ClaudeBin)
	}
	return bins
}

// normalizeHost accepts the bare host:port form OLLAMA_HOST is often set to
// and returns a full base URL without a trailing slash.
func normalizeHost(host string) string {
	host = strings.TrimSuffix(strings.TrimSpace(host), "/")
	if host == "" {
		return host
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	return host
}
