package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Output formats for rendered result sets.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultServeAddr is used by the serve command when HTTP_ADDR is unset.
const DefaultServeAddr = ":8080"

// Config holds all explorer settings, populated from environment variables.
type Config struct {
	DataPath        string
	OutputFormat    string
	LogLevel        string
	LogFormat       string
	HTTPAddr        string // empty disables the HTTP server for interactive sessions
	QueryCacheSize  int
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseQueryCacheSize()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataPath:        sharedcfg.EnvOrDefault("DATA_PATH", "data/ufo_sightings.csv"),
		OutputFormat:    strings.ToLower(sharedcfg.EnvOrDefault("OUTPUT_FORMAT", FormatJSON)),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ""),
		QueryCacheSize:  cacheSize,
		ShutdownTimeout: shutdownTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that may also be overridden by command-line flags.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataPath) == "" {
		return errors.New("DATA_PATH is required")
	}
	switch c.OutputFormat {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid OUTPUT_FORMAT %q: must be %s or %s", c.OutputFormat, FormatJSON, FormatYAML)
	}
	return nil
}

func parseQueryCacheSize() (int, error) {
	s := sharedcfg.EnvOrDefault("QUERY_CACHE_SIZE", "256")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid QUERY_CACHE_SIZE %q: must be a positive integer", s)
	}
	return n, nil
}
