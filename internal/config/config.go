// Package config resolves runtime settings from the environment and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/pflag"

	"github.com/kpumuk/incidentscope/internal/incidents"
)

// DefaultDataSource is the dataset shipped alongside the binary.
const DefaultDataSource = "data/gun-violence-data_01-2013_03-2018-small.csv"

// Flag names shared by every command that loads the dataset.
const (
	FlagData        = "data"
	FlagDateFormat  = "date-format"
	FlagScenes      = "scenes"
	FlagStrict      = "strict"
	FlagLogFile     = "log-file"
	FlagLogLevel    = "log-level"
	FlagMetricsAddr = "metrics-addr"
)

// Config holds all application settings.
type Config struct {
	DataSource   string
	DateFormat   string
	ScenesFile   string
	Strict       bool
	FetchTimeout time.Duration

	LogFile   string
	LogLevel  string
	LogFormat string

	// MetricsAddr enables the Prometheus endpoint when set.
	MetricsAddr string

	TopRegions int
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("INCIDENTSCOPE_FETCH_TIMEOUT", "10s"))
	if err != nil {
		return nil, errors.New("invalid INCIDENTSCOPE_FETCH_TIMEOUT")
	}
	strict, err := strconv.ParseBool(sharedcfg.EnvOrDefault("INCIDENTSCOPE_STRICT", "false"))
	if err != nil {
		return nil, errors.New("invalid INCIDENTSCOPE_STRICT")
	}
	topRegions, err := strconv.Atoi(sharedcfg.EnvOrDefault("INCIDENTSCOPE_TOP_REGIONS", "5"))
	if err != nil {
		return nil, errors.New("invalid INCIDENTSCOPE_TOP_REGIONS")
	}

	cfg := &Config{
		DataSource:   sharedcfg.EnvOrDefault("INCIDENTSCOPE_DATA", DefaultDataSource),
		DateFormat:   sharedcfg.EnvOrDefault("INCIDENTSCOPE_DATE_FORMAT", incidents.DefaultDateFormat),
		ScenesFile:   sharedcfg.EnvOrDefault("INCIDENTSCOPE_SCENES", ""),
		Strict:       strict,
		FetchTimeout: timeout,
		LogFile:      sharedcfg.EnvOrDefault("LOG_FILE", ""),
		LogLevel:     sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		MetricsAddr:  sharedcfg.EnvOrDefault("METRICS_ADDR", ""),
		TopRegions:   topRegions,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataSource) == "" {
		return errors.New("INCIDENTSCOPE_DATA is required")
	}
	if _, err := incidents.DateLayout(c.DateFormat); err != nil {
		return fmt.Errorf("invalid INCIDENTSCOPE_DATE_FORMAT: %w", err)
	}
	if c.FetchTimeout <= 0 {
		return errors.New("INCIDENTSCOPE_FETCH_TIMEOUT must be positive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	if c.TopRegions < 1 {
		return errors.New("INCIDENTSCOPE_TOP_REGIONS must be at least 1")
	}
	return nil
}

// RegisterFlags adds the flags that override environment settings.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagData, "", "dataset path or URL (env INCIDENTSCOPE_DATA)")
	fs.String(FlagDateFormat, "", "date column format, e.g. M/D/YYYY (env INCIDENTSCOPE_DATE_FORMAT)")
	fs.String(FlagScenes, "", "YAML file replacing the built-in scenes (env INCIDENTSCOPE_SCENES)")
	fs.Bool(FlagStrict, false, "abort the load on the first invalid row (env INCIDENTSCOPE_STRICT)")
	fs.String(FlagLogFile, "", "write logs to file (env LOG_FILE)")
	fs.String(FlagLogLevel, "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	fs.String(FlagMetricsAddr, "", "serve Prometheus metrics on address (env METRICS_ADDR)")
}

// ApplyFlags overrides c with every flag explicitly set on fs and validates
// the result. Flags missing from fs are ignored.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	textFlags := map[string]*string{
		FlagData:        &c.DataSource,
		FlagDateFormat:  &c.DateFormat,
		FlagScenes:      &c.ScenesFile,
		FlagLogFile:     &c.LogFile,
		FlagLogLevel:    &c.LogLevel,
		FlagMetricsAddr: &c.MetricsAddr,
	}
	for name, dst := range textFlags {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		value, err := fs.GetString(name)
		if err != nil {
			return fmt.Errorf("parse %s flag: %w", name, err)
		}
		*dst = value
	}

	if fs.Lookup(FlagStrict) != nil && fs.Changed(FlagStrict) {
		strict, err := fs.GetBool(FlagStrict)
		if err != nil {
			return fmt.Errorf("parse %s flag: %w", FlagStrict, err)
		}
		c.Strict = strict
	}

	return c.Validate()
}

// LoadOptions returns the loader settings.
func (c *Config) LoadOptions() incidents.LoadOptions {
	return incidents.LoadOptions{DateFormat: c.DateFormat, Strict: c.Strict}
}
