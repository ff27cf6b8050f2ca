// Package config loads the gate configuration from an optional YAML file and
// IMPORTCHECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/importcheck/pkg/observability"
	"github.com/Sumatoshi-tech/importcheck/pkg/report"
	"github.com/Sumatoshi-tech/importcheck/pkg/resolve"
)

// Sentinel validation errors.
var (
	ErrInvalidPattern  = errors.New("invalid ignore pattern")
	ErrInvalidWorkers  = errors.New("scan workers must not be negative")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidFileSize = errors.New("invalid max file size")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

var logFormats = []string{"text", "json"}

// Config holds the gate configuration.
type Config struct {
	Enabled        bool     `mapstructure:"enabled"`
	CheckRelative  bool     `mapstructure:"check_relative"`
	CheckPackages  bool     `mapstructure:"check_packages"`
	IgnorePatterns []string `mapstructure:"ignore_patterns"`

	Scan      ScanConfig      `mapstructure:"scan"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	ignore      []*regexp.Regexp
	maxFileSize int64
}

// ScanConfig controls file enumeration and the worker pool.
type ScanConfig struct {
	// Workers bounds concurrent files; zero means one per CPU.
	Workers int `mapstructure:"workers"`
	// Exclude holds doublestar globs matched against project-relative paths.
	Exclude     []string `mapstructure:"exclude"`
	MaxFileSize string   `mapstructure:"max_file_size"`
}

// OutputConfig controls rendering and the exit status.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
	// Fail makes the scan exit non-zero when any record is emitted.
	Fail bool `mapstructure:"fail"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds the optional OpenTelemetry exporters.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	MetricsFile  string  `mapstructure:"metrics_file"`
}

// LoadConfig reads configPath, or DefaultFileName in root when configPath
// is empty, and applies environment overrides. A missing default file is
// not an error.
func LoadConfig(configPath, root string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(root)
	}

	v.SetEnvPrefix("IMPORTCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	readErr := v.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	err = cfg.validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("enabled", DefaultEnabled)
	v.SetDefault("check_relative", DefaultCheckRelative)
	v.SetDefault("check_packages", DefaultCheckPackages)
	v.SetDefault("ignore_patterns", resolve.DefaultIgnoreExpressions)

	v.SetDefault("scan.workers", DefaultScanWorkers)
	v.SetDefault("scan.exclude", []string{})
	v.SetDefault("scan.max_file_size", DefaultScanMaxFileSize)

	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("output.no_color", false)
	v.SetDefault("output.fail", DefaultOutputFail)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)

	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.otlp_headers", "")
	v.SetDefault("telemetry.otlp_insecure", false)
	v.SetDefault("telemetry.sample_ratio", 0.0)
	v.SetDefault("telemetry.metrics_file", "")
}

func (c *Config) validate() error {
	c.ignore = make([]*regexp.Regexp, 0, len(c.IgnorePatterns))

	for _, expr := range c.IgnorePatterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidPattern, expr, err)
		}

		c.ignore = append(c.ignore, re)
	}

	if c.Scan.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Scan.Workers)
	}

	if c.Scan.MaxFileSize != "" {
		size, err := humanize.ParseBytes(c.Scan.MaxFileSize)
		if err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidFileSize, c.Scan.MaxFileSize, err)
		}

		c.maxFileSize = int64(size) //nolint:gosec // sizes beyond int64 are not meaningful
	}

	_, err := report.ParseFormat(c.Output.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	if !slices.Contains(logFormats, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("%w: logging format %q", ErrInvalidFormat, c.Logging.Format)
	}

	var level slog.Level

	err = level.UnmarshalText([]byte(c.Logging.Level))
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidLogLevel, c.Logging.Level, err)
	}

	return nil
}

// ResolveOptions returns the engine options. Call only on a loaded Config.
func (c *Config) ResolveOptions() resolve.Options {
	return resolve.Options{
		CheckRelative:  c.CheckRelative,
		CheckPackages:  c.CheckPackages,
		IgnorePatterns: slices.Clone(c.ignore),
		Workers:        c.Scan.Workers,
	}
}

// MaxFileSizeBytes returns the parsed scan.max_file_size; zero means no limit.
func (c *Config) MaxFileSizeBytes() int64 {
	return c.maxFileSize
}

// Observability returns the telemetry and logging settings for the binary.
func (c *Config) Observability(version string, mode observability.AppMode) observability.Config {
	cfg := observability.DefaultConfig()
	cfg.ServiceVersion = version
	cfg.Mode = mode
	cfg.OTLPEndpoint = c.Telemetry.OTLPEndpoint
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(c.Telemetry.OTLPHeaders)
	cfg.OTLPInsecure = c.Telemetry.OTLPInsecure
	cfg.SampleRatio = c.Telemetry.SampleRatio
	cfg.MetricsFile = c.Telemetry.MetricsFile
	cfg.LogLevel = observability.ParseLogLevel(c.Logging.Level)
	cfg.LogJSON = strings.EqualFold(c.Logging.Format, "json")

	return cfg
}
