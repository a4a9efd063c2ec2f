package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/perfconfig/internal/options"
	"github.com/eugenenazirov/perfconfig/internal/render"
)

const (
	defaultFormat   = render.FormatText
	defaultLogLevel = "info"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	EnvPrefix     string
	Format        render.Format
	RedactSecrets bool
	LogLevel      string
	EnvFiles      []string
	// Options are option definitions from the YAML file.
	Options options.MapSource
	// Assignments are option definitions from --set flags.
	Assignments options.MapSource
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	EnvPrefix string             `yaml:"env_prefix"`
	Format    string             `yaml:"format"`
	Redact    *bool              `yaml:"redact"`
	LogLevel  string             `yaml:"log_level"`
	EnvFiles  []string           `yaml:"env_files"`
	Options   map[string]*string `yaml:"options"`
}

// envConfig holds the tool's own environment variables.
type envConfig struct {
	EnvPrefix string   `env:"PERFCONFIG_ENV_PREFIX"`
	Format    string   `env:"PERFCONFIG_FORMAT"`
	Redact    *bool    `env:"PERFCONFIG_REDACT"`
	LogLevel  string   `env:"PERFCONFIG_LOG_LEVEL"`
	EnvFiles  []string `env:"PERFCONFIG_ENV_FILES" envSeparator:","`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile  string
	EnvPrefix   *string
	Format      *string
	Redact      *bool
	LogLevel    *string
	EnvFiles    []string
	Assignments []string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()
	rawOptions := map[string]string{}
	rawFormat := string(cfg.Format)

	// Apply environment variables
	if err := applyEnvConfig(&cfg, &rawFormat); err != nil {
		return Config{}, fmt.Errorf("load environment config: %w", err)
	}

	// Load from YAML file if specified (overrides environment)
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, &rawFormat, rawOptions, yamlCfg)
	}

	// Apply CLI overrides (highest precedence)
	var rawAssignments []string
	if overrides != nil {
		applyCLIOverrides(&cfg, &rawFormat, overrides)
		rawAssignments = overrides.Assignments
	}

	format, err := render.ParseFormat(rawFormat)
	if err != nil {
		return Config{}, err
	}
	cfg.Format = format

	// Option keys can only be parsed once the prefix is final.
	if cfg.Options, err = options.NewMapSource(rawOptions, cfg.EnvPrefix); err != nil {
		return Config{}, fmt.Errorf("YAML options: %w", err)
	}
	if cfg.Assignments, err = parseAssignments(rawAssignments, cfg.EnvPrefix); err != nil {
		return Config{}, fmt.Errorf("parse assignments: %w", err)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		EnvPrefix:     options.DefaultEnvPrefix,
		Format:        defaultFormat,
		RedactSecrets: false,
		LogLevel:      defaultLogLevel,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
// Options set to null are treated as undefined.
func applyYAMLConfig(cfg *Config, format *string, rawOptions map[string]string, yamlCfg *yamlConfig) {
	if yamlCfg.EnvPrefix != "" {
		cfg.EnvPrefix = yamlCfg.EnvPrefix
	}

	if yamlCfg.Format != "" {
		*format = yamlCfg.Format
	}

	if yamlCfg.Redact != nil {
		cfg.RedactSecrets = *yamlCfg.Redact
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if len(yamlCfg.EnvFiles) > 0 {
		cfg.EnvFiles = yamlCfg.EnvFiles
	}

	for key, value := range yamlCfg.Options {
		if value == nil {
			continue
		}
		rawOptions[key] = *value
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config, format *string) error {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return err
	}

	if prefix := strings.TrimSpace(ec.EnvPrefix); prefix != "" {
		cfg.EnvPrefix = prefix
	}

	if f := strings.TrimSpace(ec.Format); f != "" {
		*format = f
	}

	if ec.Redact != nil {
		cfg.RedactSecrets = *ec.Redact
	}

	if level := strings.TrimSpace(ec.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	if files := compact(ec.EnvFiles); len(files) > 0 {
		cfg.EnvFiles = files
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides. Assignments are
// parsed separately once the prefix is final.
func applyCLIOverrides(cfg *Config, format *string, overrides *CLIOverrides) {
	if overrides.EnvPrefix != nil && *overrides.EnvPrefix != "" {
		cfg.EnvPrefix = *overrides.EnvPrefix
	}

	if overrides.Format != nil && *overrides.Format != "" {
		*format = *overrides.Format
	}

	if overrides.Redact != nil {
		cfg.RedactSecrets = *overrides.Redact
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if files := compact(overrides.EnvFiles); len(files) > 0 {
		cfg.EnvFiles = files
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.EnvPrefix == "" {
		return errors.New("env prefix cannot be empty")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	return nil
}

// parseAssignments parses KEY=VALUE pairs in order. Keys are normalised to
// catalog names first, so NUM_ITERS=1 followed by num_iters=2 yields 2.
// Everything after the first '=' belongs to the value, which may be empty.
func parseAssignments(raw []string, prefix string) (options.MapSource, error) {
	out := make(options.MapSource, len(raw))
	for _, pair := range raw {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected KEY=VALUE", pair)
		}
		name, err := options.ParseName(key, prefix)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
