package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"lunatint/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Ramp        RampConfig        `yaml:"ramp" mapstructure:"ramp"`
	Palette     PaletteConfig     `yaml:"palette" mapstructure:"palette"`
	Document    DocumentConfig    `yaml:"document" mapstructure:"document"`
	Preview     PreviewConfig     `yaml:"preview" mapstructure:"preview"`
	Watch       WatchConfig       `yaml:"watch" mapstructure:"watch"`
	Version     int               `yaml:"version" mapstructure:"version"`
}

// LoggingConfig controls log level and output format
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ConcurrencyConfig bounds the number of ramps computed at once
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RampConfig holds the lightness curve parameters used by the ramp generator.
// Lightest and Darkest are HSL lightness targets for steps 100 and 900, Headroom is the
// fraction of the remaining range used when the base color is already beyond a target,
// and Gamma shapes the interpolation (1 is linear).
type RampConfig struct {
	Lightest float64 `yaml:"lightest" mapstructure:"lightest"`
	Darkest  float64 `yaml:"darkest" mapstructure:"darkest"`
	Headroom float64 `yaml:"headroom" mapstructure:"headroom"`
	Gamma    float64 `yaml:"gamma" mapstructure:"gamma"`
}

// PaletteConfig controls how update batches are merged
type PaletteConfig struct {
	DefaultStep int    `yaml:"default_step" mapstructure:"default_step"`
	Duplicates  string `yaml:"duplicates" mapstructure:"duplicates"`
}

// DocumentConfig controls how ramps are written into Lunacy documents
type DocumentConfig struct {
	NameFormat string `yaml:"name_format" mapstructure:"name_format"`
}

// PreviewConfig controls terminal swatch rendering
type PreviewConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// WatchConfig controls how input changes are coalesced in watch mode
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		Version: 1,
	}

	cfg.Logging.Level = DefaultLogLevel
	cfg.Logging.Format = DefaultLogFormat

	cfg.Concurrency.Workers = MaxWorkers

	cfg.Ramp.Lightest = Lightest
	cfg.Ramp.Darkest = Darkest
	cfg.Ramp.Headroom = Headroom
	cfg.Ramp.Gamma = Gamma

	cfg.Palette.DefaultStep = DefaultStep
	cfg.Palette.Duplicates = DuplicatesLast

	cfg.Document.NameFormat = NameFormat

	cfg.Preview.Enabled = true

	cfg.Watch.Debounce = WatchDebounce

	return cfg
}

// Load builds the configuration from defaults, an optional .env file, the config file and
// LUNATINT_* environment variables. An empty path falls back to lunatint.yaml, which may be absent.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadEnvFile(EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseConfig, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// loadEnvFile loads variables from a dotenv file if it exists
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	return nil
}

// setDefaults registers every key so environment overrides are picked up by Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("ramp.lightest", cfg.Ramp.Lightest)
	v.SetDefault("ramp.darkest", cfg.Ramp.Darkest)
	v.SetDefault("ramp.headroom", cfg.Ramp.Headroom)
	v.SetDefault("ramp.gamma", cfg.Ramp.Gamma)
	v.SetDefault("palette.default_step", cfg.Palette.DefaultStep)
	v.SetDefault("palette.duplicates", cfg.Palette.Duplicates)
	v.SetDefault("document.name_format", cfg.Document.NameFormat)
	v.SetDefault("preview.enabled", cfg.Preview.Enabled)
	v.SetDefault("watch.debounce", cfg.Watch.Debounce)
	v.SetDefault("version", cfg.Version)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateConcurrency(); err != nil {
		return err
	}

	if err := c.validateRamp(); err != nil {
		return err
	}

	if err := c.validatePalette(); err != nil {
		return err
	}

	if err := c.validateDocument(); err != nil {
		return err
	}

	if c.Watch.Debounce <= 0 {
		return errors.ErrInvalidWatchDebounce
	}

	return nil
}

// validateConcurrency validates concurrency settings
func (c *Config) validateConcurrency() error {
	if c.Concurrency.Workers <= 0 {
		return errors.ErrInvalidConcurrencyWorkers
	}

	return nil
}

// validateRamp validates the lightness curve parameters
func (c *Config) validateRamp() error {
	r := c.Ramp

	if r.Darkest < 0 || r.Lightest > 1 || r.Darkest >= r.Lightest {
		return errors.ErrInvalidRampLightness
	}

	if r.Headroom <= 0 || r.Headroom >= 1 {
		return errors.ErrInvalidRampHeadroom
	}

	if r.Gamma <= 0 {
		return errors.ErrInvalidRampGamma
	}

	return nil
}

// validatePalette validates merge settings
func (c *Config) validatePalette() error {
	step := c.Palette.DefaultStep
	if step < 100 || step > 900 || step%100 != 0 {
		return fmt.Errorf("%w: default step %d", errors.ErrInvalidStep, step)
	}

	switch c.Palette.Duplicates {
	case DuplicatesLast, DuplicatesStrict:
		return nil
	default:
		return fmt.Errorf("%w: '%s' (must be '%s' or '%s')", errors.ErrInvalidDuplicatePolicy, c.Palette.Duplicates, DuplicatesLast, DuplicatesStrict)
	}
}

// validateDocument validates the swatch name format
func (c *Config) validateDocument() error {
	format := c.Document.NameFormat
	if !strings.Contains(format, NamePlaceholder) || !strings.Contains(format, StepPlaceholder) {
		return fmt.Errorf("%w: '%s'", errors.ErrInvalidNameFormat, format)
	}

	return nil
}
