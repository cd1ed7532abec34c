package config

import (
	"fmt"
	"os"
	"strconv"

	"image-analyser/internal/logger"
	"image-analyser/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

const (
	EnvConfigPath     = "IMAGE_ANALYSER_CONFIG"
	EnvLogLevel       = "LOG_LEVEL"
	EnvDebug          = "DEBUG"
	EnvDebounceMillis = "IMAGE_ANALYSER_DEBOUNCE_MS"
	EnvThumbnailWidth = "IMAGE_ANALYSER_THUMBNAIL_WIDTH"
)

type Config struct {
	LogLevel       string `yaml:"log_level"`
	DebounceMillis int    `yaml:"debounce_ms"`
	ThumbnailWidth int    `yaml:"thumbnail_width"`
	InitialFilter  string `yaml:"initial_filter"`
	ShowProfile    bool   `yaml:"show_profile"`
}

func Default() Config {
	return Config{
		LogLevel:      "info",
		InitialFilter: models.FilterNone.String(),
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// IMAGE_ANALYSER_CONFIG, and environment overrides, in that order.
func Load() (Config, error) {
	c := Default()

	if path := os.Getenv(EnvConfigPath); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := c.applyEnv(); err != nil {
		return c, err
	}

	return c, c.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	} else if os.Getenv(EnvDebug) == "1" {
		c.LogLevel = "debug"
	}

	if v := os.Getenv(EnvDebounceMillis); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.NewValidationError(EnvDebounceMillis, v, "must be an integer")
		}
		c.DebounceMillis = n
	}

	if v := os.Getenv(EnvThumbnailWidth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.NewValidationError(EnvThumbnailWidth, v, "must be an integer")
		}
		c.ThumbnailWidth = n
	}

	return nil
}

func (c Config) Validate() error {
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return models.NewValidationError("log_level", c.LogLevel, "must be one of debug, info, warn, error")
	}
	if c.DebounceMillis < 0 {
		return models.NewValidationError("debounce_ms", c.DebounceMillis, "must not be negative")
	}
	if c.ThumbnailWidth < 0 {
		return models.NewValidationError("thumbnail_width", c.ThumbnailWidth, "must not be negative")
	}
	if _, err := models.ParseFilterVariant(c.InitialFilter); err != nil {
		return err
	}
	return nil
}

// Level returns the zerolog level for LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	level, ok := logger.ParseLevel(c.LogLevel)
	if !ok {
		return zerolog.InfoLevel
	}
	return level
}

// Filter returns the parsed InitialFilter, falling back to FilterNone.
func (c Config) Filter() models.FilterVariant {
	v, err := models.ParseFilterVariant(c.InitialFilter)
	if err != nil {
		return models.FilterNone
	}
	return v
}
