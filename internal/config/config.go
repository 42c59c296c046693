package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/philipparndt/circlefit/pkg/geometry"
	"github.com/philipparndt/circlefit/pkg/render"
	"github.com/philipparndt/circlefit/pkg/report"
)

// EnvPrefix prefixes environment variables, e.g. CIRCLEFIT_FIT_STRICT
const EnvPrefix = "CIRCLEFIT"

// Config holds all settings of the circlefit command
type Config struct {
	Fit    FitConfig    `mapstructure:"fit"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
	Arc    ArcConfig    `mapstructure:"arc"`
	Watch  WatchConfig  `mapstructure:"watch"`
	Plot   PlotConfig   `mapstructure:"plot"`
}

type FitConfig struct {
	Strict    bool    `mapstructure:"strict"`
	CondLimit float64 `mapstructure:"cond_limit"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ArcConfig describes the synthetic test arc
type ArcConfig struct {
	CenterX float64 `mapstructure:"center_x"`
	CenterY float64 `mapstructure:"center_y"`
	Radius  float64 `mapstructure:"radius"`
	Points  int     `mapstructure:"points"`
	Span    float64 `mapstructure:"span"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type PlotConfig struct {
	Segments int `mapstructure:"segments"`
}

// DefaultDebounce is how long watch waits after the last change before refitting
const DefaultDebounce = 500 * time.Millisecond

// SetDefaults registers the default of every key. Keys without a default are
// not picked up from the environment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("fit.strict", false)
	v.SetDefault("fit.cond_limit", geometry.DefaultConditionLimit)
	v.SetDefault("output.format", string(report.FormatText))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("arc.center_x", 500.0)
	v.SetDefault("arc.center_y", 500.0)
	v.SetDefault("arc.radius", 300.0)
	v.SetDefault("arc.points", geometry.DefaultArcPoints)
	v.SetDefault("arc.span", geometry.DefaultArcSpan)
	v.SetDefault("watch.debounce", DefaultDebounce)
	v.SetDefault("plot.segments", render.DefaultSegments)
}

// Options selects the optional files Load reads
type Options struct {
	// ConfigFile is an explicit config file. When empty, circlefit.{yaml,toml,json}
	// is looked up in the working directory and $HOME/.config/circlefit, and a
	// missing file is not an error.
	ConfigFile string

	// EnvFile is an explicit .env file. When empty, .env in the working
	// directory is loaded if present. Variables already set are kept.
	EnvFile string
}

// Load resolves the configuration from defaults, config file, .env file,
// environment and any flags already bound to v, in increasing precedence
func Load(v *viper.Viper, opts Options) (*Config, error) {
	SetDefaults(v)

	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("circlefit")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/circlefit")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Validate rejects settings no command can work with
func (c *Config) Validate() error {
	var errs []error

	if c.Fit.CondLimit <= 0 || math.IsNaN(c.Fit.CondLimit) {
		errs = append(errs, fmt.Errorf("fit.cond_limit must be positive, got %v", c.Fit.CondLimit))
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if c.Arc.Radius < 0 {
		errs = append(errs, fmt.Errorf("arc.radius must not be negative, got %v", c.Arc.Radius))
	}
	if c.Arc.Points < 0 {
		errs = append(errs, fmt.Errorf("arc.points must not be negative, got %d", c.Arc.Points))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce))
	}
	if c.Plot.Segments < 3 {
		errs = append(errs, fmt.Errorf("plot.segments must be at least 3, got %d", c.Plot.Segments))
	}

	return errors.Join(errs...)
}

// FitOptions returns the solver options
func (c *Config) FitOptions() geometry.FitOptions {
	return geometry.FitOptions{
		ConditionLimit: c.Fit.CondLimit,
		Strict:         c.Fit.Strict,
	}
}

// ArcCenter returns the center of the synthetic arc
func (c *Config) ArcCenter() geometry.Vector2 {
	return geometry.NewVector2(c.Arc.CenterX, c.Arc.CenterY)
}

// ReportFormat returns the validated output format
func (c *Config) ReportFormat() report.Format {
	f, _ := report.ParseFormat(c.Output.Format)
	return f
}
