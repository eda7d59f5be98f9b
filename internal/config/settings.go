package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/phaseplot/internal/trajectory"
	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "PHASEPLOT"
	DefaultConfigName = "phaseplot"
)

// Settings are the user-level knobs that apply to every scene.
type Settings struct {
	Logger      LoggerConfig       `mapstructure:"logger" yaml:"logger"`
	Render      RenderConfig       `mapstructure:"render" yaml:"render"`
	Integration trajectory.Options `mapstructure:"integration" yaml:"integration"`
	Workers     int                `mapstructure:"workers" yaml:"workers"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// RenderConfig sizes are in centimetres.
type RenderConfig struct {
	Width             float64  `mapstructure:"width" yaml:"width"`
	Height            float64  `mapstructure:"height" yaml:"height"`
	DPI               int      `mapstructure:"dpi" yaml:"dpi"`
	Resolution        int      `mapstructure:"resolution" yaml:"resolution"`
	ArrowLength       float64  `mapstructure:"arrow_length" yaml:"arrow_length"`
	HideZeroTick      bool     `mapstructure:"hide_zero_tick" yaml:"hide_zero_tick"`
	AxesThroughOrigin bool     `mapstructure:"axes_through_origin" yaml:"axes_through_origin"`
	Grid              bool     `mapstructure:"grid" yaml:"grid"`
	Legend            bool     `mapstructure:"legend" yaml:"legend"`
	ClipTrajectories  bool     `mapstructure:"clip_trajectories" yaml:"clip_trajectories"`
	FieldColormap     []string `mapstructure:"field_colormap" yaml:"field_colormap"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "phaseplot",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      7,
		},
		Render: RenderConfig{
			Width:             12,
			Height:            12,
			DPI:               400,
			Resolution:        30,
			ArrowLength:       0.8,
			HideZeroTick:      true,
			AxesThroughOrigin: true,
			Grid:              true,
			Legend:            true,
			ClipTrajectories:  true,
			FieldColormap:     []string{"midnightblue", "teal", "gold"},
		},
		Integration: trajectory.Options{
			Samples: trajectory.DefaultSamples,
			Method:  "rk45",
		},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults(v *viper.Viper) {
	d := DefaultSettings()

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.add_source", d.Logger.AddSource)
	v.SetDefault("logger.service_name", d.Logger.ServiceName)
	v.SetDefault("logger.log_file", d.Logger.LogFile)
	v.SetDefault("logger.max_size", d.Logger.MaxSize)
	v.SetDefault("logger.max_backups", d.Logger.MaxBackups)
	v.SetDefault("logger.max_age", d.Logger.MaxAge)
	v.SetDefault("logger.compress", d.Logger.Compress)

	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("render.height", d.Render.Height)
	v.SetDefault("render.dpi", d.Render.DPI)
	v.SetDefault("render.resolution", d.Render.Resolution)
	v.SetDefault("render.arrow_length", d.Render.ArrowLength)
	v.SetDefault("render.hide_zero_tick", d.Render.HideZeroTick)
	v.SetDefault("render.axes_through_origin", d.Render.AxesThroughOrigin)
	v.SetDefault("render.grid", d.Render.Grid)
	v.SetDefault("render.legend", d.Render.Legend)
	v.SetDefault("render.clip_trajectories", d.Render.ClipTrajectories)
	v.SetDefault("render.field_colormap", d.Render.FieldColormap)

	v.SetDefault("integration.samples", d.Integration.Samples)
	v.SetDefault("integration.method", d.Integration.Method)
	v.SetDefault("integration.rel_tol", d.Integration.RelTol)
	v.SetDefault("integration.abs_tol", d.Integration.AbsTol)
	v.SetDefault("integration.initial_step", d.Integration.InitialStep)
	v.SetDefault("integration.min_step", d.Integration.MinStep)
	v.SetDefault("integration.max_steps", d.Integration.MaxSteps)
	v.SetDefault("integration.substeps", d.Integration.Substeps)

	v.SetDefault("workers", d.Workers)
}

// LoadSettings reads phaseplot.yaml from path, or from the working directory
// when path is empty, and overlays PHASEPLOT_* environment variables. A
// missing file in the working directory is not an error.
func LoadSettings(v *viper.Viper, path string) (*Settings, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if errs := s.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errs)
	}
	return &s, nil
}
