// Package config loads settings from defaults, an optional config file,
// WORLDMAP_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const EnvPrefix = "WORLDMAP"

type Config struct {
	Map      MapConfig      `mapstructure:"map"`
	Status   StatusConfig   `mapstructure:"status"`
	Screen   ScreenConfig   `mapstructure:"screen"`
	Viewport ViewportConfig `mapstructure:"viewport"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

type MapConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type StatusConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ScreenConfig is the pixel size of offscreen renders.
type ScreenConfig struct {
	Width  int `mapstructure:"width" validate:"gte=16,lte=16384"`
	Height int `mapstructure:"height" validate:"gte=16,lte=16384"`
}

type ViewportConfig struct {
	PanStep        float64 `mapstructure:"pan_step" validate:"gt=0"`
	Smoothing      float64 `mapstructure:"smoothing" validate:"gt=0,lte=1"`
	Epsilon        float64 `mapstructure:"epsilon" validate:"gt=0"`
	ClickThreshold float64 `mapstructure:"click_threshold" validate:"gt=0"`
}

type UIConfig struct {
	FPS int `mapstructure:"fps" validate:"gte=1,lte=120"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// SetDefaults registers the built-in value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("map.path", "assets/world.geojson")
	v.SetDefault("status.path", "country_status.dat")
	v.SetDefault("screen.width", 1200)
	v.SetDefault("screen.height", 800)
	v.SetDefault("viewport.pan_step", 5.0)
	v.SetDefault("viewport.smoothing", 0.2)
	v.SetDefault("viewport.epsilon", 1e-4)
	v.SetDefault("viewport.click_threshold", 5.0)
	v.SetDefault("ui.fps", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "worldmap.log")
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file into v when it is set, then decodes and validates.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &cfg, nil
}
