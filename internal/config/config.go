package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fractonaut/internal/engine"
	"github.com/san-kum/fractonaut/internal/input"
	"github.com/san-kum/fractonaut/internal/physics"
	"github.com/san-kum/fractonaut/internal/uniforms"
	"github.com/san-kum/fractonaut/internal/viewport"
)

// EnvPrefix namespaces every environment override, e.g.
// FRACTONAUT_PHYSICS_FRICTION=0.9.
const EnvPrefix = "FRACTONAUT_"

const DefaultPreset = "smooth"

var ErrUnknownPreset = errors.New("unknown preset")

type Config struct {
	View     ViewConfig     `yaml:"view" envPrefix:"VIEW_"`
	Input    InputConfig    `yaml:"input" envPrefix:"INPUT_"`
	Physics  PhysicsConfig  `yaml:"physics" envPrefix:"PHYSICS_"`
	Limits   LimitsConfig   `yaml:"limits" envPrefix:"LIMITS_"`
	Renderer RendererConfig `yaml:"renderer" envPrefix:"RENDERER_"`
	Log      LogConfig      `yaml:"log" envPrefix:"LOG_"`
}

type ViewConfig struct {
	CenterX       float64    `yaml:"center_x" env:"CENTER_X"`
	CenterY       float64    `yaml:"center_y" env:"CENTER_Y"`
	Size          float64    `yaml:"size" env:"SIZE"`
	MaxIterations int        `yaml:"max_iterations" env:"MAX_ITERATIONS"`
	Palette       int        `yaml:"palette" env:"PALETTE"`
	Fractal       string     `yaml:"fractal" env:"FRACTAL"`
	JuliaC        [2]float64 `yaml:"julia_c,flow"`
}

type InputConfig struct {
	ZoomInFactor  float64 `yaml:"zoom_in_factor" env:"ZOOM_IN_FACTOR"`
	ZoomOutFactor float64 `yaml:"zoom_out_factor" env:"ZOOM_OUT_FACTOR"`
	MomentumGain  float64 `yaml:"momentum_gain" env:"MOMENTUM_GAIN"`
}

type PhysicsConfig struct {
	Friction          float64        `yaml:"friction" env:"FRICTION"`
	VelocityEpsilon   float64        `yaml:"velocity_epsilon" env:"VELOCITY_EPSILON"`
	LerpBase          float64        `yaml:"lerp_base" env:"LERP_BASE"`
	LerpRate          float64        `yaml:"lerp_rate" env:"LERP_RATE"`
	MaxFrameGap       float64        `yaml:"max_frame_gap" env:"MAX_FRAME_GAP"`
	SizeInterpolation string         `yaml:"size_interpolation" env:"SIZE_INTERPOLATION"`
	Adaptive          AdaptiveConfig `yaml:"adaptive" envPrefix:"ADAPTIVE_"`
}

type AdaptiveConfig struct {
	Enabled       bool    `yaml:"enabled" env:"ENABLED"`
	ThresholdSize float64 `yaml:"threshold_size" env:"THRESHOLD_SIZE"`
	PerDecade     int     `yaml:"per_decade" env:"PER_DECADE"`
	Cap           int     `yaml:"cap" env:"CAP"`
}

// LimitsConfig is the soft zoom-out ceiling. Recenter pulls toward the
// default center, not the starting view.
type LimitsConfig struct {
	MaxSize   float64 `yaml:"max_size" env:"MAX_SIZE"`
	Stiffness float64 `yaml:"stiffness" env:"STIFFNESS"`
	Recenter  bool    `yaml:"recenter" env:"RECENTER"`
}

type RendererConfig struct {
	Width         float64 `yaml:"width" env:"WIDTH"`
	Height        float64 `yaml:"height" env:"HEIGHT"`
	PixelRatio    float64 `yaml:"pixel_ratio" env:"PIXEL_RATIO"`
	NativeDoubles bool    `yaml:"native_doubles" env:"NATIVE_DOUBLES"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"`
}

func DefaultConfig() *Config {
	cam := viewport.DefaultCamera()
	in := input.DefaultConfig()
	ph := physics.DefaultConfig()
	return &Config{
		View: ViewConfig{
			CenterX:       cam.CenterX,
			CenterY:       cam.CenterY,
			Size:          cam.Size,
			MaxIterations: cam.MaxIterations,
			Palette:       cam.PaletteID,
			Fractal:       cam.Fractal.String(),
			JuliaC:        cam.JuliaC,
		},
		Input: InputConfig{
			ZoomInFactor:  in.ZoomInFactor,
			ZoomOutFactor: in.ZoomOutFactor,
			MomentumGain:  in.MomentumGain,
		},
		Physics: PhysicsConfig{
			Friction:          ph.Friction,
			VelocityEpsilon:   ph.VelocityEpsilon,
			LerpBase:          ph.LerpBase,
			LerpRate:          ph.LerpRate,
			MaxFrameGap:       ph.MaxFrameGap,
			SizeInterpolation: "linear",
			Adaptive: AdaptiveConfig{
				Enabled:       ph.Adaptive.Enabled,
				ThresholdSize: ph.Adaptive.ThresholdSize,
				PerDecade:     ph.Adaptive.PerDecade,
				Cap:           ph.Adaptive.Cap,
			},
		},
		Limits: LimitsConfig{
			MaxSize:   in.Limits.MaxSize,
			Stiffness: in.Limits.Stiffness,
			Recenter:  in.Limits.Recenter,
		},
		Renderer: RendererConfig{
			Width:      1024,
			Height:     768,
			PixelRatio: 1,
		},
		Log: LogConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver decodes the file at path on top of base, so keys missing from
// the file keep base's values.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from FRACTONAUT_* variables. Unset variables
// leave the current value alone.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Resolve layers a preset, an optional file and the environment.
// An empty preset means DefaultPreset; an empty path skips the file.
func Resolve(preset, path string) (*Config, error) {
	if preset == "" {
		preset = DefaultPreset
	}
	cfg := GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
	if path != "" {
		var err error
		if cfg, err = LoadOver(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// ToEngine converts the file representation into a validated engine
// configuration.
func (c *Config) ToEngine() (engine.Config, error) {
	fractal, err := viewport.ParseFractal(c.View.Fractal)
	if err != nil {
		return engine.Config{}, err
	}
	interp, err := parseInterpolation(c.Physics.SizeInterpolation)
	if err != nil {
		return engine.Config{}, err
	}

	limits := viewport.Limits{
		MaxSize:   c.Limits.MaxSize,
		Stiffness: c.Limits.Stiffness,
		Recenter:  c.Limits.Recenter,
		HomeX:     viewport.DefaultCenterX,
		HomeY:     viewport.DefaultCenterY,
	}

	cfg := engine.DefaultConfig()
	cfg.Initial = viewport.CameraParams{
		CenterX:       c.View.CenterX,
		CenterY:       c.View.CenterY,
		Size:          c.View.Size,
		MaxIterations: c.View.MaxIterations,
		PaletteID:     c.View.Palette,
		Fractal:       fractal,
		JuliaC:        c.View.JuliaC,
	}
	cfg.Viewport = input.Viewport{Width: c.Renderer.Width, Height: c.Renderer.Height}
	cfg.Input = input.Config{
		ZoomInFactor:  c.Input.ZoomInFactor,
		ZoomOutFactor: c.Input.ZoomOutFactor,
		MomentumGain:  c.Input.MomentumGain,
		Limits:        limits,
	}
	cfg.Physics = physics.Config{
		Friction:          c.Physics.Friction,
		VelocityEpsilon:   c.Physics.VelocityEpsilon,
		LerpBase:          c.Physics.LerpBase,
		LerpRate:          c.Physics.LerpRate,
		MaxFrameGap:       c.Physics.MaxFrameGap,
		SizeInterpolation: interp,
		Adaptive: physics.AdaptiveIterations{
			Enabled:       c.Physics.Adaptive.Enabled,
			ThresholdSize: c.Physics.Adaptive.ThresholdSize,
			PerDecade:     c.Physics.Adaptive.PerDecade,
			Cap:           c.Physics.Adaptive.Cap,
		},
		Limits: limits,
	}
	cfg.Limits = limits
	cfg.Uniforms = uniforms.Policy{
		NativeDoubles: c.Renderer.NativeDoubles,
		PixelRatio:    c.Renderer.PixelRatio,
	}

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}

func parseInterpolation(name string) (physics.Interpolation, error) {
	switch name {
	case "", "linear":
		return physics.Linear, nil
	case "log", "logarithmic":
		return physics.Logarithmic, nil
	}
	return physics.Linear, fmt.Errorf("%w: physics.size_interpolation %q", engine.ErrInvalidConfig, name)
}
