package engine

import (
	"math"

	"github.com/san-kum/fractonaut/internal/input"
	"github.com/san-kum/fractonaut/internal/physics"
	"github.com/san-kum/fractonaut/internal/uniforms"
	"github.com/san-kum/fractonaut/internal/viewport"
)

// Config gathers everything an Engine is built from. Limits is shared by
// the input controller and the integrator so both enforce one ceiling.
type Config struct {
	Initial  viewport.CameraParams
	Viewport input.Viewport
	Input    input.Config
	Physics  physics.Config
	Limits   viewport.Limits
	Uniforms uniforms.Policy
}

func DefaultConfig() Config {
	in := input.DefaultConfig()
	return Config{
		Initial:  viewport.DefaultCamera(),
		Viewport: input.Viewport{Width: 1024, Height: 768},
		Input:    in,
		Physics:  physics.DefaultConfig(),
		Limits:   in.Limits,
		Uniforms: uniforms.Policy{PixelRatio: 1},
	}
}

// Validate rejects tuning constants that would break convergence.
func (c Config) Validate() error {
	checks := []struct {
		field string
		value float64
		ok    bool
		rule  string
	}{
		{"input.zoom_in_factor", c.Input.ZoomInFactor, open01(c.Input.ZoomInFactor), "in (0,1)"},
		{"input.zoom_out_factor", c.Input.ZoomOutFactor, c.Input.ZoomOutFactor > 1 && finite(c.Input.ZoomOutFactor), "> 1"},
		{"input.momentum_gain", c.Input.MomentumGain, c.Input.MomentumGain >= 0 && finite(c.Input.MomentumGain), ">= 0"},
		{"physics.friction", c.Physics.Friction, open01(c.Physics.Friction), "in (0,1)"},
		{"physics.velocity_epsilon", c.Physics.VelocityEpsilon, c.Physics.VelocityEpsilon > 0 && finite(c.Physics.VelocityEpsilon), "> 0"},
		{"physics.lerp_base", c.Physics.LerpBase, open01(c.Physics.LerpBase), "in (0,1)"},
		{"physics.lerp_rate", c.Physics.LerpRate, c.Physics.LerpRate > 0 && finite(c.Physics.LerpRate), "> 0"},
		{"physics.max_frame_gap", c.Physics.MaxFrameGap, c.Physics.MaxFrameGap >= physics.NominalFrame, ">= one nominal frame"},
		{"limits.max_size", c.Limits.MaxSize, c.Limits.MaxSize >= 0 && finite(c.Limits.MaxSize), ">= 0 (0 disables)"},
		{"limits.stiffness", c.Limits.Stiffness, c.Limits.MaxSize == 0 || c.Limits.Stiffness > 0, "> 0"},
		{"uniforms.pixel_ratio", c.Uniforms.PixelRatio, c.Uniforms.PixelRatio >= 0 && finite(c.Uniforms.PixelRatio), ">= 0"},
		{"view.size", c.Initial.Size, c.Initial.Size > 0 && finite(c.Initial.Size), "> 0"},
		{"view.max_iterations", float64(c.Initial.MaxIterations), c.Initial.MaxIterations >= 1, ">= 1"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return &ConfigError{Field: chk.field, Value: chk.value, Rule: chk.rule}
		}
	}
	if c.Physics.Adaptive.Enabled && !(c.Physics.Adaptive.ThresholdSize > 0) {
		return &ConfigError{Field: "physics.adaptive.threshold_size", Value: c.Physics.Adaptive.ThresholdSize, Rule: "> 0"}
	}
	return nil
}

func open01(v float64) bool { return v > 0 && v < 1 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
