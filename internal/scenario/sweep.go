package scenario

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/fractonaut/internal/engine"
)

// Sweep replays one scenario across a range of a single tuning parameter.
type Sweep struct {
	Param    string
	Min, Max float64
	NumSteps int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue  float64
	Ticks       int
	SettleTime  float64
	Coordinates string
}

var sweepParams = map[string]func(*engine.Config, float64){
	"friction":        func(c *engine.Config, v float64) { c.Physics.Friction = v },
	"lerp_base":       func(c *engine.Config, v float64) { c.Physics.LerpBase = v },
	"lerp_rate":       func(c *engine.Config, v float64) { c.Physics.LerpRate = v },
	"momentum_gain":   func(c *engine.Config, v float64) { c.Input.MomentumGain = v },
	"zoom_in_factor":  func(c *engine.Config, v float64) { c.Input.ZoomInFactor = v },
	"zoom_out_factor": func(c *engine.Config, v float64) { c.Input.ZoomOutFactor = v },
	"stiffness":       func(c *engine.Config, v float64) { c.Limits.Stiffness = v },
}

func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunSweep executes a parameter sweep. Each point gets a fresh engine built
// from base with the parameter overridden; settle time is the simulated
// time of the last tick on which the camera was still moving.
func RunSweep(ctx context.Context, sc *Scenario, base engine.Config, sw Sweep) ([]SweepResult, error) {
	set, ok := sweepParams[sw.Param]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter %q", sw.Param)
	}
	if sw.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sw.NumSteps)
	}

	paramStep := 0.0
	if sw.NumSteps > 1 {
		paramStep = (sw.Max - sw.Min) / float64(sw.NumSteps-1)
	}

	results := make([]SweepResult, 0, sw.NumSteps)
	for i := 0; i < sw.NumSteps; i++ {
		paramVal := sw.Min + float64(i)*paramStep

		cfg := base
		set(&cfg, paramVal)
		eng, err := engine.New(cfg)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sw.Param, paramVal, err)
		}

		trace, err := RunScenario(ctx, sc, eng)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sw.Param, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue:  paramVal,
			Ticks:       len(trace.Samples),
			SettleTime:  SettleTime(trace.Samples),
			Coordinates: trace.Coordinates,
		})
		engine.Logger().Info("sweep point", "param", sw.Param, "value", paramVal, "n", i+1, "of", sw.NumSteps)
	}
	return results, nil
}

// SettleTime is the time of the last sample still in motion, zero when
// nothing ever moved.
func SettleTime(samples []Sample) float64 {
	for i := len(samples) - 1; i >= 0; i-- {
		s := samples[i]
		moving := s.VelocityX != 0 || s.VelocityY != 0 ||
			s.CenterX != s.TargetX || s.CenterY != s.TargetY || s.Size != s.TargetSize
		if moving {
			return s.Time
		}
	}
	return 0
}
