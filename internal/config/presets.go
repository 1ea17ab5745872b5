package config

import "sort"

// Presets are whole configurations keyed by name. classic is the package
// defaults. smooth adds log-size easing, deeper iteration budgets and
// recentering. snappy trades glide for response.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"smooth": tuned(func(c *Config) {
		c.Physics.Friction = 0.94
		c.Physics.SizeInterpolation = "log"
		c.Physics.Adaptive.Enabled = true
		c.Limits.Recenter = true
	}),
	"snappy": tuned(func(c *Config) {
		c.Input.ZoomInFactor = 0.85
		c.Input.ZoomOutFactor = 1.15
		c.Physics.Friction = 0.85
		c.Physics.LerpBase = 0.8
		c.Limits.Stiffness = 4
	}),
}

func tuned(fn func(*Config)) *Config {
	cfg := DefaultConfig()
	fn(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
