package physics

import (
	"math"

	"github.com/san-kum/fractonaut/internal/viewport"
)

// NominalFrame is the frame length rates are calibrated against.
const NominalFrame = 1.0 / 60.0

type Interpolation int

const (
	Linear Interpolation = iota
	// Logarithmic interpolates log(size), which zooms at a constant
	// perceived speed.
	Logarithmic
)

// AdaptiveIterations raises the iteration budget as the view deepens:
// PerDecade extra iterations for every factor of ten the current size is
// below ThresholdSize, never above Cap.
type AdaptiveIterations struct {
	Enabled       bool
	ThresholdSize float64
	PerDecade     int
	Cap           int
}

type Config struct {
	Friction          float64 // velocity kept per nominal frame, in (0,1)
	VelocityEpsilon   float64 // stop threshold, relative to target size
	LerpBase          float64 // in (0,1)
	LerpRate          float64 // > 0
	MaxFrameGap       float64 // seconds; longer gaps count as one frame
	SizeInterpolation Interpolation
	Adaptive          AdaptiveIterations
	Limits            viewport.Limits
}

func DefaultConfig() Config {
	return Config{
		Friction:        0.92,
		VelocityEpsilon: 1e-4,
		LerpBase:        0.92,
		LerpRate:        60,
		MaxFrameGap:     0.1,
		Adaptive: AdaptiveIterations{
			ThresholdSize: 1e-3,
			PerDecade:     250,
			Cap:           10000,
		},
		Limits: viewport.Limits{
			MaxSize:   4.0,
			Stiffness: 1.0,
			HomeX:     viewport.DefaultCenterX,
			HomeY:     viewport.DefaultCenterY,
		},
	}
}

type Integrator struct {
	cfg Config
}

func New(cfg Config) *Integrator {
	return &Integrator{cfg: cfg}
}

func (in *Integrator) Config() Config { return in.cfg }

// FrameDelta sanitizes a measured tick length. Non-finite or negative
// values become zero; a gap above maxGap is replaced by one nominal frame
// and reported as clamped.
func FrameDelta(elapsed, maxGap float64) (dt float64, clamped bool) {
	if math.IsNaN(elapsed) || elapsed <= 0 {
		return 0, false
	}
	if elapsed > maxGap {
		return NominalFrame, true
	}
	return elapsed, false
}

// LerpFactor is the fraction of the remaining distance covered in dt.
func (in *Integrator) LerpFactor(dt float64) float64 {
	return 1 - math.Pow(in.cfg.LerpBase, dt*in.cfg.LerpRate)
}

// Step advances s by dt seconds of already sanitized time. dragging
// suspends momentum while the pointer holds the view.
func (in *Integrator) Step(s *viewport.State, dt float64, dragging bool) {
	if dt > 0 && !dragging {
		in.momentum(s, dt)
	}

	tgt := s.Target()
	if in.cfg.Limits.Apply(&tgt) {
		s.UpdateTarget(tgt)
		tgt = s.Target()
	}

	cur := s.Current()
	if dt > 0 {
		f := in.LerpFactor(dt)
		cur.CenterX = approach(cur.CenterX, tgt.CenterX, f)
		cur.CenterY = approach(cur.CenterY, tgt.CenterY, f)
		if in.cfg.SizeInterpolation == Logarithmic {
			cur.Size = approachLog(cur.Size, tgt.Size, f)
		} else {
			cur.Size = approach(cur.Size, tgt.Size, f)
		}
	}

	cur.PaletteID = tgt.PaletteID
	cur.Fractal = tgt.Fractal
	cur.JuliaC = tgt.JuliaC
	cur.MaxIterations = in.iterations(tgt.MaxIterations, cur.Size)

	s.SetCurrent(cur)
}

func (in *Integrator) momentum(s *viewport.State, dt float64) {
	v := s.Velocity()
	if v.IsZero() {
		return
	}
	if !viewport.IsFinite(v.X, v.Y) {
		s.SetVelocity(viewport.Velocity{})
		return
	}

	frames := dt / NominalFrame
	s.SetTarget(viewport.Delta{CenterX: v.X * frames, CenterY: v.Y * frames})

	decay := math.Pow(in.cfg.Friction, frames)
	v.X *= decay
	v.Y *= decay
	if v.Manhattan() < in.cfg.VelocityEpsilon*s.Target().Size {
		v = viewport.Velocity{}
	}
	s.SetVelocity(v)
}

func (in *Integrator) iterations(base int, size float64) int {
	a := in.cfg.Adaptive
	if !a.Enabled || !(size < a.ThresholdSize) {
		return base
	}
	decades := math.Log10(a.ThresholdSize / size)
	n := base + int(math.Round(float64(a.PerDecade)*decades))
	if a.Cap > 0 && n > a.Cap {
		n = max(a.Cap, base)
	}
	return n
}

// minSnapFactor keeps sub-millisecond ticks from snapping across a
// distance rounding alone would not cover.
const minSnapFactor = 1e-3

// approach moves cur toward tgt by fraction f. The result always lies
// between cur and tgt, and snaps to tgt once rounding stops making progress.
func approach(cur, tgt, f float64) float64 {
	return settle(cur, tgt, cur+(tgt-cur)*f, f)
}

func approachLog(cur, tgt, f float64) float64 {
	lc, lt := math.Log(cur), math.Log(tgt)
	return settle(cur, tgt, math.Exp(lc+(lt-lc)*f), f)
}

func settle(cur, tgt, next, f float64) float64 {
	if math.IsNaN(next) {
		return tgt
	}
	if next == cur {
		if f >= minSnapFactor {
			return tgt
		}
		return cur
	}
	if (tgt >= cur && (next < cur || next > tgt)) || (tgt < cur && (next > cur || next < tgt)) {
		return tgt
	}
	return next
}
