package viewport

import (
	"math"
	"testing"
)

func TestNewDefault(t *testing.T) {
	s := NewDefault()
	cur := s.Current()

	if cur.CenterX != -0.5 || cur.CenterY != 0 {
		t.Errorf("center = (%v, %v), want (-0.5, 0)", cur.CenterX, cur.CenterY)
	}
	if cur.Size != 3.0 {
		t.Errorf("size = %v, want 3", cur.Size)
	}
	if cur.MaxIterations != 500 {
		t.Errorf("maxIterations = %d, want 500", cur.MaxIterations)
	}
	if cur.Fractal != Mandelbrot {
		t.Errorf("fractal = %v, want mandelbrot", cur.Fractal)
	}
	if s.Target() != cur {
		t.Error("target should start equal to current")
	}
}

func TestNew_RepairsInvalidInitial(t *testing.T) {
	s := New(CameraParams{CenterX: math.NaN(), CenterY: 1, Size: -2, MaxIterations: 0})
	cur := s.Current()

	if !cur.IsValid() {
		t.Fatalf("camera not valid: %+v", cur)
	}
	if cur.CenterX != DefaultCenterX {
		t.Errorf("centerX = %v, want default", cur.CenterX)
	}
	if cur.CenterY != 1 {
		t.Errorf("centerY = %v, want 1", cur.CenterY)
	}
	if cur.Size != MinSize {
		t.Errorf("size = %v, want MinSize", cur.Size)
	}
}

func TestSetTarget(t *testing.T) {
	s := NewDefault()
	s.SetTarget(Delta{CenterX: 0.25, CenterY: -0.5, SizeScale: 0.5})

	tgt := s.Target()
	if tgt.CenterX != -0.25 || tgt.CenterY != -0.5 || tgt.Size != 1.5 {
		t.Errorf("target = %+v", tgt)
	}
	if s.Current().CenterX != -0.5 {
		t.Error("SetTarget must not touch current")
	}

	s.SetTarget(Delta{CenterX: 1})
	if s.Target().Size != 1.5 {
		t.Errorf("zero SizeScale changed size to %v", s.Target().Size)
	}
}

func TestSetTarget_ClampsSize(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
	}{
		{"negative", -1},
		{"nan", math.NaN()},
		{"overflow", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDefault()
			s.SetTarget(Delta{SizeScale: tt.scale})
			if got := s.Target().Size; got != MinSize {
				t.Errorf("size = %v, want MinSize", got)
			}
		})
	}
}

func TestUpdateTarget_KeepsFiniteCenter(t *testing.T) {
	s := NewDefault()
	s.PlaceTarget(math.Inf(1), 0.3, 1)

	tgt := s.Target()
	if tgt.CenterX != -0.5 {
		t.Errorf("centerX = %v, want previous -0.5", tgt.CenterX)
	}
	if tgt.CenterY != 0.3 || tgt.Size != 1 {
		t.Errorf("target = %+v", tgt)
	}
}

func TestSyncTargetToCurrent(t *testing.T) {
	s := NewDefault()
	s.PlaceTarget(1, 1, 0.1)
	s.SyncTargetToCurrent()

	tgt := s.Target()
	if tgt.CenterX != -0.5 || tgt.CenterY != 0 {
		t.Errorf("center = (%v, %v), want current", tgt.CenterX, tgt.CenterY)
	}
	if tgt.Size != 0.1 {
		t.Errorf("size = %v, sync must leave size alone", tgt.Size)
	}
}

func TestSetVelocity_NaNResets(t *testing.T) {
	s := NewDefault()
	s.SetVelocity(Velocity{X: 1, Y: 2})
	s.SetVelocity(Velocity{X: math.NaN(), Y: 2})

	if !s.Velocity().IsZero() {
		t.Errorf("velocity = %+v, want zero", s.Velocity())
	}
}

func TestPassThroughSetters(t *testing.T) {
	s := NewDefault()
	s.SetFractal(Julia)
	s.SetPalette(3)
	s.SetMaxIterations(0)
	s.SetJuliaC(0.3, math.NaN())

	tgt := s.Target()
	if tgt.Fractal != Julia || tgt.PaletteID != 3 {
		t.Errorf("target = %+v", tgt)
	}
	if tgt.MaxIterations != 1 {
		t.Errorf("maxIterations = %d, want floor 1", tgt.MaxIterations)
	}
	if tgt.JuliaC != [2]float64{DefaultJuliaCx, DefaultJuliaCy} {
		t.Errorf("juliaC changed by non-finite input: %v", tgt.JuliaC)
	}
}

func TestReset(t *testing.T) {
	s := New(CameraParams{CenterX: 0.1, CenterY: 0.2, Size: 0.5, MaxIterations: 100})
	s.PlaceTarget(3, 3, 3)
	s.SetCurrent(s.Target())
	s.SetVelocity(Velocity{X: 1})
	s.Reset()

	if s.Current() != s.Home() || s.Target() != s.Home() {
		t.Error("reset did not restore home")
	}
	if !s.Velocity().IsZero() {
		t.Error("reset did not stop momentum")
	}
}

func TestFractalType(t *testing.T) {
	for _, f := range []FractalType{Mandelbrot, Julia, BurningShip, Tricorn} {
		got, err := ParseFractal(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFractal(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseFractal("newton"); err == nil {
		t.Error("expected error for unknown fractal")
	}
	if Tricorn.Next() != Mandelbrot {
		t.Error("Next should wrap around")
	}
}
