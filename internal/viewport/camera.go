package viewport

import (
	"fmt"
	"math"
)

// FractalType selects the escape-time family evaluated by the renderer.
type FractalType int

const (
	Mandelbrot FractalType = iota
	Julia
	BurningShip
	Tricorn
)

var fractalNames = map[FractalType]string{
	Mandelbrot:  "mandelbrot",
	Julia:       "julia",
	BurningShip: "burning_ship",
	Tricorn:     "tricorn",
}

func (f FractalType) String() string {
	if name, ok := fractalNames[f]; ok {
		return name
	}
	return fmt.Sprintf("fractal(%d)", int(f))
}

// ParseFractal maps a name back to its FractalType.
func ParseFractal(name string) (FractalType, error) {
	for f, n := range fractalNames {
		if n == name {
			return f, nil
		}
	}
	return Mandelbrot, fmt.Errorf("%w: %q", ErrUnknownFractal, name)
}

// Next cycles through the known fractal families.
func (f FractalType) Next() FractalType {
	return (f + 1) % FractalType(len(fractalNames))
}

const (
	DefaultCenterX       = -0.5
	DefaultCenterY       = 0.0
	DefaultSize          = 3.0
	DefaultMaxIterations = 500
	DefaultJuliaCx       = -0.7269
	DefaultJuliaCy       = 0.1889

	// MinSize is the floor for any view size. It sits well inside the
	// float32 normal range, so the size half of a snapshot never rounds
	// to zero.
	MinSize = 1e-30
)

// CameraParams describes one camera: what part of the plane is visible and
// the pass-through parameters the renderer evaluates it with.
type CameraParams struct {
	CenterX       float64
	CenterY       float64
	Size          float64 // half-extent along the shorter screen axis
	MaxIterations int
	PaletteID     int
	Fractal       FractalType
	JuliaC        [2]float64
}

func DefaultCamera() CameraParams {
	return CameraParams{
		CenterX:       DefaultCenterX,
		CenterY:       DefaultCenterY,
		Size:          DefaultSize,
		MaxIterations: DefaultMaxIterations,
		Fractal:       Mandelbrot,
		JuliaC:        [2]float64{DefaultJuliaCx, DefaultJuliaCy},
	}
}

// IsValid reports whether the camera can be rendered as is.
func (c CameraParams) IsValid() bool {
	return isFinite(c.CenterX) && isFinite(c.CenterY) &&
		isFinite(c.Size) && c.Size > 0 && c.MaxIterations >= 1
}

// ClampSize returns a usable view size for s.
func ClampSize(s float64) float64 {
	if !isFinite(s) || s < MinSize {
		return MinSize
	}
	return s
}

// sanitize repairs c in place, falling back to prev for broken centers.
func (c *CameraParams) sanitize(prev CameraParams) {
	if !isFinite(c.CenterX) {
		c.CenterX = prev.CenterX
	}
	if !isFinite(c.CenterY) {
		c.CenterY = prev.CenterY
	}
	c.Size = ClampSize(c.Size)
	if c.MaxIterations < 1 {
		c.MaxIterations = 1
	}
}

// Velocity is pan momentum in fractal units per nominal 1/60 s frame.
type Velocity struct {
	X, Y float64
}

// Manhattan returns |X| + |Y|.
func (v Velocity) Manhattan() float64 {
	return math.Abs(v.X) + math.Abs(v.Y)
}

func (v Velocity) IsZero() bool { return v.X == 0 && v.Y == 0 }

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsFinite reports whether all of vals are neither NaN nor Inf.
func IsFinite(vals ...float64) bool {
	for _, v := range vals {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
