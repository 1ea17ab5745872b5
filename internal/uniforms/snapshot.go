// Package uniforms projects the rendered camera into the flat parameter
// block a renderer binds once per paint.
package uniforms

import (
	"github.com/san-kum/fractonaut/internal/precision"
	"github.com/san-kum/fractonaut/internal/viewport"
)

// Policy is the per-deployment description of the evaluator.
//
// HighPrecision in a Snapshot is exactly !NativeDoubles: an evaluator
// without float64 support always gets the hi/lo pairs, one with native
// doubles never needs them.
type Policy struct {
	NativeDoubles bool
	// PixelRatio converts logical to physical pixels; zero means 1.
	PixelRatio float64
}

// Snapshot is a read-only copy of everything the renderer needs.
type Snapshot struct {
	Resolution    [2]float32
	CenterX       precision.Split
	CenterY       precision.Split
	Size          precision.Split
	MaxIterations int
	PaletteID     int
	Fractal       viewport.FractalType
	JuliaC        [2]float32
	HighPrecision bool
}

// Build assembles a Snapshot of cam drawn on a width x height logical surface.
func Build(cam viewport.CameraParams, width, height float64, p Policy) Snapshot {
	ratio := p.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	cx, cy := precision.SplitPair(cam.CenterX, cam.CenterY)
	return Snapshot{
		Resolution:    [2]float32{float32(width * ratio), float32(height * ratio)},
		CenterX:       cx,
		CenterY:       cy,
		Size:          precision.SplitDouble(cam.Size),
		MaxIterations: cam.MaxIterations,
		PaletteID:     cam.PaletteID,
		Fractal:       cam.Fractal,
		JuliaC:        [2]float32{float32(cam.JuliaC[0]), float32(cam.JuliaC[1])},
		HighPrecision: !p.NativeDoubles,
	}
}

// Center reconstructs the float64 center carried by the snapshot.
func (s Snapshot) Center() (float64, float64) {
	return s.CenterX.Value(), s.CenterY.Value()
}

// Named returns the snapshot keyed by shader uniform name.
func (s Snapshot) Named() map[string]any {
	return map[string]any{
		"u_resolution":      s.Resolution,
		"u_zoomCenter_x_hi": s.CenterX.Hi,
		"u_zoomCenter_x_lo": s.CenterX.Lo,
		"u_zoomCenter_y_hi": s.CenterY.Hi,
		"u_zoomCenter_y_lo": s.CenterY.Lo,
		"u_zoomSize_hi":     s.Size.Hi,
		"u_zoomSize_lo":     s.Size.Lo,
		"u_maxIterations":   s.MaxIterations,
		"u_paletteId":       s.PaletteID,
		"u_fractalType":     int(s.Fractal),
		"u_juliaC":          s.JuliaC,
		"u_highPrecision":   s.HighPrecision,
	}
}
