package compute

import (
	"math"
	"runtime"

	"github.com/san-kum/fractonaut/internal/uniforms"
	"github.com/san-kum/fractonaut/internal/viewport"
)

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string { return "cpu" }

// Render evaluates one sample per pixel center. Snapshots flagged
// HighPrecision go through the emulated path.
func (c *CPUBackend) Render(s uniforms.Snapshot, width, height int) *Field {
	f := NewField(width, height)
	if width <= 0 || height <= 0 {
		return f
	}

	scale := s.Size.Value() / float64(height)
	maxIter := s.MaxIterations
	if maxIter < 1 {
		maxIter = 1
	}

	var pixel func(x, y int) float64
	if s.HighPrecision {
		pixel = c.emulatedPixel(s, scale, width, height, maxIter)
	} else {
		pixel = c.nativePixel(s, scale, width, height, maxIter)
	}

	ParallelFor(height, 4, c.workers, func(start, end int) {
		for y := start; y < end; y++ {
			row := f.Values[y*width : (y+1)*width]
			for x := range row {
				row[x] = pixel(x, y)
			}
		}
	})
	return f
}

func offsets(x, y, width, height int, scale float64) (float64, float64) {
	dx := (float64(x) + 0.5 - float64(width)/2) * scale
	dy := (float64(height)/2 - float64(y) - 0.5) * scale
	return dx, dy
}

func (c *CPUBackend) nativePixel(s uniforms.Snapshot, scale float64, width, height, maxIter int) func(x, y int) float64 {
	cx, cy := s.Center()
	jr, ji := float64(s.JuliaC[0]), float64(s.JuliaC[1])

	return func(x, y int) float64 {
		dx, dy := offsets(x, y, width, height, scale)
		pr, pi := cx+dx, cy+dy

		zr, zi, kr, ki := 0.0, 0.0, pr, pi
		if s.Fractal == viewport.Julia {
			zr, zi, kr, ki = pr, pi, jr, ji
		}

		for n := 0; n < maxIter; n++ {
			switch s.Fractal {
			case viewport.BurningShip:
				zr, zi = math.Abs(zr), math.Abs(zi)
			case viewport.Tricorn:
				zi = -zi
			}
			zr, zi = zr*zr-zi*zi+kr, 2*zr*zi+ki
			if m := zr*zr + zi*zi; m > Bailout {
				return smooth(n, m)
			}
		}
		return Inside
	}
}

func (c *CPUBackend) emulatedPixel(s uniforms.Snapshot, scale float64, width, height, maxIter int) func(x, y int) float64 {
	cx := ds{s.CenterX.Hi, s.CenterX.Lo}
	cy := ds{s.CenterY.Hi, s.CenterY.Lo}
	jr, ji := ds{s.JuliaC[0], 0}, ds{s.JuliaC[1], 0}
	two := ds{2, 0}

	return func(x, y int) float64 {
		dx, dy := offsets(x, y, width, height, scale)
		pr := cx.add(ds{float32(dx), 0})
		pi := cy.add(ds{float32(dy), 0})

		zr, zi, kr, ki := ds{}, ds{}, pr, pi
		if s.Fractal == viewport.Julia {
			zr, zi, kr, ki = pr, pi, jr, ji
		}

		for n := 0; n < maxIter; n++ {
			switch s.Fractal {
			case viewport.BurningShip:
				zr, zi = zr.abs(), zi.abs()
			case viewport.Tricorn:
				zi = zi.neg()
			}
			zr, zi = zr.mul(zr).sub(zi.mul(zi)).add(kr), two.mul(zr).mul(zi).add(ki)

			hr, hi := float64(zr.hi), float64(zi.hi)
			if m := hr*hr + hi*hi; m > Bailout {
				return smooth(n, m)
			}
		}
		return Inside
	}
}

// smooth is the continuous escape count n + 1 - log2(log|z|).
func smooth(n int, mag2 float64) float64 {
	v := float64(n) + 1 - math.Log2(0.5*math.Log(mag2))
	if v < 0 {
		return 0
	}
	return v
}
