package viz

import (
	"image/color"
	"math"
)

// NumPalettes is the number of palette ids; ids wrap modulo this.
const NumPalettes = 5

// ExtremePalette is the id of the stop-based palette.
const ExtremePalette = 4

// cosine gradients a + b*cos(2*pi*(c*t + d)) per channel
type cosine struct{ a, b, c, d [3]float64 }

var cosinePalettes = [...]cosine{
	{a: [3]float64{0.5, 0.5, 0.5}, b: [3]float64{0.5, 0.5, 0.5}, c: [3]float64{1, 1, 1}, d: [3]float64{0.00, 0.10, 0.20}},
	{a: [3]float64{0.5, 0.5, 0.5}, b: [3]float64{0.5, 0.5, 0.5}, c: [3]float64{1, 1, 1}, d: [3]float64{0.30, 0.20, 0.20}},
	{a: [3]float64{0.5, 0.5, 0.5}, b: [3]float64{0.5, 0.5, 0.5}, c: [3]float64{1, 1, 0.5}, d: [3]float64{0.80, 0.90, 0.30}},
	{a: [3]float64{0.8, 0.5, 0.4}, b: [3]float64{0.2, 0.4, 0.2}, c: [3]float64{2, 1, 1}, d: [3]float64{0.00, 0.25, 0.25}},
}

type stop struct {
	pos     float64
	r, g, b uint8
}

var extremeStops = []stop{
	{0.00, 0, 0, 0}, {0.05, 25, 7, 26}, {0.10, 9, 1, 47},
	{0.15, 4, 4, 73}, {0.20, 0, 7, 100}, {0.25, 12, 44, 138},
	{0.30, 24, 82, 177}, {0.35, 57, 125, 209}, {0.40, 134, 181, 229},
	{0.45, 211, 236, 248}, {0.50, 241, 233, 191}, {0.55, 248, 201, 95},
	{0.60, 255, 170, 0}, {0.65, 240, 126, 13}, {0.70, 204, 71, 10},
	{0.75, 158, 1, 66}, {0.80, 110, 0, 95}, {0.85, 106, 0, 168},
	{0.90, 77, 16, 140}, {0.95, 45, 20, 80}, {1.00, 0, 0, 0},
}

// iterationsPerCycle is how many smooth iterations one palette period spans.
const iterationsPerCycle = 64

// Shade maps a smooth iteration count to a color. Negative values are
// inside the set and draw black.
func Shade(id int, v float64) color.RGBA {
	if v < 0 || math.IsNaN(v) {
		return color.RGBA{A: 255}
	}
	t := v / iterationsPerCycle
	t -= math.Floor(t)

	id = ((id % NumPalettes) + NumPalettes) % NumPalettes
	if id == ExtremePalette {
		return extreme(t)
	}

	p := cosinePalettes[id]
	var ch [3]uint8
	for i := range ch {
		x := p.a[i] + p.b[i]*math.Cos(2*math.Pi*(p.c[i]*t+p.d[i]))
		ch[i] = uint8(math.Round(255 * math.Max(0, math.Min(1, x))))
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}
}

func extreme(t float64) color.RGBA {
	lower, upper := extremeStops[0], extremeStops[len(extremeStops)-1]
	for i := 0; i < len(extremeStops)-1; i++ {
		if t >= extremeStops[i].pos && t <= extremeStops[i+1].pos {
			lower, upper = extremeStops[i], extremeStops[i+1]
			break
		}
	}
	u := (t - lower.pos) / (upper.pos - lower.pos)
	u = u * u * (3 - 2*u)

	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*u))
	}
	return color.RGBA{R: mix(lower.r, upper.r), G: mix(lower.g, upper.g), B: mix(lower.b, upper.b), A: 255}
}
