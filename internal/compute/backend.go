package compute

import "github.com/san-kum/fractonaut/internal/uniforms"

// Bailout is the squared escape radius. A large radius keeps the smooth
// iteration count continuous.
const Bailout = 256 * 256

// Inside marks a pixel that never escaped.
const Inside = -1.0

// Field is a grid of smooth iteration counts, row-major, row 0 at the top.
type Field struct {
	Width, Height int
	Values        []float64
}

func NewField(w, h int) *Field {
	return &Field{Width: w, Height: h, Values: make([]float64, w*h)}
}

func (f *Field) At(x, y int) float64 { return f.Values[y*f.Width+x] }

// Backend evaluates a snapshot into a field of escape counts.
type Backend interface {
	Name() string
	Render(s uniforms.Snapshot, width, height int) *Field
}
