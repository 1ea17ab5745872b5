package input

import (
	"fmt"

	"github.com/san-kum/fractonaut/internal/viewport"
)

// Command events change the pass-through camera parameters. They reach the
// target like pointer events do, so the Controller stays the single input
// writer of the viewport.

type SetFractal struct{ Fractal viewport.FractalType }

type SetPalette struct{ ID int }

type SetIterations struct{ N int }

type SetJuliaC struct{ X, Y float64 }

// ResetView returns to the starting camera and stops momentum.
type ResetView struct{}

func (SetFractal) event()    {}
func (SetPalette) event()    {}
func (SetIterations) event() {}
func (SetJuliaC) event()     {}
func (ResetView) event()     {}

func (e SetFractal) String() string    { return "fractal(" + e.Fractal.String() + ")" }
func (e SetPalette) String() string    { return fmt.Sprintf("palette(%d)", e.ID) }
func (e SetIterations) String() string { return fmt.Sprintf("iterations(%d)", e.N) }
func (e SetJuliaC) String() string     { return fmt.Sprintf("julia-c(%g,%g)", e.X, e.Y) }
func (ResetView) String() string       { return "reset" }

func (c *Controller) command(ev Event) bool {
	switch e := ev.(type) {
	case SetFractal:
		c.state.SetFractal(e.Fractal)
	case SetPalette:
		c.state.SetPalette(e.ID)
	case SetIterations:
		if e.N < 1 {
			return c.drop()
		}
		c.state.SetMaxIterations(e.N)
	case SetJuliaC:
		if !viewport.IsFinite(e.X, e.Y) {
			return c.drop()
		}
		c.state.SetJuliaC(e.X, e.Y)
	case ResetView:
		c.mode = Idle
		c.state.Reset()
	default:
		return false
	}
	return true
}
