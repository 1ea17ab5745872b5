package input

import (
	"math"

	"github.com/san-kum/fractonaut/internal/viewport"
)

type Mode int

const (
	Idle Mode = iota
	Dragging
)

func (m Mode) String() string {
	if m == Dragging {
		return "dragging"
	}
	return "idle"
}

// Config tunes how gestures map to camera changes.
//
// Zoom policy: each scroll notch multiplies the target size by
// ZoomInFactor (notches > 0) or ZoomOutFactor (notches < 0). Fractional
// notches from smooth-scrolling devices raise the factor to that power, so
// two half notches equal one full notch.
type Config struct {
	ZoomInFactor  float64
	ZoomOutFactor float64
	MomentumGain  float64
	Limits        viewport.Limits
}

func DefaultConfig() Config {
	return Config{
		ZoomInFactor:  0.92,
		ZoomOutFactor: 1.08,
		MomentumGain:  1.0,
		Limits: viewport.Limits{
			MaxSize:   4.0,
			Stiffness: 1.0,
			HomeX:     viewport.DefaultCenterX,
			HomeY:     viewport.DefaultCenterY,
		},
	}
}

// Controller owns the interaction state and is the only writer of the
// target camera besides the physics integrator.
type Controller struct {
	cfg   Config
	state *viewport.State

	mode         Mode
	lastX, lastY float64
	dropped      int
}

func New(state *viewport.State, cfg Config) *Controller {
	return &Controller{cfg: cfg, state: state}
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Dragging() bool { return c.mode == Dragging }

// Dropped counts events rejected for non-finite or degenerate input.
func (c *Controller) Dropped() int { return c.dropped }

// Handle applies ev to the target camera. It reports whether ev changed
// any state; rejected events leave everything untouched.
func (c *Controller) Handle(ev Event) bool {
	switch e := ev.(type) {
	case PointerDown:
		return c.press(e)
	case PointerMove:
		return c.move(e)
	case PointerUp:
		return c.release(e.Button)
	case Scroll:
		return c.scroll(e)
	case FocusLost:
		return c.release(ButtonLeft)
	}
	return c.command(ev)
}

func (c *Controller) drop() bool {
	c.dropped++
	return false
}

func (c *Controller) press(e PointerDown) bool {
	if e.Button != ButtonLeft {
		return false
	}
	if !viewport.IsFinite(e.X, e.Y) {
		return c.drop()
	}
	c.mode = Dragging
	c.lastX, c.lastY = e.X, e.Y
	c.state.SetVelocity(viewport.Velocity{})
	c.state.SyncTargetToCurrent()
	return true
}

func (c *Controller) move(e PointerMove) bool {
	if c.mode != Dragging {
		return false
	}
	if !viewport.IsFinite(e.X, e.Y) || !e.Viewport.usable() {
		return c.drop()
	}

	dx := e.X - c.lastX
	dy := e.Y - c.lastY
	scale := c.state.Target().Size / e.Viewport.Height

	panX := -dx * scale
	panY := dy * scale
	c.state.SetTarget(viewport.Delta{CenterX: panX, CenterY: panY})
	c.state.SetVelocity(viewport.Velocity{
		X: panX * c.cfg.MomentumGain,
		Y: panY * c.cfg.MomentumGain,
	})

	c.lastX, c.lastY = e.X, e.Y
	return true
}

func (c *Controller) release(b Button) bool {
	if b != ButtonLeft || c.mode != Dragging {
		return false
	}
	c.mode = Idle
	return true
}

// ZoomFactor is the size multiplier for a scroll of n notches.
func (c *Controller) ZoomFactor(n float64) float64 {
	if n > 0 {
		return math.Pow(c.cfg.ZoomInFactor, n)
	}
	return math.Pow(c.cfg.ZoomOutFactor, -n)
}

func (c *Controller) scroll(e Scroll) bool {
	if !viewport.IsFinite(e.Notches, e.X, e.Y) || e.Notches == 0 || !e.Viewport.usable() {
		return c.drop()
	}

	t := c.state.Target()
	vp := e.Viewport
	offX := e.X - vp.Width/2
	offY := e.Y - vp.Height/2

	// Focal point under the cursor, before the zoom.
	fx, fy := PixelToFractal(t, vp, e.X, e.Y)

	size := viewport.ClampSize(t.Size * c.ZoomFactor(e.Notches))
	size, ratio := c.cfg.Limits.Resist(size)
	if e.Notches < 0 && size < t.Size {
		// Past the curve's fixed point resisting would shrink the view.
		size = t.Size
	}
	scale := size / vp.Height

	t.Size = size
	t.CenterX = fx - offX*scale
	t.CenterY = fy + offY*scale
	c.cfg.Limits.PullCenter(&t, ratio)

	c.state.UpdateTarget(t)
	return true
}
