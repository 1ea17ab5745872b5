// Package input translates pointer and scroll events into target camera
// changes.
//
// The Controller is a two-state machine (Idle, Dragging). Dragging pans the
// target and records momentum; scrolling zooms around the cursor so the
// point under it stays put on screen. Events that carry unusable numbers
// are dropped without touching the viewport.
package input

import (
	"fmt"

	"github.com/san-kum/fractonaut/internal/viewport"
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Viewport is the pixel size of the drawing surface an event refers to.
type Viewport struct {
	Width, Height float64
}

func (v Viewport) usable() bool {
	return viewport.IsFinite(v.Width, v.Height) && v.Width > 0 && v.Height > 0
}

// Event is anything an InputSource delivers.
type Event interface {
	fmt.Stringer
	event()
}

type PointerDown struct {
	X, Y     float64
	Button   Button
	Viewport Viewport
}

type PointerMove struct {
	X, Y     float64
	Viewport Viewport
}

type PointerUp struct {
	Button Button
}

// Scroll is a wheel gesture. Positive Notches zoom in.
type Scroll struct {
	Notches  float64
	X, Y     float64
	Viewport Viewport
}

// FocusLost ends any drag in progress.
type FocusLost struct{}

func (PointerDown) event() {}
func (PointerMove) event() {}
func (PointerUp) event()   {}
func (Scroll) event()      {}
func (FocusLost) event()   {}

func (e PointerDown) String() string {
	return fmt.Sprintf("down(%.1f,%.1f btn=%d)", e.X, e.Y, e.Button)
}
func (e PointerMove) String() string { return fmt.Sprintf("move(%.1f,%.1f)", e.X, e.Y) }
func (e PointerUp) String() string   { return fmt.Sprintf("up(btn=%d)", e.Button) }
func (e Scroll) String() string {
	return fmt.Sprintf("scroll(%+.2f at %.1f,%.1f)", e.Notches, e.X, e.Y)
}
func (FocusLost) String() string { return "focus-lost" }
