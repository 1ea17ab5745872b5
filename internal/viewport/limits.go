package viewport

import "math"

// Limits is the soft zoom-out ceiling.
//
// A size past MaxSize is pulled back with
//
//	resisted = MaxSize + excess / (1 + excess*Stiffness)
//
// so it can never exceed MaxSize + 1/Stiffness, and each reapplication
// shrinks the excess further. With Recenter set, the center is pulled
// toward Home by the same ratio the excess shrank.
type Limits struct {
	MaxSize   float64
	Stiffness float64
	Recenter  bool
	HomeX     float64
	HomeY     float64
}

// Ceiling is the largest size Resist can return.
func (l Limits) Ceiling() float64 {
	if l.Stiffness <= 0 {
		return l.MaxSize
	}
	return l.MaxSize + 1/l.Stiffness
}

// Resist applies the resistance curve to size. ratio is resisted excess
// over input excess, 1 when the limit is not engaged.
func (l Limits) Resist(size float64) (resisted, ratio float64) {
	if l.MaxSize <= 0 || !(size > l.MaxSize) {
		return size, 1
	}
	if math.IsInf(size, 1) || l.Stiffness <= 0 {
		return l.Ceiling(), 0
	}
	excess := size - l.MaxSize
	pulled := excess / (1 + excess*l.Stiffness)
	return l.MaxSize + pulled, pulled / excess
}

// PullCenter moves c's center toward home by ratio when recentering is on.
func (l Limits) PullCenter(c *CameraParams, ratio float64) {
	if !l.Recenter || ratio >= 1 {
		return
	}
	c.CenterX = l.HomeX + (c.CenterX-l.HomeX)*ratio
	c.CenterY = l.HomeY + (c.CenterY-l.HomeY)*ratio
}

// Apply resists c's size and recenters it. It reports whether the
// ceiling was engaged.
func (l Limits) Apply(c *CameraParams) bool {
	size, ratio := l.Resist(c.Size)
	c.Size = size
	l.PullCenter(c, ratio)
	return ratio < 1
}
