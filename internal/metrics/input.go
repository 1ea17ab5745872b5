package metrics

import "github.com/san-kum/fractonaut/internal/engine"

// DroppedEvents reports how many input events the controller rejected.
type DroppedEvents struct {
	name    string
	dropped int
	base    int
	started bool
}

func NewDroppedEvents() *DroppedEvents {
	return &DroppedEvents{name: "dropped_events"}
}

func (d *DroppedEvents) Name() string { return d.name }

func (d *DroppedEvents) Observe(info engine.TickInfo) {
	d.dropped = info.Dropped
	d.started = true
}

func (d *DroppedEvents) Value() float64 {
	if !d.started {
		return 0
	}
	return float64(d.dropped - d.base)
}

// Reset counts from the current total onward.
func (d *DroppedEvents) Reset() {
	d.base = d.dropped
}

// ClampedFrames counts ticks whose elapsed time was replaced by one nominal
// frame.
type ClampedFrames struct {
	name    string
	clamped int
}

func NewClampedFrames() *ClampedFrames {
	return &ClampedFrames{name: "clamped_frames"}
}

func (c *ClampedFrames) Name() string { return c.name }

func (c *ClampedFrames) Observe(info engine.TickInfo) {
	if info.Clamped {
		c.clamped++
	}
}

func (c *ClampedFrames) Value() float64 { return float64(c.clamped) }

func (c *ClampedFrames) Reset() { c.clamped = 0 }
