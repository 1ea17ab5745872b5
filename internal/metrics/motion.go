package metrics

import (
	"math"

	"github.com/san-kum/fractonaut/internal/engine"
)

// SettleTime is the simulated time of the last tick on which the view was
// still moving: momentum left, or current short of target.
type SettleTime struct {
	name string
	last float64
}

func NewSettleTime() *SettleTime {
	return &SettleTime{name: "settle_time"}
}

func (s *SettleTime) Name() string { return s.name }

func (s *SettleTime) Observe(info engine.TickInfo) {
	cur, tgt := info.Current, info.Target
	if !info.Velocity.IsZero() || cur.CenterX != tgt.CenterX || cur.CenterY != tgt.CenterY || cur.Size != tgt.Size {
		s.last = info.Time
	}
}

func (s *SettleTime) Value() float64 { return s.last }

func (s *SettleTime) Reset() { s.last = 0 }

// PeakSpeed is the fastest rendered pan, in view heights per second.
type PeakSpeed struct {
	name    string
	peak    float64
	prevX   float64
	prevY   float64
	samples int
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(info engine.TickInfo) {
	cur := info.Current
	if p.samples > 0 && info.Dt > 0 {
		d := math.Hypot(cur.CenterX-p.prevX, cur.CenterY-p.prevY)
		p.peak = math.Max(p.peak, d/cur.Size/info.Dt)
	}
	p.prevX, p.prevY = cur.CenterX, cur.CenterY
	p.samples++
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() {
	p.peak = 0
	p.samples = 0
}

// ZoomDepth is how many decades the rendered size went below the size seen
// on the first tick.
type ZoomDepth struct {
	name     string
	initial  float64
	smallest float64
}

func NewZoomDepth() *ZoomDepth {
	return &ZoomDepth{name: "zoom_decades"}
}

func (z *ZoomDepth) Name() string { return z.name }

func (z *ZoomDepth) Observe(info engine.TickInfo) {
	size := info.Current.Size
	if z.initial == 0 {
		z.initial, z.smallest = size, size
		return
	}
	z.smallest = math.Min(z.smallest, size)
}

func (z *ZoomDepth) Value() float64 {
	if z.initial == 0 {
		return 0
	}
	return math.Log10(z.initial / z.smallest)
}

func (z *ZoomDepth) Reset() {
	z.initial = 0
	z.smallest = 0
}
