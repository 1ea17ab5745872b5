package engine

import "github.com/san-kum/fractonaut/internal/viewport"

// TickInfo is what observers see after each integration step.
type TickInfo struct {
	Tick     int
	Time     float64 // sum of sanitized dt
	Dt       float64
	Clamped  bool
	Current  viewport.CameraParams
	Target   viewport.CameraParams
	Velocity viewport.Velocity
	Dragging bool
	Dropped  int
}

type Observer interface {
	OnTick(info TickInfo)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(TickInfo)

func (f ObserverFunc) OnTick(info TickInfo) { f(info) }
