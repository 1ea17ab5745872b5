// Package metrics summarizes engine runs tick by tick.
package metrics

import (
	"sort"

	"github.com/san-kum/fractonaut/internal/engine"
)

type Metric interface {
	Name() string
	Observe(info engine.TickInfo)
	Value() float64
	Reset()
}

// Set fans ticks out to several metrics. It is an engine.Observer.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Standard is the set every stored run records.
func Standard() *Set {
	return NewSet(
		NewSettleTime(),
		NewPeakSpeed(),
		NewZoomDepth(),
		NewDroppedEvents(),
		NewClampedFrames(),
	)
}

func (s *Set) OnTick(info engine.TickInfo) {
	for _, m := range s.metrics {
		m.Observe(info)
	}
}

func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Names() []string {
	names := make([]string, 0, len(s.metrics))
	for _, m := range s.metrics {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}
