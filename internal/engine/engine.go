package engine

import (
	"github.com/san-kum/fractonaut/internal/input"
	"github.com/san-kum/fractonaut/internal/physics"
	"github.com/san-kum/fractonaut/internal/uniforms"
	"github.com/san-kum/fractonaut/internal/viewport"
)

type Engine struct {
	cfg        Config
	state      *viewport.State
	input      *input.Controller
	integrator *physics.Integrator
	vp         input.Viewport
	observers  []Observer

	ticks   int
	elapsed float64
}

func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Input.Limits = cfg.Limits
	cfg.Physics.Limits = cfg.Limits

	state := viewport.New(cfg.Initial)
	return &Engine{
		cfg:        cfg,
		state:      state,
		input:      input.New(state, cfg.Input),
		integrator: physics.New(cfg.Physics),
		vp:         cfg.Viewport,
		observers:  make([]Observer, 0),
	}, nil
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Current() viewport.CameraParams { return e.state.Current() }
func (e *Engine) Target() viewport.CameraParams  { return e.state.Target() }
func (e *Engine) Velocity() viewport.Velocity    { return e.state.Velocity() }
func (e *Engine) Mode() input.Mode               { return e.input.Mode() }
func (e *Engine) Dropped() int                   { return e.input.Dropped() }
func (e *Engine) Ticks() int                     { return e.ticks }
func (e *Engine) Viewport() input.Viewport       { return e.vp }

// Resize records the logical surface size used for snapshots.
func (e *Engine) Resize(width, height float64) {
	if viewport.IsFinite(width, height) && width > 0 && height > 0 {
		e.vp = input.Viewport{Width: width, Height: height}
	}
}

// Handle applies one input event. Its effect is visible to the next Tick.
func (e *Engine) Handle(ev input.Event) bool {
	switch v := ev.(type) {
	case input.PointerDown:
		e.Resize(v.Viewport.Width, v.Viewport.Height)
	case input.PointerMove:
		e.Resize(v.Viewport.Width, v.Viewport.Height)
	case input.Scroll:
		e.Resize(v.Viewport.Width, v.Viewport.Height)
	}

	dropped := e.input.Dropped()
	ok := e.input.Handle(ev)
	if e.input.Dropped() > dropped {
		Logger().Debug("input event dropped", "event", ev.String())
	}
	return ok
}

// Tick advances the viewport by elapsed seconds of wall time.
func (e *Engine) Tick(elapsed float64) {
	dt, clamped := physics.FrameDelta(elapsed, e.cfg.Physics.MaxFrameGap)
	if clamped {
		Logger().Debug("frame gap clamped", "elapsed", elapsed, "dt", dt)
	}

	e.integrator.Step(e.state, dt, e.input.Dragging())
	e.ticks++
	e.elapsed += dt

	if len(e.observers) == 0 {
		return
	}
	info := TickInfo{
		Tick:     e.ticks,
		Time:     e.elapsed,
		Dt:       dt,
		Clamped:  clamped,
		Current:  e.state.Current(),
		Target:   e.state.Target(),
		Velocity: e.state.Velocity(),
		Dragging: e.input.Dragging(),
		Dropped:  e.input.Dropped(),
	}
	for _, o := range e.observers {
		o.OnTick(info)
	}
}

// Snapshot projects the rendered camera for the renderer.
func (e *Engine) Snapshot() uniforms.Snapshot {
	return uniforms.Build(e.state.Current(), e.vp.Width, e.vp.Height, e.cfg.Uniforms)
}

// ExportCoordinates dumps the rendered center and size at full precision.
func (e *Engine) ExportCoordinates() string {
	return viewport.ExportCoordinates(e.state.Current())
}

// Reset returns both cameras to the initial view and stops any glide.
func (e *Engine) Reset() { e.Handle(input.ResetView{}) }
