// Package scenario replays scripted input against an engine and records
// the resulting camera trajectory.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fractonaut/internal/engine"
	"github.com/san-kum/fractonaut/internal/input"
	"github.com/san-kum/fractonaut/internal/physics"
	"github.com/san-kum/fractonaut/internal/viewport"
)

var (
	ErrUnknownStep = errors.New("unknown scenario step")
	ErrBadStep     = errors.New("invalid scenario step")
)

// DefaultSettleTicks bounds a settle step: ten seconds at 60 Hz.
const DefaultSettleTicks = 600

// Scenario defines a scripted interaction sequence
type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Preset      string       `yaml:"preset,omitempty"`
	Viewport    ViewportSpec `yaml:"viewport"`
	Steps       []Step       `yaml:"steps"`
}

type ViewportSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Step is one action. Which fields matter depends on Action:
//
//	press, move       x, y (press also button)
//	release           button
//	scroll            notches, optional x/y (defaults to the viewport center)
//	focus_lost, reset no fields
//	tick              count (default 1), dt seconds (default one nominal frame)
//	settle            count caps the ticks spent waiting for rest
//	fractal           name
//	palette           value
//	iterations        value
//	julia             c: [re, im]
//	resize            width, height
type Step struct {
	Action  string    `yaml:"action"`
	X       *float64  `yaml:"x,omitempty"`
	Y       *float64  `yaml:"y,omitempty"`
	Button  string    `yaml:"button,omitempty"`
	Notches float64   `yaml:"notches,omitempty"`
	Count   int       `yaml:"count,omitempty"`
	Dt      float64   `yaml:"dt,omitempty"`
	Name    string    `yaml:"name,omitempty"`
	Value   int       `yaml:"value,omitempty"`
	C       []float64 `yaml:"c,omitempty,flow"`
	Width   float64   `yaml:"width,omitempty"`
	Height  float64   `yaml:"height,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	for i, st := range sc.Steps {
		if _, ok := actions[st.Action]; !ok {
			return nil, fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownStep, st.Action)
		}
	}
	return &sc, nil
}

// Sample is the engine state after one tick.
type Sample struct {
	Tick          int
	Time          float64
	CenterX       float64
	CenterY       float64
	Size          float64
	TargetX       float64
	TargetY       float64
	TargetSize    float64
	VelocityX     float64
	VelocityY     float64
	MaxIterations int
	Dragging      bool
}

// Trace is the outcome of a scenario run.
type Trace struct {
	Scenario    string
	Samples     []Sample
	Final       viewport.CameraParams
	Coordinates string
	Dropped     int
	Metrics     map[string]float64
}

// Recorder is an engine.Observer that turns ticks into Samples.
type Recorder struct {
	Samples []Sample
}

func (r *Recorder) OnTick(info engine.TickInfo) {
	r.Samples = append(r.Samples, Sample{
		Tick:          info.Tick,
		Time:          info.Time,
		CenterX:       info.Current.CenterX,
		CenterY:       info.Current.CenterY,
		Size:          info.Current.Size,
		TargetX:       info.Target.CenterX,
		TargetY:       info.Target.CenterY,
		TargetSize:    info.Target.Size,
		VelocityX:     info.Velocity.X,
		VelocityY:     info.Velocity.Y,
		MaxIterations: info.Current.MaxIterations,
		Dragging:      info.Dragging,
	})
}

// RunScenario executes all steps against eng. Observers already attached
// to eng see every tick the scenario produces.
func RunScenario(ctx context.Context, sc *Scenario, eng *engine.Engine) (*Trace, error) {
	if sc.Viewport.Width > 0 && sc.Viewport.Height > 0 {
		eng.Resize(sc.Viewport.Width, sc.Viewport.Height)
	}

	rec := &Recorder{}
	eng.AddObserver(rec)

	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		engine.Logger().Debug("scenario step", "scenario", sc.Name, "step", i+1, "action", st.Action)

		run, ok := actions[st.Action]
		if !ok {
			return nil, fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownStep, st.Action)
		}
		if err := run(ctx, eng, st); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
	}

	return &Trace{
		Scenario:    sc.Name,
		Samples:     rec.Samples,
		Final:       eng.Current(),
		Coordinates: eng.ExportCoordinates(),
		Dropped:     eng.Dropped(),
	}, nil
}

type action func(ctx context.Context, eng *engine.Engine, st Step) error

var actions = map[string]action{
	"press": func(_ context.Context, eng *engine.Engine, st Step) error {
		x, y, err := point(eng, st, false)
		if err != nil {
			return err
		}
		b, err := button(st.Button)
		if err != nil {
			return err
		}
		eng.Handle(input.PointerDown{X: x, Y: y, Button: b, Viewport: eng.Viewport()})
		return nil
	},
	"move": func(_ context.Context, eng *engine.Engine, st Step) error {
		x, y, err := point(eng, st, false)
		if err != nil {
			return err
		}
		eng.Handle(input.PointerMove{X: x, Y: y, Viewport: eng.Viewport()})
		return nil
	},
	"release": func(_ context.Context, eng *engine.Engine, st Step) error {
		b, err := button(st.Button)
		if err != nil {
			return err
		}
		eng.Handle(input.PointerUp{Button: b})
		return nil
	},
	"scroll": func(_ context.Context, eng *engine.Engine, st Step) error {
		x, y, err := point(eng, st, true)
		if err != nil {
			return err
		}
		eng.Handle(input.Scroll{Notches: st.Notches, X: x, Y: y, Viewport: eng.Viewport()})
		return nil
	},
	"focus_lost": func(_ context.Context, eng *engine.Engine, _ Step) error {
		eng.Handle(input.FocusLost{})
		return nil
	},
	"reset": func(_ context.Context, eng *engine.Engine, _ Step) error {
		eng.Reset()
		return nil
	},
	"tick": func(ctx context.Context, eng *engine.Engine, st Step) error {
		n := st.Count
		if n <= 0 {
			n = 1
		}
		dt := st.Dt
		if dt == 0 {
			dt = physics.NominalFrame
		}
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			eng.Tick(dt)
		}
		return nil
	},
	"settle": func(ctx context.Context, eng *engine.Engine, st Step) error {
		limit := st.Count
		if limit <= 0 {
			limit = DefaultSettleTicks
		}
		for i := 0; i < limit && !AtRest(eng); i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			eng.Tick(physics.NominalFrame)
		}
		return nil
	},
	"fractal": func(_ context.Context, eng *engine.Engine, st Step) error {
		f, err := viewport.ParseFractal(st.Name)
		if err != nil {
			return err
		}
		eng.Handle(input.SetFractal{Fractal: f})
		return nil
	},
	"palette": func(_ context.Context, eng *engine.Engine, st Step) error {
		eng.Handle(input.SetPalette{ID: st.Value})
		return nil
	},
	"iterations": func(_ context.Context, eng *engine.Engine, st Step) error {
		eng.Handle(input.SetIterations{N: st.Value})
		return nil
	},
	"julia": func(_ context.Context, eng *engine.Engine, st Step) error {
		if len(st.C) != 2 {
			return fmt.Errorf("%w: julia needs c: [re, im]", ErrBadStep)
		}
		eng.Handle(input.SetJuliaC{X: st.C[0], Y: st.C[1]})
		return nil
	},
	"resize": func(_ context.Context, eng *engine.Engine, st Step) error {
		if !(st.Width > 0 && st.Height > 0) {
			return fmt.Errorf("%w: resize needs positive width and height", ErrBadStep)
		}
		eng.Resize(st.Width, st.Height)
		return nil
	},
}

// AtRest reports whether the rendered camera has reached the target and no
// momentum remains.
func AtRest(eng *engine.Engine) bool {
	cur, tgt := eng.Current(), eng.Target()
	return eng.Velocity().IsZero() &&
		cur.CenterX == tgt.CenterX &&
		cur.CenterY == tgt.CenterY &&
		cur.Size == tgt.Size
}

func point(eng *engine.Engine, st Step, centerDefault bool) (float64, float64, error) {
	if st.X == nil || st.Y == nil {
		if !centerDefault {
			return 0, 0, fmt.Errorf("%w: x and y are required", ErrBadStep)
		}
		vp := eng.Viewport()
		return vp.Width / 2, vp.Height / 2, nil
	}
	return *st.X, *st.Y, nil
}

func button(name string) (input.Button, error) {
	switch name {
	case "", "left":
		return input.ButtonLeft, nil
	case "right":
		return input.ButtonRight, nil
	case "middle":
		return input.ButtonMiddle, nil
	}
	return input.ButtonLeft, fmt.Errorf("%w: button %q", ErrBadStep, name)
}
