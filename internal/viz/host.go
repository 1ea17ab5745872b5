package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fractonaut/internal/compute"
	"github.com/san-kum/fractonaut/internal/engine"
	"github.com/san-kum/fractonaut/internal/input"
	"github.com/san-kum/fractonaut/internal/physics"
	"github.com/san-kum/fractonaut/internal/viewport"
)

const (
	frameInterval   = time.Second / 60
	historyCapacity = 240
	statusLines     = 1
	minCols         = 8
	minRows         = 4
)

type TickMsg time.Time

type Options struct {
	Backend   compute.Backend
	Clipboard Clipboard // nil disables copy
	Theme     string
	GIFPath   string
}

// Host is the Bubble Tea model around one engine.
type Host struct {
	eng     *engine.Engine
	backend compute.Backend
	clip    Clipboard
	canvas  *Canvas
	theme   Theme
	styles  styles
	gifPath string

	width, height int
	last          time.Time
	fps           float64
	history       []float64
	status        string
	recorder      *Recorder
	showHelp      bool
}

func NewHost(eng *engine.Engine, opts Options) Host {
	backend := opts.Backend
	if backend == nil {
		backend = compute.NewCPUBackend()
	}
	gifPath := opts.GIFPath
	if gifPath == "" {
		gifPath = "fractonaut.gif"
	}
	theme := GetTheme(opts.Theme)
	h := Host{
		eng:     eng,
		backend: backend,
		clip:    opts.Clipboard,
		theme:   theme,
		styles:  newStyles(theme),
		gifPath: gifPath,
		history: make([]float64, 0, historyCapacity),
	}
	h.resize(80, 24)
	return h
}

// Run starts the terminal program and blocks until it quits or ctx ends.
func Run(ctx context.Context, eng *engine.Engine, opts Options) error {
	p := tea.NewProgram(NewHost(eng, opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}

func (h Host) Init() tea.Cmd {
	return nextFrame()
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (h Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		h.mouse(msg)
	case tea.BlurMsg:
		h.eng.Handle(input.FocusLost{})
	case tea.KeyMsg:
		return h.key(msg)
	case TickMsg:
		h.frame(time.Time(msg))
		return h, nextFrame()
	}
	return h, nil
}

func (h *Host) resize(w, ht int) {
	h.width, h.height = w, ht
	cols := w - HUDWidth
	if cols < minCols {
		cols = minCols
	}
	rows := ht - statusLines
	if rows < minRows {
		rows = minRows
	}
	h.canvas = NewCanvas(cols, rows)
	pw, ph := h.canvas.PixelSize()
	h.eng.Resize(float64(pw), float64(ph))
}

func (h *Host) viewport() input.Viewport {
	pw, ph := h.canvas.PixelSize()
	return input.Viewport{Width: float64(pw), Height: float64(ph)}
}

// pixel maps a terminal cell to the pixel at its center. Each cell is one
// pixel wide and two tall.
func (h *Host) pixel(col, row int) (float64, float64, bool) {
	inside := col >= 0 && row >= 0 && col < h.canvas.Width && row < h.canvas.Height
	return float64(col) + 0.5, float64(row)*2 + 1, inside
}

func (h *Host) mouse(msg tea.MouseMsg) {
	x, y, inside := h.pixel(msg.X, msg.Y)
	vp := h.viewport()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if inside {
				h.eng.Handle(input.Scroll{Notches: 1, X: x, Y: y, Viewport: vp})
			}
		case tea.MouseButtonWheelDown:
			if inside {
				h.eng.Handle(input.Scroll{Notches: -1, X: x, Y: y, Viewport: vp})
			}
		case tea.MouseButtonLeft, tea.MouseButtonRight, tea.MouseButtonMiddle:
			if inside {
				h.eng.Handle(input.PointerDown{X: x, Y: y, Button: button(msg.Button), Viewport: vp})
			}
		}
	case tea.MouseActionMotion:
		h.eng.Handle(input.PointerMove{X: x, Y: y, Viewport: vp})
	case tea.MouseActionRelease:
		// Terminals do not always say which button was released.
		h.eng.Handle(input.PointerUp{Button: input.ButtonLeft})
	}
}

func button(b tea.MouseButton) input.Button {
	switch b {
	case tea.MouseButtonRight:
		return input.ButtonRight
	case tea.MouseButtonMiddle:
		return input.ButtonMiddle
	}
	return input.ButtonLeft
}

func (h Host) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := h.eng.Target()
	vp := h.viewport()

	switch msg.String() {
	case "q", "ctrl+c":
		h.stopRecording()
		return h, tea.Quit
	case "i":
		h.eng.Handle(input.Scroll{Notches: 1, X: vp.Width / 2, Y: vp.Height / 2, Viewport: vp})
	case "o":
		h.eng.Handle(input.Scroll{Notches: -1, X: vp.Width / 2, Y: vp.Height / 2, Viewport: vp})
	case "r":
		h.eng.Reset()
		h.status = "view reset"
	case "m":
		h.eng.Handle(input.SetFractal{Fractal: cur.Fractal.Next()})
	case "]":
		h.eng.Handle(input.SetPalette{ID: (cur.PaletteID + 1) % NumPalettes})
	case "[":
		h.eng.Handle(input.SetPalette{ID: (cur.PaletteID + NumPalettes - 1) % NumPalettes})
	case "+", "=":
		h.eng.Handle(input.SetIterations{N: max(cur.MaxIterations+1, cur.MaxIterations*5/4)})
	case "-", "_":
		h.eng.Handle(input.SetIterations{N: max(1, cur.MaxIterations*4/5)})
	case "c":
		h.copyCoordinates()
	case "p":
		h.logCoordinates()
	case "g":
		if h.recorder != nil {
			h.stopRecording()
		} else {
			h.recorder = NewRecorder(h.eng.Current().PaletteID)
			h.status = "recording"
		}
	case "t":
		h.theme = NextTheme(h.theme)
		h.styles = newStyles(h.theme)
	case "?":
		h.showHelp = !h.showHelp
	}
	return h, nil
}

func (h *Host) copyCoordinates() {
	if h.clip == nil {
		h.status = "clipboard unavailable"
		return
	}
	if err := h.clip.WriteText(h.eng.ExportCoordinates()); err != nil {
		engine.Logger().Warn("clipboard write failed", "err", err)
		h.status = "copy failed"
		return
	}
	h.status = "coordinates copied"
}

func (h *Host) logCoordinates() {
	cur := h.eng.Current()
	engine.Logger().Info("coordinates",
		"x", cur.CenterX,
		"y", cur.CenterY,
		"zoom", cur.Size,
		"export", h.eng.ExportCoordinates(),
	)
	h.status = "coordinates logged"
}

func (h *Host) stopRecording() {
	if h.recorder == nil {
		return
	}
	n := h.recorder.Frames()
	if err := h.recorder.Save(h.gifPath); err != nil {
		engine.Logger().Error("gif save failed", "path", h.gifPath, "err", err)
		h.status = "gif save failed"
	} else {
		h.status = fmt.Sprintf("saved %d frames to %s", n, h.gifPath)
	}
	h.recorder = nil
}

// frame advances the engine by the wall time since the previous frame and
// redraws the canvas.
func (h *Host) frame(now time.Time) {
	elapsed := physics.NominalFrame
	if !h.last.IsZero() {
		elapsed = now.Sub(h.last).Seconds()
	}
	h.last = now
	if elapsed > 0 {
		h.fps = 0.9*h.fps + 0.1/elapsed
	}

	h.eng.Tick(elapsed)
	h.draw()

	if len(h.history) == historyCapacity {
		h.history = h.history[1:]
	}
	h.history = append(h.history, depth(h.eng.Current().Size))

	if h.recorder != nil {
		h.recorder.Capture(h.canvas)
	}
}

func (h *Host) draw() {
	snap := h.eng.Snapshot()
	pw, ph := h.canvas.PixelSize()
	field := h.backend.Render(snap, pw, ph)
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			h.canvas.Set(x, y, Shade(snap.PaletteID, field.At(x, y)))
		}
	}
}

// depth is the zoom level in decades below the default view.
func depth(size float64) float64 {
	return math.Log10(viewport.DefaultSize / size)
}

func (h Host) View() string {
	if h.showHelp {
		return h.helpView()
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, h.canvas.String(), h.hudView())
	return main + "\n" + h.styles.status.Render(h.status)
}

func (h Host) hudView() string {
	cur, st := h.eng.Current(), h.styles
	var s strings.Builder

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	s.WriteString(st.title.Render("FRACTONAUT") + "\n")
	row("Fractal", cur.Fractal.String())
	row("Palette", fmt.Sprintf("%d", cur.PaletteID))
	row("X", fmt.Sprintf("%.15g", cur.CenterX))
	row("Y", fmt.Sprintf("%.15g", cur.CenterY))
	row("Zoom", fmt.Sprintf("%.3e", cur.Size))
	row("Depth", fmt.Sprintf("%.1f decades", depth(cur.Size)))
	row("Iter", fmt.Sprintf("%d", cur.MaxIterations))
	row("Render", h.backend.Name())

	mode := h.eng.Mode().String()
	if v := h.eng.Velocity(); mode == input.Idle.String() && !v.IsZero() {
		mode = "gliding"
	}
	row("Mode", mode)
	row("FPS", fmt.Sprintf("%.0f", h.fps))

	if lim := h.eng.Config().Limits; lim.MaxSize > 0 {
		bar := ProgressBar(cur.Size/lim.Ceiling(), 14)
		if cur.Size > lim.MaxSize {
			bar = st.warn.Render(bar)
		}
		row("Limit", bar)
	}

	if len(h.history) > 1 {
		chart := asciigraph.Plot(h.history,
			asciigraph.Height(4),
			asciigraph.Width(HUDWidth-12),
			asciigraph.Caption("zoom depth"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	if h.recorder != nil {
		s.WriteString(st.warn.Render(fmt.Sprintf("● REC %d", h.recorder.Frames())) + "\n")
	}

	s.WriteString("\n" + Separator(HUDWidth-4) + "\n")
	s.WriteString(st.keyHint.Render("wheel/i/o zoom  drag pan\nm fractal  [] palette  +- iter\nc copy  p log  r reset  ? help"))
	return st.panel.Render(s.String())
}

func (h Host) helpView() string {
	return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Drag     - Pan, release to glide    ║
║  Wheel    - Zoom around the cursor   ║
║  I / O    - Zoom in/out at center    ║
║  M        - Next fractal family      ║
║  [ ]      - Previous/next palette    ║
║  + -      - More/fewer iterations    ║
║  R        - Reset view               ║
║  C        - Copy coordinates         ║
║  P        - Log coordinates          ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`
}
