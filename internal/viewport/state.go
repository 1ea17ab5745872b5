package viewport

// Delta is a relative change of the target camera.
type Delta struct {
	CenterX, CenterY float64
	// SizeScale multiplies the target size; zero leaves it unchanged.
	SizeScale float64
}

// State is the current/target camera pair plus pan momentum.
type State struct {
	current  CameraParams
	target   CameraParams
	velocity Velocity
	home     CameraParams
}

// New creates a State with both cameras at initial. Invalid fields of
// initial fall back to DefaultCamera.
func New(initial CameraParams) *State {
	initial.sanitize(DefaultCamera())
	return &State{
		current: initial,
		target:  initial,
		home:    initial,
	}
}

func NewDefault() *State { return New(DefaultCamera()) }

// Current returns a copy of the rendered camera.
func (s *State) Current() CameraParams { return s.current }

// Target returns a copy of the intended camera.
func (s *State) Target() CameraParams { return s.target }

func (s *State) Velocity() Velocity { return s.velocity }

// Home is the camera the State was created with.
func (s *State) Home() CameraParams { return s.home }

// SetTarget applies d to the target camera.
func (s *State) SetTarget(d Delta) {
	next := s.target
	next.CenterX += d.CenterX
	next.CenterY += d.CenterY
	if d.SizeScale != 0 {
		next.Size *= d.SizeScale
	}
	s.UpdateTarget(next)
}

// PlaceTarget moves the target camera to an absolute position and size.
func (s *State) PlaceTarget(cx, cy, size float64) {
	next := s.target
	next.CenterX, next.CenterY, next.Size = cx, cy, size
	s.UpdateTarget(next)
}

// UpdateTarget replaces the target camera, repairing invalid fields.
func (s *State) UpdateTarget(c CameraParams) {
	c.sanitize(s.target)
	s.target = c
}

// SyncTargetToCurrent snaps the target center onto the rendered center.
// Size is left alone so a zoom in flight keeps animating.
func (s *State) SyncTargetToCurrent() {
	s.target.CenterX = s.current.CenterX
	s.target.CenterY = s.current.CenterY
}

// SetCurrent replaces the rendered camera, repairing invalid fields.
func (s *State) SetCurrent(c CameraParams) {
	c.sanitize(s.current)
	s.current = c
}

// SetVelocity stores pan momentum. Non-finite components reset it to zero.
func (s *State) SetVelocity(v Velocity) {
	if !IsFinite(v.X, v.Y) {
		v = Velocity{}
	}
	s.velocity = v
}

func (s *State) SetFractal(f FractalType) { s.target.Fractal = f }

func (s *State) SetPalette(id int) { s.target.PaletteID = id }

func (s *State) SetMaxIterations(n int) {
	if n < 1 {
		n = 1
	}
	s.target.MaxIterations = n
}

func (s *State) SetJuliaC(x, y float64) {
	if IsFinite(x, y) {
		s.target.JuliaC = [2]float64{x, y}
	}
}

// Reset returns both cameras to home and stops any momentum.
func (s *State) Reset() {
	s.current = s.home
	s.target = s.home
	s.velocity = Velocity{}
}
