package input

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fractonaut/internal/viewport"
)

var screen = Viewport{Width: 800, Height: 600}

var _ = Describe("Controller", func() {
	var (
		state *viewport.State
		ctrl  *Controller
	)

	BeforeEach(func() {
		state = viewport.NewDefault()
		ctrl = New(state, DefaultConfig())
	})

	Describe("dragging", func() {
		It("starts idle", func() {
			Expect(ctrl.Mode()).To(Equal(Idle))
			Expect(ctrl.Dragging()).To(BeFalse())
		})

		It("enters Dragging on a left press and zeroes momentum", func() {
			state.SetVelocity(viewport.Velocity{X: 0.1, Y: 0.1})
			Expect(ctrl.Handle(PointerDown{X: 10, Y: 10, Viewport: screen})).To(BeTrue())
			Expect(ctrl.Mode()).To(Equal(Dragging))
			Expect(state.Velocity().IsZero()).To(BeTrue())
		})

		It("ignores presses of other buttons", func() {
			Expect(ctrl.Handle(PointerDown{X: 10, Y: 10, Button: ButtonRight, Viewport: screen})).To(BeFalse())
			Expect(ctrl.Mode()).To(Equal(Idle))
		})

		It("syncs the target center to the rendered center on press", func() {
			state.PlaceTarget(0.7, 0.2, 1.0)
			ctrl.Handle(PointerDown{X: 400, Y: 300, Viewport: screen})

			tgt := state.Target()
			Expect(tgt.CenterX).To(Equal(-0.5))
			Expect(tgt.CenterY).To(Equal(0.0))
			Expect(tgt.Size).To(Equal(1.0))
		})

		It("pans the target by the pixel delta scaled by size over height", func() {
			ctrl.Handle(PointerDown{X: 100, Y: 100, Viewport: screen})
			Expect(ctrl.Handle(PointerMove{X: 130, Y: 90, Viewport: screen})).To(BeTrue())

			tgt := state.Target()
			Expect(tgt.CenterX).To(BeNumerically("~", -0.5-0.15, 1e-12))
			Expect(tgt.CenterY).To(BeNumerically("~", -0.05, 1e-12))
			Expect(math.Abs(tgt.CenterY)).To(BeNumerically("~", 10*3.0/600, 1e-12))
			Expect(state.Current().CenterX).To(Equal(-0.5), "dragging only writes the target")
		})

		It("records the last pan as momentum", func() {
			ctrl.Handle(PointerDown{X: 100, Y: 100, Viewport: screen})
			ctrl.Handle(PointerMove{X: 130, Y: 90, Viewport: screen})

			v := state.Velocity()
			Expect(v.X).To(BeNumerically("~", -0.15, 1e-12))
			Expect(v.Y).To(BeNumerically("~", -0.05, 1e-12))
		})

		It("scales momentum by the configured gain", func() {
			cfg := DefaultConfig()
			cfg.MomentumGain = 0.5
			ctrl = New(state, cfg)

			ctrl.Handle(PointerDown{X: 0, Y: 0, Viewport: screen})
			ctrl.Handle(PointerMove{X: 60, Y: 0, Viewport: screen})
			Expect(state.Velocity().X).To(BeNumerically("~", -0.15, 1e-12))
		})

		It("ignores moves while idle", func() {
			Expect(ctrl.Handle(PointerMove{X: 10, Y: 10, Viewport: screen})).To(BeFalse())
			Expect(state.Target()).To(Equal(state.Current()))
			Expect(ctrl.Dropped()).To(Equal(0))
		})

		It("returns to Idle on release and keeps momentum", func() {
			ctrl.Handle(PointerDown{X: 0, Y: 0, Viewport: screen})
			ctrl.Handle(PointerMove{X: 12, Y: 0, Viewport: screen})
			v := state.Velocity()

			Expect(ctrl.Handle(PointerUp{Button: ButtonLeft})).To(BeTrue())
			Expect(ctrl.Mode()).To(Equal(Idle))
			Expect(state.Velocity()).To(Equal(v))
		})

		It("ends the drag when focus is lost", func() {
			ctrl.Handle(PointerDown{X: 0, Y: 0, Viewport: screen})
			Expect(ctrl.Handle(FocusLost{})).To(BeTrue())
			Expect(ctrl.Dragging()).To(BeFalse())
		})
	})

	Describe("scrolling", func() {
		It("keeps the center fixed when zooming at the viewport center", func() {
			Expect(ctrl.Handle(Scroll{Notches: 1, X: 400, Y: 300, Viewport: screen})).To(BeTrue())

			tgt := state.Target()
			Expect(tgt.CenterX).To(Equal(-0.5))
			Expect(tgt.CenterY).To(Equal(0.0))
			Expect(tgt.Size).To(BeNumerically("~", 3.0*0.92, 1e-12))
		})

		It("zooms out by the zoom-out factor", func() {
			ctrl.Handle(Scroll{Notches: -1, X: 400, Y: 300, Viewport: screen})
			Expect(state.Target().Size).To(BeNumerically("~", 3.0*1.08, 1e-12))
		})

		It("treats fractional notches as powers of the per-notch factor", func() {
			ctrl.Handle(Scroll{Notches: 0.5, X: 400, Y: 300, Viewport: screen})
			ctrl.Handle(Scroll{Notches: 0.5, X: 400, Y: 300, Viewport: screen})
			Expect(state.Target().Size).To(BeNumerically("~", 3.0*0.92, 1e-12))
		})

		It("keeps the point under an off-center cursor fixed", func() {
			before := state.Target()
			fx, fy := PixelToFractal(before, screen, 120, 480)

			ctrl.Handle(Scroll{Notches: 3, X: 120, Y: 480, Viewport: screen})

			px, py := FractalToPixel(state.Target(), screen, fx, fy)
			Expect(px).To(BeNumerically("~", 120, 1e-9))
			Expect(py).To(BeNumerically("~", 480, 1e-9))
		})

		It("works while dragging", func() {
			ctrl.Handle(PointerDown{X: 0, Y: 0, Viewport: screen})
			Expect(ctrl.Handle(Scroll{Notches: 1, X: 400, Y: 300, Viewport: screen})).To(BeTrue())
			Expect(ctrl.Dragging()).To(BeTrue())
		})

		It("approaches the zoom-out ceiling without crossing it", func() {
			limits := DefaultConfig().Limits
			for i := 0; i < 400; i++ {
				ctrl.Handle(Scroll{Notches: -1, X: 400, Y: 300, Viewport: screen})
				Expect(state.Target().Size).To(BeNumerically("<=", limits.Ceiling()))
			}
			Expect(state.Target().Size).To(BeNumerically(">", limits.MaxSize))
		})

		It("never shrinks the view on zoom-out from beyond the ceiling", func() {
			state.PlaceTarget(-0.5, 0, 4.9)
			Expect(ctrl.Handle(Scroll{Notches: -1, X: 400, Y: 300, Viewport: screen})).To(BeTrue())
			Expect(state.Target().Size).To(BeNumerically(">=", 4.9))

			Expect(ctrl.Handle(Scroll{Notches: 1, X: 400, Y: 300, Viewport: screen})).To(BeTrue())
			Expect(state.Target().Size).To(BeNumerically("<", 4.9))
		})

		It("recenters toward home at the ceiling when configured", func() {
			cfg := DefaultConfig()
			cfg.Limits.Recenter = true
			ctrl = New(state, cfg)
			state.PlaceTarget(1.5, 1.0, 3.9)

			for i := 0; i < 50; i++ {
				ctrl.Handle(Scroll{Notches: -1, X: 400, Y: 300, Viewport: screen})
			}
			tgt := state.Target()
			Expect(math.Abs(tgt.CenterX - viewport.DefaultCenterX)).To(BeNumerically("<", 1.0))
			Expect(math.Abs(tgt.CenterY)).To(BeNumerically("<", 0.5))
		})
	})

	DescribeTable("dropping unusable events",
		func(ev Event) {
			ctrl.Handle(PointerDown{X: 10, Y: 10, Viewport: screen})
			before := state.Target()

			Expect(ctrl.Handle(ev)).To(BeFalse())
			Expect(state.Target()).To(Equal(before))
			Expect(ctrl.Dropped()).To(Equal(1))
		},
		Entry("NaN move", PointerMove{X: math.NaN(), Y: 1, Viewport: screen}),
		Entry("zero-height move", PointerMove{X: 20, Y: 20, Viewport: Viewport{Width: 800}}),
		Entry("NaN scroll position", Scroll{Notches: 1, X: 1, Y: math.NaN(), Viewport: screen}),
		Entry("infinite notches", Scroll{Notches: math.Inf(1), X: 1, Y: 1, Viewport: screen}),
		Entry("zero notches", Scroll{Notches: 0, X: 1, Y: 1, Viewport: screen}),
		Entry("zero-height scroll", Scroll{Notches: 1, X: 1, Y: 1, Viewport: Viewport{Width: 800}}),
		Entry("NaN viewport", Scroll{Notches: 1, X: 1, Y: 1, Viewport: Viewport{Width: 800, Height: math.NaN()}}),
	)

	It("drops a press with non-finite coordinates", func() {
		Expect(ctrl.Handle(PointerDown{X: math.Inf(-1), Y: 0, Viewport: screen})).To(BeFalse())
		Expect(ctrl.Mode()).To(Equal(Idle))
		Expect(ctrl.Dropped()).To(Equal(1))
	})
})

var _ = Describe("Commands", func() {
	var (
		state *viewport.State
		ctrl  *Controller
	)

	BeforeEach(func() {
		state = viewport.NewDefault()
		ctrl = New(state, DefaultConfig())
	})

	It("writes pass-through parameters to the target only", func() {
		Expect(ctrl.Handle(SetFractal{Fractal: viewport.Julia})).To(BeTrue())
		Expect(ctrl.Handle(SetPalette{ID: 2})).To(BeTrue())
		Expect(ctrl.Handle(SetIterations{N: 900})).To(BeTrue())
		Expect(ctrl.Handle(SetJuliaC{X: 0.285, Y: 0.01})).To(BeTrue())

		tgt := state.Target()
		Expect(tgt.Fractal).To(Equal(viewport.Julia))
		Expect(tgt.PaletteID).To(Equal(2))
		Expect(tgt.MaxIterations).To(Equal(900))
		Expect(tgt.JuliaC).To(Equal([2]float64{0.285, 0.01}))
		Expect(state.Current().Fractal).To(Equal(viewport.Mandelbrot))
	})

	It("drops invalid iteration budgets and julia constants", func() {
		Expect(ctrl.Handle(SetIterations{N: 0})).To(BeFalse())
		Expect(ctrl.Handle(SetJuliaC{X: math.NaN()})).To(BeFalse())
		Expect(ctrl.Dropped()).To(Equal(2))
		Expect(state.Target().MaxIterations).To(Equal(500))
	})

	It("resets the view and ends a drag", func() {
		ctrl.Handle(PointerDown{X: 0, Y: 0, Viewport: screen})
		ctrl.Handle(PointerMove{X: 50, Y: 20, Viewport: screen})
		Expect(ctrl.Handle(ResetView{})).To(BeTrue())

		Expect(ctrl.Mode()).To(Equal(Idle))
		Expect(state.Target()).To(Equal(state.Home()))
		Expect(state.Velocity().IsZero()).To(BeTrue())
	})
})
