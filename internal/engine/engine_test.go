package engine

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fractonaut/internal/input"
	"github.com/san-kum/fractonaut/internal/physics"
	"github.com/san-kum/fractonaut/internal/uniforms"
	"github.com/san-kum/fractonaut/internal/viewport"
)

var vp = input.Viewport{Width: 800, Height: 600}

var _ = Describe("Engine", func() {
	var eng *Engine

	BeforeEach(func() {
		var err error
		eng, err = New(DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts at the default view", func() {
		Expect(eng.Current()).To(Equal(viewport.DefaultCamera()))
		Expect(eng.ExportCoordinates()).To(Equal("X: -0.5\nY: 0\nZoom: 3"))
	})

	It("animates the rendered size toward a scroll zoom", func() {
		eng.Handle(input.Scroll{Notches: 1, X: 400, Y: 300, Viewport: vp})
		Expect(eng.Current().Size).To(Equal(3.0))

		eng.Tick(physics.NominalFrame)
		size := eng.Current().Size
		Expect(size).To(BeNumerically("<", 3.0))
		Expect(size).To(BeNumerically(">", eng.Target().Size))

		for i := 0; i < 2000; i++ {
			eng.Tick(physics.NominalFrame)
		}
		Expect(eng.Current().Size).To(Equal(eng.Target().Size))
		Expect(eng.Current().CenterX).To(Equal(-0.5))
	})

	It("glides after a drag is released and then stops", func() {
		eng.Handle(input.PointerDown{X: 100, Y: 100, Viewport: vp})
		eng.Handle(input.PointerMove{X: 130, Y: 90, Viewport: vp})
		eng.Tick(physics.NominalFrame)
		eng.Handle(input.PointerUp{Button: input.ButtonLeft})

		afterDrag := eng.Target().CenterX
		eng.Tick(physics.NominalFrame)
		Expect(eng.Target().CenterX).To(BeNumerically("<", afterDrag))

		for i := 0; i < 500 && !eng.Velocity().IsZero(); i++ {
			eng.Tick(physics.NominalFrame)
		}
		Expect(eng.Velocity().IsZero()).To(BeTrue())
	})

	It("carries the viewport of the last event into snapshots", func() {
		eng.Handle(input.Scroll{Notches: 1, X: 10, Y: 10, Viewport: input.Viewport{Width: 320, Height: 200}})
		Expect(eng.Snapshot().Resolution).To(Equal([2]float32{320, 200}))

		eng.Resize(0, 100)
		Expect(eng.Viewport()).To(Equal(input.Viewport{Width: 320, Height: 200}))
	})

	It("counts dropped events", func() {
		eng.Handle(input.Scroll{Notches: math.NaN(), X: 1, Y: 1, Viewport: vp})
		Expect(eng.Dropped()).To(Equal(1))
		Expect(eng.Target()).To(Equal(eng.Current()))
	})

	It("reports every tick to observers with sanitized dt", func() {
		var seen []TickInfo
		eng.AddObserver(ObserverFunc(func(info TickInfo) { seen = append(seen, info) }))

		eng.Tick(physics.NominalFrame)
		eng.Tick(3.0)
		eng.Tick(math.NaN())

		Expect(seen).To(HaveLen(3))
		Expect(seen[0].Tick).To(Equal(1))
		Expect(seen[1].Clamped).To(BeTrue())
		Expect(seen[1].Dt).To(Equal(physics.NominalFrame))
		Expect(seen[2].Dt).To(Equal(0.0))
		Expect(seen[2].Time).To(BeNumerically("~", 2*physics.NominalFrame, 1e-12))
	})

	It("snapshots the rendered camera as split pairs", func() {
		snap := eng.Snapshot()
		x, y := snap.Center()
		Expect(x).To(Equal(-0.5))
		Expect(y).To(Equal(0.0))
		Expect(snap.Size.Value()).To(Equal(3.0))
		Expect(snap.HighPrecision).To(BeTrue())
	})

	It("never hands the renderer a zero size at the zoom floor", func() {
		for i := 0; i < 1300; i++ {
			eng.Handle(input.Scroll{Notches: 1, X: 400, Y: 300, Viewport: vp})
		}
		Expect(eng.Target().Size).To(Equal(viewport.MinSize))
		for i := 0; i < 2000; i++ {
			eng.Tick(physics.NominalFrame)
		}

		snap := eng.Snapshot()
		Expect(snap.Size.Hi).To(BeNumerically(">", 0))
		Expect(snap.Size.Value()).To(BeNumerically(">", 0))
		Expect(eng.Current().Size).To(BeNumerically(">=", viewport.MinSize))
	})

	Describe("Run", func() {
		It("applies queued events before the next tick and renders once per tick", func() {
			events := make(chan input.Event, 4)
			ticks := make(chan time.Time, 4)
			var frames []uniforms.Snapshot

			events <- input.Scroll{Notches: 5, X: 400, Y: 300, Viewport: vp}
			ticks <- time.Unix(0, 0)
			close(ticks)

			err := eng.Run(context.Background(), events, ticks, func(s uniforms.Snapshot) {
				frames = append(frames, s)
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(frames).To(HaveLen(1))
			Expect(eng.Target().Size).To(BeNumerically("<", 3.0))
			Expect(float64(frames[0].Size.Hi)).To(BeNumerically("<", 3.0))
		})

		It("measures elapsed time between ticks and clamps stalls", func() {
			var dts []float64
			eng.AddObserver(ObserverFunc(func(info TickInfo) { dts = append(dts, info.Dt) }))

			ticks := make(chan time.Time, 3)
			t0 := time.Unix(100, 0)
			ticks <- t0
			ticks <- t0.Add(20 * time.Millisecond)
			ticks <- t0.Add(5 * time.Second)
			close(ticks)

			Expect(eng.Run(context.Background(), nil, ticks, nil)).To(Succeed())
			Expect(dts).To(HaveLen(3))
			Expect(dts[0]).To(Equal(physics.NominalFrame))
			Expect(dts[1]).To(BeNumerically("~", 0.02, 1e-9))
			Expect(dts[2]).To(Equal(physics.NominalFrame))
		})

		It("stops on context cancellation and freezes the camera", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			before := eng.Current()

			err := eng.Run(ctx, make(chan input.Event), make(chan time.Time), nil)
			Expect(err).To(MatchError(context.Canceled))
			Expect(eng.Current()).To(Equal(before))
		})

		It("keeps ticking after the event source closes", func() {
			events := make(chan input.Event)
			close(events)
			ticks := make(chan time.Time, 2)
			ticks <- time.Unix(0, 0)
			ticks <- time.Unix(0, int64(16*time.Millisecond))
			close(ticks)

			Expect(eng.Run(context.Background(), events, ticks, nil)).To(Succeed())
			Expect(eng.Ticks()).To(Equal(2))
		})
	})
})
