package compute

import (
	"sync/atomic"
	"testing"

	"github.com/san-kum/fractonaut/internal/uniforms"
	"github.com/san-kum/fractonaut/internal/viewport"
)

func snapshot(cam viewport.CameraParams, w, h int, native bool) uniforms.Snapshot {
	return uniforms.Build(cam, float64(w), float64(h), uniforms.Policy{NativeDoubles: native, PixelRatio: 1})
}

func TestRenderDefaultView(t *testing.T) {
	b := NewCPUBackend()
	cam := viewport.DefaultCamera()
	cam.MaxIterations = 200

	for _, native := range []bool{true, false} {
		f := b.Render(snapshot(cam, 31, 21, native), 31, 21)
		if f.Width != 31 || f.Height != 21 || len(f.Values) != 31*21 {
			t.Fatalf("field %dx%d (%d values)", f.Width, f.Height, len(f.Values))
		}
		// (-0.5, 0) is in the main cardioid, the top-left corner is not.
		if got := f.At(15, 10); got != Inside {
			t.Errorf("native=%v: center = %v, want inside", native, got)
		}
		if got := f.At(0, 0); got == Inside {
			t.Errorf("native=%v: corner should escape", native)
		}
	}
}

func TestRenderOrientation(t *testing.T) {
	b := NewCPUBackend()
	cam := viewport.DefaultCamera()
	cam.CenterX, cam.CenterY, cam.Size = 0, 1, 0.5
	cam.MaxIterations = 100

	// Row 0 is the top of the view, so it sits further from the set than the
	// bottom row when looking just above it.
	f := b.Render(snapshot(cam, 9, 9, true), 9, 9)
	top, bottom := f.At(4, 0), f.At(4, 8)
	if top == Inside || (bottom != Inside && bottom <= top) {
		t.Errorf("top=%v bottom=%v: y axis is not up", top, bottom)
	}
}

func TestRenderEmulatedMatchesNative(t *testing.T) {
	b := NewCPUBackend()
	cam := viewport.DefaultCamera()
	cam.CenterX, cam.CenterY = -0.743643887037151, 0.131825904205330
	cam.Size = 1e-7
	cam.MaxIterations = 1500

	const w, h = 24, 16
	native := b.Render(snapshot(cam, w, h, true), w, h)
	emulated := b.Render(snapshot(cam, w, h, false), w, h)

	agree := 0
	for i := range native.Values {
		n, e := native.Values[i], emulated.Values[i]
		if (n == Inside) == (e == Inside) && int(n) == int(e) {
			agree++
		}
	}
	if frac := float64(agree) / float64(len(native.Values)); frac < 0.9 {
		t.Errorf("emulated agrees with native on %.0f%% of pixels", frac*100)
	}
}

func TestRenderFractalFamilies(t *testing.T) {
	b := NewCPUBackend()
	for _, fr := range []viewport.FractalType{viewport.Mandelbrot, viewport.Julia, viewport.BurningShip, viewport.Tricorn} {
		cam := viewport.DefaultCamera()
		cam.Fractal = fr
		cam.CenterX = 0
		cam.MaxIterations = 100
		f := b.Render(snapshot(cam, 20, 10, true), 20, 10)

		inside, escaped := 0, 0
		for _, v := range f.Values {
			if v == Inside {
				inside++
			} else {
				escaped++
			}
		}
		if inside == 0 || escaped == 0 {
			t.Errorf("%v: inside=%d escaped=%d", fr, inside, escaped)
		}
	}
}

func TestRenderEmptyField(t *testing.T) {
	f := NewCPUBackend().Render(snapshot(viewport.DefaultCamera(), 0, 0, true), 0, 5)
	if len(f.Values) != 0 {
		t.Errorf("expected empty field, got %d values", len(f.Values))
	}
}

func TestParallelForCoversRange(t *testing.T) {
	for _, tc := range []struct{ n, minChunk, workers int }{
		{0, 4, 8}, {3, 4, 8}, {100, 4, 8}, {101, 1, 3}, {7, 2, 1},
	} {
		var count atomic.Int64
		seen := make([]int32, tc.n)
		ParallelFor(tc.n, tc.minChunk, tc.workers, func(s, e int) {
			for i := s; i < e; i++ {
				atomic.AddInt32(&seen[i], 1)
				count.Add(1)
			}
		})
		if count.Load() != int64(tc.n) {
			t.Errorf("%+v: visited %d", tc, count.Load())
		}
		for i, v := range seen {
			if v != 1 {
				t.Errorf("%+v: index %d visited %d times", tc, i, v)
			}
		}
	}
}
