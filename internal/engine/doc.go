// Package engine drives the fractal viewport: it owns the camera state,
// routes input events to the controller and advances the physics once per
// tick.
//
// The components are:
//
//   - [viewport.State]: current and target camera
//   - [input.Controller]: gestures to target changes
//   - [physics.Integrator]: momentum, ceiling, smoothing
//   - [uniforms.Snapshot]: what the renderer binds each paint
//
// # Example
//
//	eng, _ := engine.New(engine.DefaultConfig())
//	eng.Handle(input.Scroll{Notches: 1, X: 400, Y: 300, Viewport: vp})
//	eng.Tick(1.0 / 60)
//	snap := eng.Snapshot()
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Call Handle and Tick from one
// goroutine, or use [Engine.Run], which serializes events and ticks in its
// own select loop.
package engine
