// Package viewport holds the camera model of the fractal explorer.
//
// A [State] carries two cameras:
//
//   - current: what the renderer draws this frame
//   - target: where user input wants the camera to be
//
// Input handling writes the target half, the physics integrator moves the
// current half toward it once per tick. Every write goes through a
// sanitizing setter, so a State is always valid for the next render: the
// view size stays strictly positive and centers stay finite.
//
// # Thread Safety
//
// State is NOT thread-safe. It is owned by a single mutator goroutine; see
// engine.Engine.Run for the serialized loop that drives it.
package viewport
