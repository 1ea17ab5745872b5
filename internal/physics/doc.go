// Package physics advances the rendered camera toward the target camera.
//
// One [Integrator.Step] per tick performs, in order:
//
//  1. momentum: residual pan velocity moves the target and decays by
//     Friction^(dt*60)
//  2. the soft zoom-out ceiling is re-applied to the target
//  3. exponential smoothing: current moves by (target-current)*f with
//     f = 1 - LerpBase^(dt*LerpRate)
//  4. optional zoom-adaptive iteration budget
//
// All rates are expressed against elapsed seconds, so 30 Hz and 144 Hz
// hosts converge along the same curve.
package physics
