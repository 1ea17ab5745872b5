// Package compute evaluates escape-time fractals for a uniform snapshot.
//
// The CPU backend has two evaluators and picks one per snapshot:
//
//   - native: float64 throughout, for deployments that declare native doubles
//   - emulated: double-single arithmetic on the float32 hi/lo pairs, the way
//     a shader without float64 support would evaluate the same uniforms
//
// Rows are spread across goroutines with [ParallelFor].
//
//	field := compute.NewCPUBackend().Render(snap, cols, rows)
package compute
