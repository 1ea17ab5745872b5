// Package viz hosts the viewport engine in a terminal.
//
// The host plays both collaborator roles around the engine: it turns
// Bubble Tea mouse and key messages into input events, and it renders each
// snapshot with the compute backend onto a half-block [Canvas], two pixels
// per character cell.
//
// # Key Bindings
//
//	drag   - Pan, release to glide
//	wheel  - Zoom around the cursor
//	I / O  - Zoom in/out at the center
//	M      - Next fractal family
//	[ ]    - Previous/next palette
//	+ -    - More/fewer iterations
//	R      - Reset view
//	C      - Copy coordinates to the clipboard
//	P      - Log coordinates
//	G      - Toggle GIF recording
//	T      - Cycle HUD themes
//	?      - Show help overlay
//	Q      - Quit
package viz
