package input

import "github.com/san-kum/fractonaut/internal/viewport"

// PixelToFractal maps a pixel of vp to the plane as seen by cam. One pixel
// spans cam.Size/vp.Height units; screen y grows downward while fractal y
// grows upward.
func PixelToFractal(cam viewport.CameraParams, vp Viewport, px, py float64) (float64, float64) {
	scale := cam.Size / vp.Height
	fx := cam.CenterX + (px-vp.Width/2)*scale
	fy := cam.CenterY - (py-vp.Height/2)*scale
	return fx, fy
}

// FractalToPixel is the inverse of PixelToFractal.
func FractalToPixel(cam viewport.CameraParams, vp Viewport, fx, fy float64) (float64, float64) {
	scale := vp.Height / cam.Size
	px := vp.Width/2 + (fx-cam.CenterX)*scale
	py := vp.Height/2 - (fy-cam.CenterY)*scale
	return px, py
}
