package viz

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Canvas is a color pixel grid drawn with upper half blocks: each cell
// shows two stacked pixels, the top one as foreground and the bottom one
// as background. Pixel size is Width x (Height*2).
type Canvas struct {
	Width, Height int
	pix           []color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Canvas{Width: w, Height: h, pix: make([]color.RGBA, w*h*2)}
}

// PixelSize is the drawable resolution.
func (c *Canvas) PixelSize() (int, int) { return c.Width, c.Height * 2 }

func (c *Canvas) Set(x, y int, col color.RGBA) {
	w, h := c.PixelSize()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.pix[y*w+x] = col
}

func (c *Canvas) At(x, y int) color.RGBA {
	w, h := c.PixelSize()
	if x < 0 || y < 0 || x >= w || y >= h {
		return color.RGBA{}
	}
	return c.pix[y*w+x]
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = color.RGBA{}
	}
}

// Image copies the pixels into an RGBA image.
func (c *Canvas) Image() *image.RGBA {
	w, h := c.PixelSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c.pix[y*w+x])
		}
	}
	return img
}

func (c *Canvas) String() string {
	var b strings.Builder
	w := c.Width
	for row := 0; row < c.Height; row++ {
		for col := 0; col < w; col++ {
			top := c.pix[(row*2)*w+col]
			bottom := c.pix[(row*2+1)*w+col]
			b.WriteString(lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bottom)).
				Render("▀"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
