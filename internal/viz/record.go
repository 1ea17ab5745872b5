package viz

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"
)

// Recorder collects canvas frames into an animated GIF.
type Recorder struct {
	palette color.Palette
	frames  []*image.Paletted
}

// NewRecorder quantizes frames to 256 shades of the given palette id.
func NewRecorder(paletteID int) *Recorder {
	pal := make(color.Palette, 0, 256)
	pal = append(pal, color.RGBA{A: 255})
	for i := 0; i < 255; i++ {
		pal = append(pal, Shade(paletteID, float64(i)*iterationsPerCycle/255))
	}
	return &Recorder{palette: pal}
}

func (r *Recorder) Frames() int { return len(r.frames) }

func (r *Recorder) Capture(c *Canvas) {
	src := c.Image()
	img := image.NewPaletted(src.Bounds(), r.palette)
	draw.Draw(img, img.Bounds(), src, image.Point{}, draw.Src)
	r.frames = append(r.frames, img)
}

// Save writes the recording to path. A recording without frames writes
// nothing.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
