package compress

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// canvas is the per-call drawing surface: an opaque white raster that
// the resized bitmap is composited onto. It is never shared between calls.
type canvas struct {
	img *image.NRGBA
}

func newCanvas(w, h int) (*canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	return &canvas{img: imaging.New(w, h, color.White)}, nil
}

// draw composites src over the white background at the origin. Any
// transparency in src is flattened.
func (c *canvas) draw(src image.Image) {
	c.img = imaging.Overlay(c.img, src, image.Pt(0, 0), 1.0)
}

func (c *canvas) image() image.Image { return c.img }

// release drops the pixel buffer.
func (c *canvas) release() { c.img = nil }
