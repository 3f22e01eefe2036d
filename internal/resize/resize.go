// Package resize computes width-bounded target dimensions and resamples
// bitmaps to them.
package resize

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Dimensions returns the size of a w×h image scaled so that its width does
// not exceed maxWidth. Images are never upscaled, and the height follows
// the width scale factor only.
//
// A non-positive maxWidth is not rejected here; it produces non-positive
// dimensions which the caller must treat as invalid.
func Dimensions(w, h, maxWidth int) (int, int) {
	if w <= maxWidth {
		return w, h
	}
	// w > maxWidth, so the width lands on maxWidth exactly.
	newH := int(math.Round(float64(h) * float64(maxWidth) / float64(w)))
	return maxWidth, newH
}

// Resize resamples img to w×h with a Lanczos filter. When the size is
// unchanged the pixels are copied without resampling.
func Resize(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
