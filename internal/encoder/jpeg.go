package encoder

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/AnyUserName/mktimg/internal/format"
)

// JPEGEncoder encodes images to JPEG using Go's standard library.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) MIMEType() string  { return format.JPEG }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) Available() bool   { return true }

func (e *JPEGEncoder) Encode(img image.Image, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(256 * 1024) // typical listing photo at 1920px

	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: percent(quality)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
