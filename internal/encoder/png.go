package encoder

import (
	"bytes"
	"image"
	"image/gif"
	"image/png"

	"github.com/AnyUserName/mktimg/internal/format"
)

// PNGEncoder encodes images to PNG using Go's standard library.
// PNG is lossless; the quality factor is ignored.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) MIMEType() string  { return format.PNG }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Available() bool   { return true }

func (e *PNGEncoder) Encode(img image.Image, _ float64) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(512 * 1024)

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	err := enc.Encode(&buf, img)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GIFEncoder writes a single-frame GIF with a 256-colour palette.
type GIFEncoder struct{}

func (e *GIFEncoder) Format() string    { return "gif" }
func (e *GIFEncoder) MIMEType() string  { return format.GIF }
func (e *GIFEncoder) Extension() string { return "gif" }
func (e *GIFEncoder) Available() bool   { return true }

func (e *GIFEncoder) Encode(img image.Image, _ float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, &gif.Options{NumColors: 256}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
