package encoder

import (
	"bytes"
	"image"

	"github.com/AnyUserName/mktimg/internal/format"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// BMPEncoder encodes images to BMP via golang.org/x/image.
type BMPEncoder struct{}

func (e *BMPEncoder) Format() string    { return "bmp" }
func (e *BMPEncoder) MIMEType() string  { return format.BMP }
func (e *BMPEncoder) Extension() string { return "bmp" }
func (e *BMPEncoder) Available() bool   { return true }

func (e *BMPEncoder) Encode(img image.Image, _ float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TIFFEncoder writes deflate-compressed TIFF via golang.org/x/image.
type TIFFEncoder struct{}

func (e *TIFFEncoder) Format() string    { return "tiff" }
func (e *TIFFEncoder) MIMEType() string  { return format.TIFF }
func (e *TIFFEncoder) Extension() string { return "tiff" }
func (e *TIFFEncoder) Available() bool   { return true }

func (e *TIFFEncoder) Encode(img image.Image, _ float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
