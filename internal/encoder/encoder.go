package encoder

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg", "webp", "png").
	Format() string

	// MIMEType returns the canonical MIME type the encoder produces.
	MIMEType() string

	// Encode converts the image to bytes. quality is a factor in [0,1];
	// lossless encoders accept and ignore it.
	Encode(img image.Image, quality float64) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// DefaultQuality replaces a quality factor outside [0,1], matching what a
// browser canvas does with an out-of-range argument.
const DefaultQuality = 0.92

// ErrUnsupported is wrapped by EncodeError when no encoder handles a type.
var ErrUnsupported = errors.New("no encoder for type")

// EncodeError reports that the backend could not produce output for the
// given parameters.
type EncodeError struct {
	MIME   string
	Width  int
	Height int
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s %dx%d: %v", e.MIME, e.Width, e.Height, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// normalizeQuality returns q, or DefaultQuality if q is not in [0,1].
func normalizeQuality(q float64) float64 {
	if math.IsNaN(q) || q < 0 || q > 1 {
		return DefaultQuality
	}
	return q
}

// percent maps a [0,1] factor onto the 1-100 scale of libjpeg-style
// encoders.
func percent(q float64) int {
	p := int(math.Round(normalizeQuality(q) * 100))
	if p < 1 {
		p = 1
	}
	return p
}
