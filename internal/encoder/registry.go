package encoder

import (
	"fmt"
	"image"
	"strings"

	"github.com/AnyUserName/mktimg/internal/format"
	"github.com/rs/zerolog/log"
)

// Registry holds all available encoders keyed by MIME type.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	all := []Encoder{
		&JPEGEncoder{},
		&WebPEncoder{},
		&PNGEncoder{},
		&GIFEncoder{},
		&BMPEncoder{},
		&TIFFEncoder{},
	}

	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.MIMEType()] = enc
		}
	}

	return r
}

// Get returns the encoder for the given MIME type, or nil if unavailable.
func (r *Registry) Get(mime string) Encoder {
	return r.encoders[format.Normalize(mime)]
}

// Encode encodes img as mime. Every failure, including an unknown type,
// is returned as *EncodeError.
func (r *Registry) Encode(img image.Image, mime string, quality float64) ([]byte, error) {
	b := img.Bounds()
	enc := r.Get(mime)
	if enc == nil {
		return nil, &EncodeError{MIME: mime, Width: b.Dx(), Height: b.Dy(), Err: ErrUnsupported}
	}

	data, err := enc.Encode(img, quality)
	if err != nil {
		return nil, &EncodeError{MIME: enc.MIMEType(), Width: b.Dx(), Height: b.Dy(), Err: err}
	}
	if len(data) == 0 {
		return nil, &EncodeError{MIME: enc.MIMEType(), Width: b.Dx(), Height: b.Dy(),
			Err: fmt.Errorf("%s encoder produced no output", enc.Format())}
	}

	log.Debug().Str("format", enc.Format()).Int("width", b.Dx()).Int("height", b.Dy()).
		Float64("quality", quality).Int("bytes", len(data)).Msg("encoded image")
	return data, nil
}

// Available returns the MIME types of all available encoders.
func (r *Registry) Available() []string {
	var result []string
	for _, m := range []string{format.JPEG, format.WebP, format.PNG, format.GIF, format.BMP, format.TIFF} {
		if _, ok := r.encoders[m]; ok {
			result = append(result, m)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	var names []string
	for _, m := range r.Available() {
		names = append(names, r.encoders[m].Format())
	}
	if len(names) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(names, ", "))
}
