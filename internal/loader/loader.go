// Package loader turns raw image bytes into a decoded bitmap.
package loader

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/AnyUserName/mktimg/internal/blob"
	"github.com/AnyUserName/mktimg/internal/format"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Bitmap is a decoded raster with its native size and the MIME type it
// was decoded as.
type Bitmap struct {
	Image  image.Image
	Width  int
	Height int
	MIME   string
}

// DecodeError reports bytes that could not be parsed as an image of the
// stated type.
type DecodeError struct {
	MIME string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.MIME, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type decodeFunc func(io.Reader) (image.Image, error)

// decoders is keyed by canonical MIME type. Decoding goes through the
// decoder of the stated type only, never through image.Decode sniffing.
var decoders = map[string]decodeFunc{
	format.JPEG: jpeg.Decode,
	format.PNG:  png.Decode,
	format.GIF:  gif.Decode,
	format.WebP: webp.Decode,
	format.BMP:  bmp.Decode,
	format.TIFF: tiff.Decode,
}

// Load reads src and decodes it. Read failures are returned as
// *blob.ReadError, everything else as *DecodeError.
func Load(src blob.Blob) (*Bitmap, error) {
	data, err := blob.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return Decode(data, src.Type())
}

// Decode decodes data as mime. An empty or generic mime is sniffed.
func Decode(data []byte, mime string) (*Bitmap, error) {
	mime = format.Resolve(mime, data)

	dec, ok := decoders[mime]
	if !ok {
		return nil, &DecodeError{MIME: mime, Err: fmt.Errorf("unsupported image type")}
	}
	if len(data) == 0 {
		return nil, &DecodeError{MIME: mime, Err: io.ErrUnexpectedEOF}
	}

	img, err := dec(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{MIME: mime, Err: err}
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, &DecodeError{MIME: mime, Err: fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy())}
	}

	log.Debug().Str("mime", mime).Int("width", b.Dx()).Int("height", b.Dy()).
		Int("bytes", len(data)).Msg("decoded image")

	return &Bitmap{Image: img, Width: b.Dx(), Height: b.Dy(), MIME: mime}, nil
}
