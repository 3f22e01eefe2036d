// Package compress resizes and re-encodes an uploaded image in its own
// format, flattening transparency onto white.
package compress

import (
	"github.com/AnyUserName/mktimg/internal/async"
	"github.com/AnyUserName/mktimg/internal/blob"
	"github.com/AnyUserName/mktimg/internal/encoder"
	"github.com/AnyUserName/mktimg/internal/format"
	"github.com/AnyUserName/mktimg/internal/loader"
	"github.com/AnyUserName/mktimg/internal/resize"
	"github.com/rs/zerolog/log"
)

// Compressor runs the load → resize → encode pipeline. It holds no
// per-call state and is safe for concurrent use.
type Compressor struct {
	registry *encoder.Registry
}

// New creates a Compressor backed by all available encoders.
func New() *Compressor {
	return &Compressor{registry: encoder.NewRegistry()}
}

var std = New()

// Compress runs the pipeline with the package-level Compressor.
func Compress(src blob.Blob, opts Options) (*blob.Bytes, error) {
	return std.Compress(src, opts)
}

// CompressAsync is Compress on its own goroutine.
func CompressAsync(src blob.Blob, opts Options) <-chan async.Result[*blob.Bytes] {
	return std.CompressAsync(src, opts)
}

// Compress decodes src, scales it to at most opts.MaxWidth pixels wide and
// encodes it in src's MIME type at opts.Quality.
//
// Errors are *blob.ReadError, *loader.DecodeError, *encoder.EncodeError,
// or ErrInvalidParams under ValidateStrict. They are returned unwrapped.
func (c *Compressor) Compress(src blob.Blob, opts Options) (*blob.Bytes, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	bm, err := loader.Load(src)
	if err != nil {
		return nil, err
	}

	w, h := resize.Dimensions(bm.Width, bm.Height, opts.MaxWidth)

	data, err := c.render(bm, w, h, opts.Quality)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("src_width", bm.Width).Int("src_height", bm.Height).
		Int("width", w).Int("height", h).Str("mime", bm.MIME).
		Int("bytes", len(data)).Msg("compressed image")

	return &blob.Bytes{Data: data, MIME: outputType(src.Type(), bm.MIME)}, nil
}

// CompressAsync runs Compress on its own goroutine.
func (c *Compressor) CompressAsync(src blob.Blob, opts Options) <-chan async.Result[*blob.Bytes] {
	return async.Go(func() (*blob.Bytes, error) {
		return c.Compress(src, opts)
	})
}

// render owns the canvas for the resize/encode stage.
func (c *Compressor) render(bm *loader.Bitmap, w, h int, quality float64) ([]byte, error) {
	cv, err := newCanvas(w, h)
	if err != nil {
		return nil, &encoder.EncodeError{MIME: bm.MIME, Width: w, Height: h, Err: err}
	}
	defer cv.release()

	cv.draw(resize.Resize(bm.Image, w, h))
	return c.registry.Encode(cv.image(), bm.MIME, quality)
}

// outputType keeps the caller's declared type verbatim and only falls
// back to the decoded type when nothing meaningful was declared.
func outputType(declared, decoded string) string {
	if n := format.Normalize(declared); n == "" || n == format.Unknown {
		return decoded
	}
	return declared
}
