package encoder

import (
	"bytes"
	"image"

	"github.com/AnyUserName/mktimg/internal/format"
	"github.com/chai2010/webp"
)

// WebPEncoder encodes lossy WebP through libwebp (cgo).
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) MIMEType() string  { return format.WebP }
func (e *WebPEncoder) Extension() string { return "webp" }
func (e *WebPEncoder) Available() bool   { return true }

func (e *WebPEncoder) Encode(img image.Image, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	opts := &webp.Options{Quality: float32(normalizeQuality(quality) * 100)}
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
