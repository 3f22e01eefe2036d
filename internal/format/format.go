// Package format maps image MIME types to the names, extensions and
// traits the pipeline cares about.
package format

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
	GIF  = "image/gif"
	WebP = "image/webp"
	BMP  = "image/bmp"
	TIFF = "image/tiff"

	// Unknown is the type browsers and mimetype report for opaque bytes.
	Unknown = "application/octet-stream"
)

type info struct {
	name  string
	ext   string
	lossy bool
}

var known = map[string]info{
	JPEG: {"jpeg", "jpg", true},
	PNG:  {"png", "png", false},
	GIF:  {"gif", "gif", false},
	WebP: {"webp", "webp", true},
	BMP:  {"bmp", "bmp", false},
	TIFF: {"tiff", "tiff", false},
}

// aliases seen in the wild for the canonical types above.
var aliases = map[string]string{
	"image/jpg":      JPEG,
	"image/pjpeg":    JPEG,
	"image/x-png":    PNG,
	"image/x-ms-bmp": BMP,
	"image/x-bmp":    BMP,
	"image/tif":      TIFF,
}

// Normalize lower-cases mime, drops parameters and resolves aliases.
// "Image/JPG; q=1" becomes "image/jpeg".
func Normalize(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	if canon, ok := aliases[mime]; ok {
		return canon
	}
	return mime
}

// IsImage reports whether mime is one of the supported image types.
func IsImage(mime string) bool {
	_, ok := known[Normalize(mime)]
	return ok
}

// Name returns the short format name ("jpeg", "png", ...) or "".
func Name(mime string) string {
	return known[Normalize(mime)].name
}

// Extension returns the preferred file extension without dot, or "bin".
func Extension(mime string) string {
	if i, ok := known[Normalize(mime)]; ok {
		return i.ext
	}
	return "bin"
}

// Lossy reports whether the format's encoder honours a quality factor.
func Lossy(mime string) bool {
	return known[Normalize(mime)].lossy
}

// Sniff detects the MIME type from the leading bytes of data.
func Sniff(data []byte) string {
	return Normalize(mimetype.Detect(data).String())
}

// Resolve returns the declared type when it is meaningful and falls back
// to sniffing data otherwise.
func Resolve(declared string, data []byte) string {
	declared = Normalize(declared)
	if declared == "" || declared == Unknown {
		return Sniff(data)
	}
	return declared
}
