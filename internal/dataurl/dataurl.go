// Package dataurl serializes binary objects into base64 data URLs and
// parses them back.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AnyUserName/mktimg/internal/async"
	"github.com/AnyUserName/mktimg/internal/blob"
	"github.com/rs/zerolog/log"
)

const (
	scheme       = "data:"
	base64Marker = ";base64,"
)

// ErrMalformed is returned by Decode for strings that are not base64 data
// URLs.
var ErrMalformed = errors.New("malformed data URL")

// Prefix returns "data:<mime>;base64,".
func Prefix(mime string) string {
	return scheme + mime + base64Marker
}

// Encode reads b and returns data:<mime>;base64,<payload>. The payload is
// streamed through the encoder so blobs of any size work. A failure of
// the byte stream is returned as *blob.ReadError carrying the original
// message.
func Encode(b blob.Blob) (string, error) {
	rc, err := b.Open()
	if err != nil {
		return "", &blob.ReadError{Err: err}
	}
	defer rc.Close()

	var sb strings.Builder
	prefix := Prefix(b.Type())
	sb.WriteString(prefix)
	if s, ok := b.(interface{ Size() int64 }); ok {
		sb.Grow(base64.StdEncoding.EncodedLen(int(s.Size())))
	}

	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	n, err := io.Copy(enc, rc)
	if err != nil {
		return "", &blob.ReadError{Err: err}
	}
	if err := enc.Close(); err != nil {
		return "", err
	}

	log.Debug().Str("mime", b.Type()).Int64("bytes", n).Int("length", sb.Len()).Msg("encoded data URL")
	return sb.String(), nil
}

// EncodeAsync runs Encode on its own goroutine.
func EncodeAsync(b blob.Blob) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		return Encode(b)
	})
}

// Decode parses a base64 data URL into a blob carrying its MIME type.
// Media-type parameters other than base64 are kept in the type.
func Decode(s string) (*blob.Bytes, error) {
	if !strings.HasPrefix(s, scheme) {
		return nil, fmt.Errorf("%w: missing %q scheme", ErrMalformed, scheme)
	}
	header, payload, ok := strings.Cut(s[len(scheme):], ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload separator", ErrMalformed)
	}
	mime, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return nil, fmt.Errorf("%w: only base64 payloads are supported", ErrMalformed)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &blob.Bytes{Data: data, MIME: mime}, nil
}
