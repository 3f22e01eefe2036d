// Package blob models binary objects tagged with a MIME type: the source
// image handed to the pipeline, the encoded image it returns, and any
// other payload that needs to become a data URL.
package blob

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// Blob is an opaque byte source with a MIME type.
type Blob interface {
	// Type returns the MIME type of the payload, e.g. "image/jpeg".
	Type() string

	// Open returns a fresh reader over the payload.
	Open() (io.ReadCloser, error)
}

// ReadError reports a failure of the underlying byte read. Its message is
// the message of the low-level error, which is also what Unwrap returns.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// Bytes is an in-memory blob.
type Bytes struct {
	Data []byte
	MIME string
}

// NewBytes copies data so later changes by the caller don't leak in.
func NewBytes(data []byte, mime string) *Bytes {
	return &Bytes{Data: bytes.Clone(data), MIME: mime}
}

func (b *Bytes) Type() string { return b.MIME }
func (b *Bytes) Size() int64  { return int64(len(b.Data)) }

func (b *Bytes) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

// File is a blob backed by a file on disk.
type File struct {
	Path string
	MIME string
}

// NewFile returns a File blob for path. When mime is empty the type is
// sniffed from the file header.
func NewFile(path, mime string) (*File, error) {
	if mime == "" {
		m, err := mimetype.DetectFile(path)
		if err != nil {
			return nil, &ReadError{Err: err}
		}
		mime = m.String()
	}
	return &File{Path: path, MIME: mime}, nil
}

func (f *File) Type() string { return f.MIME }

func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// ErrConsumed is returned when a stream blob is opened a second time.
var ErrConsumed = errors.New("blob: stream already consumed")

type stream struct {
	mu   sync.Mutex
	r    io.Reader
	mime string
}

// FromReader wraps a one-shot reader. The returned blob can be opened once.
func FromReader(r io.Reader, mime string) Blob {
	return &stream{r: r, mime: mime}
}

func (s *stream) Type() string { return s.mime }

func (s *stream) Open() (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.r == nil {
		return nil, ErrConsumed
	}
	r := s.r
	s.r = nil
	if rc, ok := r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(r), nil
}

// ReadAll opens b and reads it to the end. Open and read failures are
// returned as *ReadError.
func ReadAll(b Blob) ([]byte, error) {
	rc, err := b.Open()
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	return data, nil
}
