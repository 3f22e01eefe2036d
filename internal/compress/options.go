package compress

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultMaxWidth = 1920
	DefaultQuality  = 0.8
)

// Validation selects how Compress treats out-of-range parameters.
type Validation int

const (
	// ValidateNone passes parameters through unchecked. A non-positive
	// MaxWidth fails later with an encode error; a quality outside [0,1]
	// falls back to the encoder default.
	ValidateNone Validation = iota

	// ValidateStrict rejects MaxWidth <= 0 and Quality outside [0,1]
	// with ErrInvalidParams before the source is read.
	ValidateStrict
)

func (v Validation) String() string {
	switch v {
	case ValidateNone:
		return "none"
	case ValidateStrict:
		return "strict"
	default:
		return fmt.Sprintf("Validation(%d)", int(v))
	}
}

// ErrInvalidParams is returned under ValidateStrict.
var ErrInvalidParams = errors.New("invalid compression parameters")

// Options are the per-call encoding parameters.
type Options struct {
	MaxWidth   int
	Quality    float64
	Validation Validation
}

// DefaultOptions returns 1920px, quality 0.8, no validation.
func DefaultOptions() Options {
	return Options{MaxWidth: DefaultMaxWidth, Quality: DefaultQuality}
}

func (o Options) validate() error {
	if o.Validation != ValidateStrict {
		return nil
	}
	if o.MaxWidth <= 0 {
		return fmt.Errorf("%w: max width %d must be positive", ErrInvalidParams, o.MaxWidth)
	}
	if math.IsNaN(o.Quality) || o.Quality < 0 || o.Quality > 1 {
		return fmt.Errorf("%w: quality %v outside [0,1]", ErrInvalidParams, o.Quality)
	}
	return nil
}
