// Package async runs a single-shot pipeline call in its own goroutine and
// delivers exactly one result.
package async

import (
	"github.com/sourcegraph/conc/panics"
)

// Result is the outcome of one asynchronous call: a value or an error,
// never both.
type Result[T any] struct {
	Value T
	Err   error
}

// Go starts fn and returns a channel that receives its result once and is
// then closed. A panic in fn is delivered as an error. There is no
// cancellation: fn runs to completion even if nobody receives.
func Go[T any](fn func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		var res Result[T]
		if r := panics.Try(func() { res.Value, res.Err = fn() }); r != nil {
			var zero T
			res = Result[T]{Value: zero, Err: r.AsError()}
		}
		ch <- res
	}()
	return ch
}

// Await blocks until ch delivers and unpacks the result.
func Await[T any](ch <-chan Result[T]) (T, error) {
	res := <-ch
	return res.Value, res.Err
}
