// Package result carries the outcome of a single-assignment computation:
// either a value or the error that prevented one from existing.
package result

import "github.com/amp-labs/rendezvous/internal/zero"

// Try is the outcome of an operation that either produces a value of type A
// or fails with an error. A zero Try is a success holding the zero value of A.
type Try[A any] struct {
	Value A
	Error error
}

// Ok wraps a successful value.
func Ok[A any](value A) Try[A] {
	return Try[A]{Value: value}
}

// Err wraps a failure. The zero value of A is stored alongside it.
func Err[A any](err error) Try[A] {
	return Try[A]{Error: err}
}

func (t Try[A]) IsSuccess() bool {
	return t.Error == nil
}

func (t Try[A]) IsFailure() bool {
	return t.Error != nil
}

// Get unpacks the Try into its Go-idiomatic (value, error) pair.
func (t Try[A]) Get() (A, error) { //nolint:ireturn
	if t.IsFailure() {
		return zero.Value[A](), t.Error
	}

	return t.Value, nil
}

// GetOrElse returns the held value, or defaultValue on failure.
func (t Try[A]) GetOrElse(defaultValue A) A { //nolint:ireturn
	if t.IsSuccess() {
		return t.Value
	}

	return defaultValue
}

// Map transforms a successful Try's value with f, short-circuiting on failure.
func Map[A, B any](t Try[A], f func(A) (B, error)) Try[B] {
	if t.IsFailure() {
		return Try[B]{Error: t.Error}
	}

	val, err := f(t.Value)

	return Try[B]{Value: val, Error: err}
}
