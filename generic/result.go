package generic

import "fmt"

// Result pairs a value with the error from producing it.
type Result[T any] struct {
	Value T
	Error error
}

func NewResult[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Error: err}
}

// Expect returns the value, or panics with msg and the contained error.
func (r Result[T]) Expect(msg string) T {
	if !r.IsOk() {
		panic(fmt.Errorf("%s: %w", msg, r.Error))
	}
	return r.Value
}

func (r Result[T]) IsOk() bool {
	return r.Error == nil
}

func (r Result[T]) Unwrap() T {
	return r.Expect("tried to Unwrap() an error")
}

// Unwrap is for calls that cannot fail in practice, e.g. Unwrap(uuid.NewRandom()).
func Unwrap[T any](value T, err error) T {
	return NewResult(value, err).Unwrap()
}

// Unwrap_ is like Unwrap, but for calls that only return an error.
func Unwrap_(err error) {
	NewResult(NewVoid(), err).Unwrap()
}
