package models

// Resolution is the outcome of an enrichment lookup (epic, linked issues).
// A zero Value with a nil Err means the lookup ran and found nothing; a
// non-nil Err means the lookup itself could not be completed.
type Resolution[T any] struct {
	Value T
	Err   error
}

// Resolved wraps a successful lookup result.
func Resolved[T any](value T) Resolution[T] {
	return Resolution[T]{Value: value}
}

// Unavailable wraps a failed lookup, keeping fallback as the value callers see.
func Unavailable[T any](fallback T, err error) Resolution[T] {
	return Resolution[T]{Value: fallback, Err: err}
}

// Unavailable reports whether the lookup failed rather than found nothing.
func (r Resolution[T]) Unavailable() bool {
	return r.Err != nil
}
