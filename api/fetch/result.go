// Package fetch holds the plumbing shared by the remote collaborators: an
// explicit result type, a retrying HTTP getter and an on-disk response cache.
package fetch

// Status says whether a lookup produced data.
type Status int

const (
	// NotFetched is the zero value: nobody asked yet.
	NotFetched Status = iota
	Found
	// Empty means the lookup ran and yielded nothing, either because the
	// service had no data or because the call failed.
	Empty
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Empty:
		return "empty"
	default:
		return "not fetched"
	}
}

// Result carries a collaborator's answer without ever surfacing a transport
// error to the caller.
type Result[T any] struct {
	Value  T
	Status Status
	Reason string
}

// FoundValue wraps a successful lookup.
func FoundValue[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: Found}
}

// EmptyResult records a lookup that produced nothing and why.
func EmptyResult[T any](reason string) Result[T] {
	return Result[T]{Status: Empty, Reason: reason}
}

// Ok reports whether the result holds a value.
func (r Result[T]) Ok() bool { return r.Status == Found }

// Fetched reports whether the lookup has been attempted.
func (r Result[T]) Fetched() bool { return r.Status != NotFetched }

// ValueOr returns the value when found, else def.
func (r Result[T]) ValueOr(def T) T {
	if r.Ok() {
		return r.Value
	}
	return def
}
