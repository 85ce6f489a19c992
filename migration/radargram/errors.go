package radargram

import "fmt"

// Kind identifies the taxonomy of errors a migration call can raise. All
// kinds are fatal to the call that produced them; none are retryable.
type Kind int

const (
	// ShapeMismatch means samples dimensions do not match (snum, tnum).
	ShapeMismatch Kind = iota
	// InvalidVelocitySpec means the velocity spec has the wrong column
	// count, fewer than two rows for the layered/gridded variants, or
	// non-monotonic depths.
	InvalidVelocitySpec
	// DistanceUnset means a v(x,z) migration was requested but every
	// entry of Radargram.Distance is zero.
	DistanceUnset
	// OutOfRange means the requested two-way time exceeds the
	// interpolable range of the velocity model.
	OutOfRange
	// VelocityFileUnreadable means the supplied velocity filename could
	// not be parsed into a velocity spec.
	VelocityFileUnreadable
	// FilterInstability is reserved for future use by the finite
	// difference branch; nothing raises it today.
	FilterInstability
)

func (k Kind) String() string {
	switch k {
	case ShapeMismatch:
		return "ShapeMismatch"
	case InvalidVelocitySpec:
		return "InvalidVelocitySpec"
	case DistanceUnset:
		return "DistanceUnset"
	case OutOfRange:
		return "OutOfRange"
	case VelocityFileUnreadable:
		return "VelocityFileUnreadable"
	case FilterInstability:
		return "FilterInstability"
	default:
		return "Unknown"
	}
}

// Error is the single tagged failure value surfaced to migration callers.
// No partial migration is ever returned alongside a non-nil Error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error of the given kind from a format string.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around a lower-level cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
