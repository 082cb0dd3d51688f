package argtree

// State reports how a field appeared in the parsed input.
type State uint8

const (
	// Absent means the field was never mentioned.
	Absent State = iota // absent
	// Bare means the field was named without a value and defers to its
	// default.
	Bare // bare
	// Explicit means the field carried a value, or for product types, that
	// the keyword was declared.
	Explicit // explicit
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Bare:
		return "bare"
	case Explicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Field holds one optional value of the argument tree together with its
// [State].
type Field[T any] struct {
	value T
	state State
}

// Unset returns an absent field.
func Unset[T any]() Field[T] { return Field[T]{} }

// Default returns a field that was declared without a value.
func Default[T any]() Field[T] { return Field[T]{state: Bare} }

// Set returns a field holding an explicit value.
func Set[T any](v T) Field[T] { return Field[T]{value: v, state: Explicit} }

// State returns how the field appeared in the input.
func (f Field[T]) State() State { return f.state }

// IsPresent reports whether the field was mentioned at all.
func (f Field[T]) IsPresent() bool { return f.state != Absent }

// IsExplicit reports whether the field carries a value.
func (f Field[T]) IsExplicit() bool { return f.state == Explicit }

// Value returns the explicit value and whether there was one.
func (f Field[T]) Value() (T, bool) { return f.value, f.state == Explicit }

// Or returns the explicit value, or def when the field is bare or absent.
func (f Field[T]) Or(def T) T {
	if f.state == Explicit {
		return f.value
	}

	return def
}
