package vpi

// Ref is an opaque reference to an object or iterator in an object store.
// The zero Ref is null.
type Ref uint32

// Null is the null reference.
const Null Ref = 0

// Undefined is returned by Adapter.Int for properties an object does not carry.
const Undefined int64 = -1

// Property selects a string or integer property of an object.
type Property int32

const (
	PropType       Property = 1
	PropName       Property = 2
	PropFullName   Property = 3
	PropSize       Property = 4
	PropFile       Property = 5
	PropLineNo     Property = 6
	PropDefName    Property = 9
	PropDefFile    Property = 15
	PropDefLineNo  Property = 16
	PropColumnNo   Property = 63
	PropElaborated Property = 2001
)

// Adapter is the low-level object model query surface.
//
// Iterate returns an iterator over the children of scope with the given
// kind, or Null when there are none. Scan returns the next child of an
// iterator as a fresh reference, or Null when exhausted; the iterator
// stays allocated until released. Every non-null reference returned by
// Iterate or Scan must be passed to Release exactly once.
type Adapter interface {
	Iterate(kind Kind, scope Ref) Ref
	Scan(iter Ref) Ref
	Str(prop Property, obj Ref) (string, bool)
	Int(prop Property, obj Ref) int64
	Release(ref Ref)
}
