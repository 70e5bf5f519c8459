// types.go — the Predicate interface, the Named hook for duck-typed
// name matching, and the sentinel errors shared by the algebra.

package check

import "errors"

// Sentinel errors for constraint validation.
var (
	// ErrInvalidConstraint indicates a constraint value that is none of:
	// a Predicate, a reflect.Type, or a func(any) bool.
	ErrInvalidConstraint = errors.New("check: invalid constraint")
)

// Predicate is a composable boolean test over a runtime value.
//
// Check reports whether value satisfies the predicate. It must be pure:
// no side effects, no mutation of value or shared state.
// String returns the stable rendering used in violation messages
// (e.g. "Optional[int]", "Dict[str, int]").
type Predicate interface {
	Check(value any) bool
	String() string
}

// Named lets a value report its own runtime type name to Typename
// predicates. Dynamic objects (contract.Object) implement Named so that
// forward references to a class resolve by name; plain Go values fall
// back to their reflect type name.
type Named interface {
	TypeName() string
}
