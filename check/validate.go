// validate.go — the generic constraint dispatcher.
//
// A "constraint" anywhere in safetynet is one of: a Predicate, a
// reflect.Type (nominal check), or a bare func(any) bool. Validate and
// Compile accept all three; everything else is ErrInvalidConstraint.

package check

import (
	"fmt"
	"reflect"
	"strings"
)

// Validate checks value against constraint, dispatching on the constraint
// form: a reflect.Type performs a nominal (assignability) check, a
// Predicate or func(any) bool is invoked directly. Any other constraint
// value returns ErrInvalidConstraint.
func Validate(value, constraint any) (bool, error) {
	p, err := Compile(constraint)
	if err != nil {
		return false, err
	}
	return p.Check(value), nil
}

// Compile normalizes constraint into a Predicate. It is the error-aware
// counterpart of the internal normalization used by the composite
// constructors and is the definition-time hook used by the contract
// package to reject invalid table entries early.
func Compile(constraint any) (Predicate, error) {
	switch c := constraint.(type) {
	case Predicate:
		return c, nil
	case reflect.Type:
		return TypeOf(c), nil
	case func(any) bool:
		return Func(c), nil
	default:
		return nil, fmt.Errorf("%w: '%v'", ErrInvalidConstraint, constraint)
	}
}

// Format returns the stable human-readable rendering of any accepted
// constraint form, for use in violation messages. Invalid constraints
// render visibly instead of failing.
func Format(constraint any) string {
	p, err := Compile(constraint)
	if err != nil {
		return fmt.Sprintf("<invalid constraint '%v'>", constraint)
	}
	return p.String()
}

// compile is the constructor-side normalization: invalid inner
// constraints become a predicate that fails every value and renders
// visibly, so the mistake surfaces in the first violation message.
func compile(constraint any) Predicate {
	p, err := Compile(constraint)
	if err != nil {
		return invalidPredicate{constraint: constraint}
	}
	return p
}

type invalidPredicate struct{ constraint any }

func (p invalidPredicate) Check(any) bool { return false }

func (p invalidPredicate) String() string {
	return fmt.Sprintf("<invalid constraint '%v'>", p.constraint)
}

// typeLabel renders a reflect.Type the way the algebra names nominal
// types: the bare type name when it has one, the full string otherwise.
func typeLabel(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// label renders an optional inner predicate, empty when unset.
func label(p Predicate) string {
	if p == nil {
		return ""
	}
	return p.String()
}

func joinLabels(labels []string) string { return strings.Join(labels, ", ") }
