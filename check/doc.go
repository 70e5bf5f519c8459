// Package check defines the predicate algebra: small, composable,
// stateless boolean tests over runtime values, used as type constraints
// by the contract and typeexpr packages.
//
// A Predicate is a pure function of a value to bool plus a stable textual
// rendering used in error messages. Predicates are immutable once built
// and never mutate the values they inspect.
//
// Variants:
//
//	– Type[T]() / TypeOf(t)  nominal match: the value's dynamic type is T
//	                         or assignable to T (interface satisfaction
//	                         covers subtyping).
//	– Typename(name)         duck-typed match: the value's runtime type
//	                         name equals name, independent of ancestry.
//	                         Used for forward references to types that are
//	                         not fully defined yet.
//	– Optional(inner?)       accepts the absence marker (nil, or a nil
//	                         pointer/map/slice/func/chan), else delegates.
//	– Iterable(item?)        slices, arrays, strings and maps; optional
//	                         per-item constraint; empty always passes.
//	– Mapping(key?, value?)  maps; per-entry constraints apply only when
//	                         both are given; empty always passes.
//	– Tuple(p1..pn)          fixed-length ordered sequence, element-wise.
//	– Func(fn)               embeds an arbitrary func(any) bool.
//	– Any                    any non-nil value.
//	– Callable               any value of function kind.
//
// Constraints in the wider library are not always Predicates: a
// reflect.Type or a bare func(any) bool is accepted anywhere a constraint
// is, and Validate dispatches over all three forms. Anything else is a
// definition error (ErrInvalidConstraint).
//
// Errors (sentinel):
//
//	– ErrInvalidConstraint  a constraint value is not a Predicate,
//	                        reflect.Type, or func(any) bool.
//
// Known limitation, by contract: Typename matches by name only, so two
// unrelated types that happen to share a name are accepted
// interchangeably. This is a distinct variant from Type/TypeOf and is
// intentionally not tightened.
//
// Example usage:
//
//	p := check.Mapping(check.Type[string](), check.Type[int]())
//	p.Check(map[string]int{"k": 1}) // true
//	p.Check(map[int]int{1: 1})      // false
package check
