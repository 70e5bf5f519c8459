// checkers.go — the Predicate variants of the algebra.
//
// Constructor policy (per the package contract):
//   - Constructors validate their own arguments and panic on programmer
//     error (wrong arity); Check itself never panics.
//   - Inner constraints may be given in any accepted form (Predicate,
//     reflect.Type, func(any) bool); they are normalized once, at
//     construction time.

package check

import (
	"fmt"
	"reflect"
)

// Type returns a Predicate that accepts values whose dynamic type is T or
// assignable to T. When T is an interface type, any value implementing it
// is accepted, which is the nominal-subtype check for Go.
func Type[T any]() Predicate {
	return TypeOf(reflect.TypeOf((*T)(nil)).Elem())
}

// TypeOf is the non-generic form of Type for callers that already hold a
// reflect.Type. It panics on a nil type.
func TypeOf(t reflect.Type) Predicate {
	if t == nil {
		panic("check: TypeOf(nil)")
	}
	return typePredicate{t: t}
}

type typePredicate struct{ t reflect.Type }

func (p typePredicate) Check(value any) bool {
	if value == nil {
		return false
	}
	vt := reflect.TypeOf(value)
	if p.t.Kind() == reflect.Interface {
		return vt.Implements(p.t)
	}
	return vt == p.t || vt.AssignableTo(p.t)
}

func (p typePredicate) String() string { return typeLabel(p.t) }

// Typename returns a Predicate that accepts values whose runtime type
// name equals name, independent of nominal ancestry. Values implementing
// Named report their own name; everything else falls back to the reflect
// type name (pointers are dereferenced first). An empty name matches
// any value.
func Typename(name string) Predicate {
	return typenamePredicate{name: name}
}

type typenamePredicate struct{ name string }

func (p typenamePredicate) Check(value any) bool {
	if p.name == "" {
		return true
	}
	return nameOf(value) == p.name
}

func (p typenamePredicate) String() string {
	return fmt.Sprintf("Typename[%s]", p.name)
}

// nameOf reports the runtime type name used by Typename matching.
func nameOf(value any) string {
	if n, ok := value.(Named); ok {
		return n.TypeName()
	}
	t := reflect.TypeOf(value)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// Optional returns a Predicate that accepts the absence marker (nil, or a
// nil pointer/map/slice/func/chan) regardless of the inner constraint;
// any other value is delegated to inner. With no inner constraint every
// non-absent value is accepted too. Panics when given more than one inner
// constraint.
func Optional(inner ...any) Predicate {
	if len(inner) > 1 {
		panic("check: Optional takes at most one inner constraint")
	}
	p := optionalPredicate{}
	if len(inner) == 1 {
		p.inner = compile(inner[0])
	}
	return p
}

type optionalPredicate struct{ inner Predicate }

func (p optionalPredicate) Check(value any) bool {
	if absent(value) {
		return true
	}
	if p.inner == nil {
		return true
	}
	return p.inner.Check(value)
}

func (p optionalPredicate) String() string {
	if p.inner == nil {
		return "Optional[]"
	}
	return fmt.Sprintf("Optional[%s]", p.inner)
}

// absent reports whether value is the designated "absent" marker.
func absent(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Iterable returns a Predicate that accepts iterable values: slices,
// arrays, strings (per rune) and maps (per key). With an item constraint,
// every element must satisfy it; an empty iterable always passes. Panics
// when given more than one item constraint.
func Iterable(item ...any) Predicate {
	if len(item) > 1 {
		panic("check: Iterable takes at most one item constraint")
	}
	p := iterablePredicate{}
	if len(item) == 1 {
		p.item = compile(item[0])
	}
	return p
}

type iterablePredicate struct{ item Predicate }

func (p iterablePredicate) Check(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if p.item == nil {
			return true
		}
		for i := 0; i < rv.Len(); i++ {
			if !p.item.Check(rv.Index(i).Interface()) {
				return false
			}
		}
		return true
	case reflect.String:
		if p.item == nil {
			return true
		}
		for _, r := range rv.String() {
			if !p.item.Check(r) {
				return false
			}
		}
		return true
	case reflect.Map:
		if p.item == nil {
			return true
		}
		for _, k := range rv.MapKeys() {
			if !p.item.Check(k.Interface()) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (p iterablePredicate) String() string {
	if p.item == nil {
		return "Iterable[]"
	}
	return fmt.Sprintf("Iterable[%s]", p.item)
}

// Mapping returns a Predicate that accepts map values. Per-entry checks
// apply only when both a key and a value constraint are given; an empty
// mapping always passes. Panics when given more than two constraints.
func Mapping(kv ...any) Predicate {
	if len(kv) > 2 {
		panic("check: Mapping takes at most a key and a value constraint")
	}
	p := mappingPredicate{}
	if len(kv) >= 1 {
		p.key = compile(kv[0])
	}
	if len(kv) == 2 {
		p.value = compile(kv[1])
	}
	return p
}

type mappingPredicate struct{ key, value Predicate }

func (p mappingPredicate) Check(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return false
	}
	if p.key == nil || p.value == nil {
		return true
	}
	iter := rv.MapRange()
	for iter.Next() {
		if !p.key.Check(iter.Key().Interface()) {
			return false
		}
		if !p.value.Check(iter.Value().Interface()) {
			return false
		}
	}
	return true
}

func (p mappingPredicate) String() string {
	return fmt.Sprintf("Dict[%s, %s]", label(p.key), label(p.value))
}

// Tuple returns a Predicate that accepts a fixed-length ordered sequence
// (slice or array) of exactly len(items) elements with element i
// satisfying items[i]. With no items, any slice or array is accepted.
func Tuple(items ...any) Predicate {
	p := tuplePredicate{items: make([]Predicate, len(items))}
	for i, item := range items {
		p.items[i] = compile(item)
	}
	return p
}

type tuplePredicate struct{ items []Predicate }

func (p tuplePredicate) Check(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	if len(p.items) == 0 {
		return true
	}
	if rv.Len() != len(p.items) {
		return false
	}
	for i, item := range p.items {
		if !item.Check(rv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

func (p tuplePredicate) String() string {
	labels := make([]string, len(p.items))
	for i, item := range p.items {
		labels[i] = item.String()
	}
	return fmt.Sprintf("Tuple[%s]", joinLabels(labels))
}

// Func embeds an arbitrary boolean test as a Predicate. Panics on nil.
func Func(fn func(any) bool) Predicate {
	if fn == nil {
		panic("check: Func(nil)")
	}
	return funcPredicate{fn: fn}
}

type funcPredicate struct{ fn func(any) bool }

func (p funcPredicate) Check(value any) bool { return p.fn(value) }

func (p funcPredicate) String() string { return "func" }

// Any accepts every non-nil value.
var Any Predicate = anyPredicate{}

type anyPredicate struct{}

func (anyPredicate) Check(value any) bool { return value != nil }

func (anyPredicate) String() string { return "Any" }

// Callable accepts values of function kind.
var Callable Predicate = callablePredicate{}

type callablePredicate struct{}

func (callablePredicate) Check(value any) bool {
	return value != nil && reflect.TypeOf(value).Kind() == reflect.Func
}

func (callablePredicate) String() string { return "callable" }
