// scope.go — the named-constraint registry that expression resolution
// evaluates against.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Resolution never panics; Register panics on programmer error
//     (empty name, nil constraint), mirroring option-constructor policy.

package typeexpr

import (
	"errors"
	"reflect"

	"github.com/denniskempin/safetynet/check"
)

// Sentinel errors for constraint expression resolution.
var (
	// ErrSyntax indicates a malformed constraint expression.
	ErrSyntax = errors.New("typeexpr: malformed constraint expression")

	// ErrUnresolved indicates an identifier not bound in the scope.
	ErrUnresolved = errors.New("typeexpr: unresolved identifier")

	// ErrConstructor indicates a constructor call with bad arity or a bad
	// argument (e.g. Typename without a string, Optional with two inners).
	ErrConstructor = errors.New("typeexpr: bad constructor call")
)

// Constructor builds a Predicate from already-evaluated argument
// constraints. Arguments arrive in any accepted constraint form; string
// arguments are literal text (only Typename consumes those).
type Constructor func(args ...any) (check.Predicate, error)

// Scope is a chained registry mapping names to constraints (Predicate,
// reflect.Type, func(any) bool) or to Constructors. Lookup walks the
// chain from child to parent; registration affects only the receiver.
//
// A Scope is not safe for concurrent mutation; build it fully before
// sharing it across goroutines.
type Scope struct {
	parent *Scope
	names  map[string]any
}

// NewScope returns a Scope seeded with the fixed builtin vocabulary.
func NewScope() *Scope {
	s := &Scope{names: make(map[string]any)}
	seedBuiltins(s)
	return s
}

// Child returns an empty Scope layered over s. Names registered on the
// child shadow the parent's.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, names: make(map[string]any)}
}

// Register binds name to a constraint or Constructor in this scope,
// shadowing any parent binding. It returns s for chaining and panics on
// an empty name or nil constraint.
func (s *Scope) Register(name string, constraint any) *Scope {
	if name == "" {
		panic("typeexpr: Register with empty name")
	}
	if constraint == nil {
		panic("typeexpr: Register(nil)")
	}
	s.names[name] = constraint
	return s
}

// RegisterType binds the nominal type T under the given names, or under
// T's own type name when none are given.
func RegisterType[T any](s *Scope, names ...string) *Scope {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if len(names) == 0 {
		names = []string{t.Name()}
	}
	for _, name := range names {
		s.Register(name, t)
	}
	return s
}

// Lookup resolves name through the scope chain.
func (s *Scope) Lookup(name string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.names[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// seedBuiltins installs the fixed vocabulary listed in the package doc.
func seedBuiltins(s *Scope) {
	s.Register("Optional", Constructor(ctorOptional))
	s.Register("Iterable", Constructor(ctorIterable))
	s.Register("List", Constructor(ctorIterable))
	s.Register("Mapping", Constructor(ctorMapping))
	s.Register("Dict", Constructor(ctorMapping))
	s.Register("Tuple", Constructor(ctorTuple))
	s.Register("Typename", Constructor(ctorTypename))

	s.Register("Any", check.Any)
	s.Register("any", check.Any)
	s.Register("callable", check.Callable)

	s.Register("int", reflect.TypeOf(int(0)))
	s.Register("int64", reflect.TypeOf(int64(0)))
	s.Register("float", reflect.TypeOf(float64(0)))
	s.Register("float64", reflect.TypeOf(float64(0)))
	s.Register("str", reflect.TypeOf(""))
	s.Register("string", reflect.TypeOf(""))
	s.Register("bool", reflect.TypeOf(false))
}
