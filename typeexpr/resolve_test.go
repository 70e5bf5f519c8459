// Package typeexpr_test validates expression resolution: the builtin
// vocabulary, both call/index spellings, scope chaining, forward
// self-references, and the failure sentinels.
package typeexpr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/denniskempin/safetynet/check"
	"github.com/denniskempin/safetynet/typeexpr"
)

type engine struct{ cylinders int }

// named reports a caller-chosen type name, standing in for a dynamic
// object whose class shares the enclosing type's name.
type named struct{ name string }

func (n named) TypeName() string { return n.name }

func TestResolve_NominalBuiltins(t *testing.T) {
	p, err := typeexpr.Resolve("int", nil, "")
	require.NoError(t, err)
	require.True(t, p.Check(1))
	require.False(t, p.Check("1"))

	p, err = typeexpr.Resolve("str", nil, "")
	require.NoError(t, err)
	require.True(t, p.Check("x"))
	require.False(t, p.Check(1))
}

func TestResolve_BothSpellings(t *testing.T) {
	for _, text := range []string{"Optional[int]", "Optional(int)", " Optional [ int ] "} {
		p, err := typeexpr.Resolve(text, nil, "")
		require.NoError(t, err, text)
		require.True(t, p.Check(nil), text)
		require.True(t, p.Check(1), text)
		require.False(t, p.Check(1.5), text)
	}
}

func TestResolve_Composites(t *testing.T) {
	p, err := typeexpr.Resolve("List[int]", nil, "")
	require.NoError(t, err)
	require.True(t, p.Check([]any{1, 2}))
	require.False(t, p.Check([]any{"x"}))

	p, err = typeexpr.Resolve("Dict[str, int]", nil, "")
	require.NoError(t, err)
	require.True(t, p.Check(map[string]int{"k": 1}))
	require.False(t, p.Check(map[int]int{1: 1}))

	p, err = typeexpr.Resolve("Tuple[int, str]", nil, "")
	require.NoError(t, err)
	require.True(t, p.Check([]any{1, "s"}))
	require.False(t, p.Check([]any{1}))
}

func TestResolve_Nesting(t *testing.T) {
	scope := typeexpr.NewScope()
	typeexpr.RegisterType[engine](scope)

	p, err := typeexpr.Resolve("Optional[Iterable[engine]]", scope, "")
	require.NoError(t, err)
	require.True(t, p.Check(nil))
	require.True(t, p.Check([]any{engine{cylinders: 6}}))
	require.False(t, p.Check([]any{"not an engine"}))
}

func TestResolve_BarePredicates(t *testing.T) {
	p, err := typeexpr.Resolve("callable", nil, "")
	require.NoError(t, err)
	require.True(t, p.Check(func() {}))
	require.False(t, p.Check(1))

	p, err = typeexpr.Resolve("Any", nil, "")
	require.NoError(t, err)
	require.True(t, p.Check(1))
	require.False(t, p.Check(nil))
}

func TestResolve_TypenameLiteral(t *testing.T) {
	p, err := typeexpr.Resolve("Typename('engine')", nil, "")
	require.NoError(t, err)
	require.True(t, p.Check(engine{}))
	require.False(t, p.Check(1))

	_, err = typeexpr.Resolve("Typename(int)", nil, "")
	require.ErrorIs(t, err, typeexpr.ErrConstructor)
}

func TestResolve_SelfNameShadowsScope(t *testing.T) {
	// "Vehicle" is not registered anywhere: only the self binding makes
	// it resolvable, and it matches by runtime type name.
	p, err := typeexpr.Resolve("Vehicle", typeexpr.NewScope(), "Vehicle")
	require.NoError(t, err)
	require.True(t, p.Check(named{name: "Vehicle"}))
	require.False(t, p.Check(named{name: "Bicycle"}))
	require.False(t, p.Check(nil))

	// Nested position works too.
	p, err = typeexpr.Resolve("Optional[Vehicle]", typeexpr.NewScope(), "Vehicle")
	require.NoError(t, err)
	require.True(t, p.Check(nil))
	require.True(t, p.Check(named{name: "Vehicle"}))
}

func TestResolve_UnknownIdentifier(t *testing.T) {
	_, err := typeexpr.Resolve("UnknownName", nil, "")
	require.ErrorIs(t, err, typeexpr.ErrUnresolved)
	require.Contains(t, err.Error(), "UnknownName")

	_, err = typeexpr.Resolve("Optional[UnknownName]", nil, "")
	require.ErrorIs(t, err, typeexpr.ErrUnresolved)
}

func TestResolve_SyntaxErrors(t *testing.T) {
	for _, text := range []string{"", "Optional[int", "Optional[int,]", "int)", "int str", "!", "'open"} {
		_, err := typeexpr.Resolve(text, nil, "")
		require.ErrorIs(t, err, typeexpr.ErrSyntax, "text %q", text)
	}
}

func TestResolve_ConstructorErrors(t *testing.T) {
	// Bad arity.
	_, err := typeexpr.Resolve("Optional[int, str]", nil, "")
	require.ErrorIs(t, err, typeexpr.ErrConstructor)

	// Bare constructor reference.
	_, err = typeexpr.Resolve("Optional", nil, "")
	require.ErrorIs(t, err, typeexpr.ErrConstructor)

	// Calling a non-constructor.
	_, err = typeexpr.Resolve("int(str)", nil, "")
	require.ErrorIs(t, err, typeexpr.ErrConstructor)

	// String literal outside Typename.
	_, err = typeexpr.Resolve("Iterable['int']", nil, "")
	require.ErrorIs(t, err, typeexpr.ErrConstructor)
}

func TestScope_ChildShadowsParent(t *testing.T) {
	parent := typeexpr.NewScope()
	parent.Register("thing", check.Type[int]())
	child := parent.Child()
	child.Register("thing", check.Type[string]())

	p, err := typeexpr.Resolve("thing", child, "")
	require.NoError(t, err)
	require.True(t, p.Check("x"))
	require.False(t, p.Check(1))

	// The parent binding is untouched.
	p, err = typeexpr.Resolve("thing", parent, "")
	require.NoError(t, err)
	require.True(t, p.Check(1))
}

func TestRegisterType_DefaultsToTypeName(t *testing.T) {
	scope := typeexpr.NewScope()
	typeexpr.RegisterType[engine](scope)

	p, err := typeexpr.Resolve("engine", scope, "")
	require.NoError(t, err)
	require.True(t, p.Check(engine{}))
	require.False(t, p.Check("engine"))
}

func TestRegister_Panics(t *testing.T) {
	scope := typeexpr.NewScope()
	require.Panics(t, func() { scope.Register("", check.Any) })
	require.Panics(t, func() { scope.Register("x", nil) })
}
