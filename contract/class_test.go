package contract_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/denniskempin/safetynet/check"
	"github.com/denniskempin/safetynet/contract"
	"github.com/denniskempin/safetynet/typeexpr"
)

// ContractHookSuite groups tests for Build: member wrapping, constraint
// inheritance, constructors, getters, and the parts the hook must leave
// alone.
type ContractHookSuite struct {
	suite.Suite
}

func (s *ContractHookSuite) TestMembersAreEnforced() {
	b := contract.NewClass("Counter")
	b.Method("add", []string{"self", "n"},
		func(args map[string]any) any { return args["n"] },
		contract.WithDoc(":type n: int"))
	counter, err := b.Build()
	require.NoError(s.T(), err)

	obj, err := counter.New()
	require.NoError(s.T(), err)

	ret, err := obj.Call("add", 3)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, ret)

	_, err = obj.Call("add", "three")
	require.ErrorIs(s.T(), err, contract.ErrValidation)
}

func (s *ContractHookSuite) TestSubclassInheritsChecks() {
	base, err := contract.NewClass("Base").
		Method("poke", []string{"self", "x"},
			func(args map[string]any) any { return nil },
			contract.WithDoc(":type x: int")).
		Build()
	require.NoError(s.T(), err)

	// The override declares no constraints of its own: it inherits the
	// ancestor's predicate for x exactly.
	sub, err := contract.NewClass("Sub", contract.WithParent(base)).
		Method("poke", []string{"self", "x"},
			func(args map[string]any) any { return nil }).
		Build()
	require.NoError(s.T(), err)

	obj, err := sub.New()
	require.NoError(s.T(), err)
	_, err = obj.Call("poke", 1)
	require.NoError(s.T(), err)
	_, err = obj.Call("poke", "x")
	require.ErrorIs(s.T(), err, contract.ErrValidation)
}

func (s *ContractHookSuite) TestChildDeclarationsWinPerKey() {
	base, err := contract.NewClass("Base").
		Method("mix", []string{"self", "a", "b"},
			func(args map[string]any) any { return nil },
			contract.WithChecks(contract.Table{"a": "int", "b": "int"})).
		Build()
	require.NoError(s.T(), err)

	// The child redeclares only a; b keeps the inherited predicate.
	sub, err := contract.NewClass("Sub", contract.WithParent(base)).
		Method("mix", []string{"self", "a", "b"},
			func(args map[string]any) any { return nil },
			contract.WithChecks(contract.Table{"a": "str"})).
		Build()
	require.NoError(s.T(), err)

	obj, err := sub.New()
	require.NoError(s.T(), err)
	_, err = obj.Call("mix", "text", 2)
	require.NoError(s.T(), err)
	_, err = obj.Call("mix", 1, 2)
	require.ErrorIs(s.T(), err, contract.ErrValidation, "child narrowed a to str")
	_, err = obj.Call("mix", "text", "two")
	require.ErrorIs(s.T(), err, contract.ErrValidation, "b still inherited as int")
}

func (s *ContractHookSuite) TestMembersOnlyOnAncestorStayCallable() {
	base, err := contract.NewClass("Base").
		Method("greet", []string{"self", "name"},
			func(args map[string]any) any { return args["name"] },
			contract.WithDoc(":type name: str")).
		Build()
	require.NoError(s.T(), err)

	sub, err := contract.NewClass("Sub", contract.WithParent(base)).Build()
	require.NoError(s.T(), err)

	obj, err := sub.New()
	require.NoError(s.T(), err)
	ret, err := obj.Call("greet", "hi")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "hi", ret)
	_, err = obj.Call("greet", 1)
	require.ErrorIs(s.T(), err, contract.ErrValidation)
}

func (s *ContractHookSuite) TestClassScopeResolvesRegisteredTypes() {
	type token struct{ id int }
	scope := typeexpr.NewScope()
	typeexpr.RegisterType[token](scope, "Token")

	gate, err := contract.NewClass("Gate", contract.WithClassScope(scope)).
		Method("admit", []string{"self", "t"},
			func(args map[string]any) any { return nil },
			contract.WithDoc(":type t: Token")).
		Build()
	require.NoError(s.T(), err)

	obj, err := gate.New()
	require.NoError(s.T(), err)
	_, err = obj.Call("admit", token{id: 1})
	require.NoError(s.T(), err)
	_, err = obj.Call("admit", "badge")
	require.ErrorIs(s.T(), err, contract.ErrValidation)
}

func (s *ContractHookSuite) TestForwardSelfReference() {
	// "Mirror" is not registered in any scope: only the injected
	// self-name binding resolves it, by runtime type name.
	mirror, err := contract.NewClass("Mirror").
		Method("reflect", []string{"self", "other"},
			func(args map[string]any) any { return nil },
			contract.WithDoc(":type other: Mirror")).
		Build()
	require.NoError(s.T(), err)

	obj, err := mirror.New()
	require.NoError(s.T(), err)
	other, err := mirror.New()
	require.NoError(s.T(), err)

	_, err = obj.Call("reflect", other)
	require.NoError(s.T(), err, "instances of the enclosing type are accepted")
	_, err = obj.Call("reflect", nil)
	require.ErrorIs(s.T(), err, contract.ErrValidation)
	_, err = obj.Call("reflect", 42)
	require.ErrorIs(s.T(), err, contract.ErrValidation)

	// Name-equality matching: a same-named unrelated class is accepted.
	doppel, err := contract.NewClass("Mirror").Build()
	require.NoError(s.T(), err)
	imposter, err := doppel.New()
	require.NoError(s.T(), err)
	_, err = obj.Call("reflect", imposter)
	require.NoError(s.T(), err)
}

func (s *ContractHookSuite) TestInitIsEnforced() {
	cls, err := contract.NewClass("Example").
		Method("init", []string{"self", "a", "b"},
			func(args map[string]any) any { return nil },
			contract.WithDoc(" :param bool a:\n :param str b:\n")).
		Build()
	require.NoError(s.T(), err)

	_, err = cls.New(false, "str")
	require.NoError(s.T(), err)
	_, err = cls.New(true, 1)
	require.ErrorIs(s.T(), err, contract.ErrValidation)
	_, err = cls.New(1, "str")
	require.ErrorIs(s.T(), err, contract.ErrValidation)
}

func (s *ContractHookSuite) TestNewWithoutInitRejectsArguments() {
	cls, err := contract.NewClass("Bare").Build()
	require.NoError(s.T(), err)

	_, err = cls.New()
	require.NoError(s.T(), err)
	_, err = cls.New(1)
	require.ErrorIs(s.T(), err, contract.ErrUnknownMember)
}

func (s *ContractHookSuite) TestGetterReturnIsEnforced() {
	cls, err := contract.NewClass("Example").
		Getter("valid", func(args map[string]any) any { return 42 },
			contract.WithDoc(":returns int: the answer")).
		Getter("invalid", func(args map[string]any) any { return "42" },
			contract.WithDoc(":returns int: lies")).
		Build()
	require.NoError(s.T(), err)

	obj, err := cls.New()
	require.NoError(s.T(), err)

	v, err := obj.Get("valid")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 42, v)

	_, err = obj.Get("invalid")
	require.ErrorIs(s.T(), err, contract.ErrValidation)
}

func (s *ContractHookSuite) TestDataAttributesUntouched() {
	cls, err := contract.NewClass("Example").
		Attr("variable", 1).
		Build()
	require.NoError(s.T(), err)

	v, ok := cls.Attr("variable")
	require.True(s.T(), ok)
	require.Equal(s.T(), 1, v)

	obj, err := cls.New()
	require.NoError(s.T(), err)
	got, err := obj.Get("variable")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, got)

	// Instance fields shadow class attributes and stay unchecked.
	obj.Set("variable", "free-form")
	got, err = obj.Get("variable")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "free-form", got)
}

func (s *ContractHookSuite) TestReservedMembersUntouched() {
	// A "__"-suffixed member keeps its declared table unresolved and
	// unenforced.
	cls, err := contract.NewClass("Example").
		Method("marker__", []string{"self", "a"},
			func(args map[string]any) any { return args["a"] },
			contract.WithChecks(contract.Table{"a": "int"})).
		Build()
	require.NoError(s.T(), err)

	m, ok := cls.Member("marker__")
	require.True(s.T(), ok)
	require.False(s.T(), m.Wrapped())

	obj, err := cls.New()
	require.NoError(s.T(), err)
	ret, err := obj.Call("marker__", "not an int")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "not an int", ret)
}

func (s *ContractHookSuite) TestPreWrappedMemberPassesThrough() {
	r, err := contract.Wrap(
		contract.NewRoutine("poke", []string{"self", "x"},
			func(args map[string]any) any { return nil },
			contract.WithChecks(contract.Table{"x": "int"})))
	require.NoError(s.T(), err)

	cls, err := contract.NewClass("Example").Member(r).Build()
	require.NoError(s.T(), err)

	installed, ok := cls.Member("poke")
	require.True(s.T(), ok)
	require.Same(s.T(), r, installed, "already-wrapped routines are not re-wrapped")

	obj, err := cls.New()
	require.NoError(s.T(), err)
	_, err = obj.Call("poke", "x")
	require.ErrorIs(s.T(), err, contract.ErrValidation)
}

func (s *ContractHookSuite) TestUnknownMemberCall() {
	cls, err := contract.NewClass("Example").Build()
	require.NoError(s.T(), err)
	obj, err := cls.New()
	require.NoError(s.T(), err)

	_, err = obj.Call("missing")
	require.ErrorIs(s.T(), err, contract.ErrUnknownMember)
	_, err = obj.Get("missing")
	require.ErrorIs(s.T(), err, contract.ErrUnknownMember)
}

func (s *ContractHookSuite) TestUnresolvedMemberConstraintAbortsBuild() {
	_, err := contract.NewClass("Example").
		Method("poke", []string{"self", "x"},
			func(args map[string]any) any { return nil },
			contract.WithDoc(":type x: UnknownName")).
		Build()
	require.ErrorIs(s.T(), err, contract.ErrDefinition)

	var de *contract.DefinitionError
	require.ErrorAs(s.T(), err, &de)
	require.Equal(s.T(), "Example", de.Class)
	require.Equal(s.T(), "poke", de.Member)
}

func (s *ContractHookSuite) TestSelfParameterCanBeConstrained() {
	cls, err := contract.NewClass("Strict").
		Method("id", []string{"self"},
			func(args map[string]any) any { return args["self"] },
			contract.WithChecks(contract.Table{"self": "Strict"})).
		Build()
	require.NoError(s.T(), err)

	obj, err := cls.New()
	require.NoError(s.T(), err)
	ret, err := obj.Call("id")
	require.NoError(s.T(), err)
	require.Same(s.T(), obj, ret)
}

func TestContractHookSuite(t *testing.T) {
	suite.Run(t, new(ContractHookSuite))
}

func TestObjectTypeName(t *testing.T) {
	cls, err := contract.NewClass("Vehicle").Build()
	require.NoError(t, err)
	obj, err := cls.New()
	require.NoError(t, err)

	require.Equal(t, "Vehicle", obj.TypeName())
	require.True(t, check.Typename("Vehicle").Check(obj))
	require.Same(t, cls, obj.Class())
}
