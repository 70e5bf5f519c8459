// Package typeexpr resolves textual constraint expressions into check
// predicates.
//
// Expressions are evaluated against an explicit registry (Scope) of named
// constraints and predicate constructors — never against arbitrary code.
// The grammar is deliberately small; both call and index spellings are
// accepted, so "Optional[int]" and "Optional(int)" are the same
// expression:
//
//	expr := ident [ '(' args ')' | '[' args ']' ] | string
//	args := [ expr { ',' expr } ]
//
// A fresh Scope (NewScope) seeds the fixed vocabulary:
//
//	– constructors: Optional, Iterable, List, Mapping, Dict, Tuple, Typename
//	– predicates:   Any, any, callable
//	– nominal names: int, int64, float, float64, str, string, bool
//
// Callers register their own nominal types with Register or RegisterType
// before resolving; scopes chain, so a per-class Child scope can shadow a
// shared one.
//
// Forward self-reference: Resolve takes a selfName. When non-empty, that
// single reserved name shadows the scope and resolves to
// check.Typename(selfName), so a routine can constrain an argument to the
// enclosing type while the type is still being defined.
//
// Any failure — unknown identifier, malformed expression, bad constructor
// arity or argument — is reported immediately as an error wrapping one of
// the sentinels below; resolution is never silently ignored.
//
// Errors (sentinel):
//
//	– ErrSyntax      the expression text is malformed.
//	– ErrUnresolved  an identifier is not bound in the scope.
//	– ErrConstructor a constructor call has bad arity or arguments.
//
// Example usage:
//
//	scope := typeexpr.NewScope()
//	typeexpr.RegisterType[Vehicle](scope, "Vehicle")
//	p, err := typeexpr.Resolve("Optional[Iterable[Vehicle]]", scope, "")
package typeexpr
