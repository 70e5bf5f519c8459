// Package contract wraps dynamically-typed routines with call-time
// constraint enforcement and provides the construction-time hooks that
// propagate constraints through a class hierarchy.
//
// A Routine is a named callable over a name→value argument binding, with
// an ordered list of formal parameter names and optional attached doc
// text. Wrap resolves the routine's declared constraints — inherited map,
// then structured doc lines, then the explicit table, later sources
// winning per key — into an immutable CheckMap and returns an enforcing
// copy. Calls reconstruct the full named-argument binding from mixed
// positional/named input (named wins on collision), validate every bound
// argument, aggregate all violations into one ValidationError without
// invoking the underlying routine, and validate the return value as a
// separate error.
//
// Doc text is scanned line by line for the four structured forms:
//
//	:param <type-expr> <name>: <description>
//	:type <name>: <type-expr>
//	:returns <type-expr>: <description>
//	:rtype: <type-expr>
//
// where <type-expr> is resolved by the typeexpr package, with the
// enclosing class name bound as a forward self-reference.
//
// Classes: Go has no metaclass hook, so type construction is an explicit
// finalize step. NewClass returns a ClassBuilder; Build runs the contract
// hook (wrap every member, inherit the CheckMap of the same-named member
// on the nearest finalized ancestor) and BuildInterface additionally
// enforces interface structure: an override must keep the ancestor
// member's exact formal-parameter-name sequence, and a public member with
// no ancestor counterpart is rejected. Both are DefinitionErrors raised
// at build time, never at call time. Members whose names end in "__" are
// left untouched; a member named "init" is the constructor, wrapped but
// exempt from interface structural checks. Data attributes pass through
// the hooks unchanged.
//
// Errors (sentinel):
//
//	– ErrValidation    a call failed argument or return-value checks;
//	                   errors.As gives *ValidationError with one message
//	                   line per violation.
//	– ErrDefinition    a construction step failed (unresolved constraint,
//	                   invalid constraint value, override signature
//	                   mismatch, undeclared public member); errors.As
//	                   gives *DefinitionError.
//	– ErrUnknownMember a call or access referenced a member the class
//	                   hierarchy does not declare.
//
// Concurrency: finalized classes, wrapped routines and their CheckMaps
// are immutable and safe for concurrent calls. Building a class mutates
// only the builder; do not share a ClassBuilder across goroutines.
//
// Example usage:
//
//	b := contract.NewClass("Counter")
//	b.Method("add", []string{"self", "n"}, addImpl,
//	    contract.WithDoc(":type n: int"))
//	counter, err := b.Build()
//	obj, err := counter.New()
//	_, err = obj.Call("add", "three") // ValidationError naming n
package contract
