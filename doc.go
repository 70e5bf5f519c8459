// Package safetynet is a runtime contract-checking engine for
// dynamically-typed routines — a safety net for values that Go's static
// type system never sees (plugin payloads, decoded documents, embedded
// scripting objects, `any`-shaped call boundaries).
//
// What safetynet gives you:
//
//   - Composable predicates: build type constraints from small boolean
//     tests (Optional, Iterable, Mapping, Tuple, Typename, ...) and
//     combine them freely.
//   - Two ways to declare constraints: an explicit name→constraint table,
//     or structured free text attached to the routine (":param", ":type",
//     ":returns", ":rtype" lines).
//   - Call enforcement: wrapped routines validate their arguments and
//     return value on every call, aggregate all violations into a single
//     actionable error, and never invoke the underlying routine on bad
//     input.
//   - Construction-time structure: a class builder that inherits
//     constraints from ancestors, enforces override signature
//     compatibility, and rejects undeclared public members — before any
//     call happens.
//
// Everything is organized under three subpackages:
//
//	check/    — the predicate algebra: stateless boolean tests over values
//	typeexpr/ — textual constraint expressions, resolved against a registry
//	contract/ — routine wrapping, annotation extraction, class hooks
//
// Quick example:
//
//	r := contract.NewRoutine("resize", []string{"width", "height"}, impl,
//	    contract.WithChecks(contract.Table{"width": "int", "height": "int"}))
//	r, err := contract.Wrap(r)
//	_, err = r.Call(800, "tall") // ValidationError naming "height"
//
// All checks execute at call or construction time; nothing is persisted
// and no static guarantees are made. See each subpackage's doc.go for the
// full contract.
package safetynet
