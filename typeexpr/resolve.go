// resolve.go — evaluation of parsed constraint expressions against a
// Scope, plus the builtin predicate constructors.

package typeexpr

import (
	"fmt"

	"github.com/denniskempin/safetynet/check"
)

// Resolve evaluates text as a constraint expression within scope and
// returns the resulting Predicate.
//
// selfName, when non-empty, is the enclosing type's own name: that single
// reserved identifier shadows the scope and resolves to
// check.Typename(selfName), allowing a routine to reference its
// not-yet-fully-defined enclosing type. A nil scope means the builtin
// vocabulary only.
//
// Every failure is reported immediately: ErrSyntax for malformed text,
// ErrUnresolved for unknown identifiers, ErrConstructor for bad
// constructor calls. The failing expression text is included in the
// error message.
func Resolve(text string, scope *Scope, selfName string) (check.Predicate, error) {
	if scope == nil {
		scope = NewScope()
	}
	n, err := parse(text)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", text, err)
	}
	constraint, err := eval(n, scope, selfName)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", text, err)
	}
	p, err := check.Compile(constraint)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", text, err)
	}
	return p, nil
}

// eval turns a parsed node into a constraint value (not yet necessarily a
// Predicate: bare nominal names stay reflect.Types, string literals stay
// strings for Typename to consume).
func eval(n node, scope *Scope, selfName string) (any, error) {
	switch nn := n.(type) {
	case stringNode:
		return nn.value, nil
	case identNode:
		if selfName != "" && nn.name == selfName {
			return check.Typename(selfName), nil
		}
		entry, ok := scope.Lookup(nn.name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolved, nn.name)
		}
		if _, isCtor := entry.(Constructor); isCtor {
			return nil, fmt.Errorf("%w: %s requires arguments", ErrConstructor, nn.name)
		}
		return entry, nil
	case callNode:
		if selfName != "" && nn.callee == selfName {
			return nil, fmt.Errorf("%w: %s is not a constructor", ErrConstructor, nn.callee)
		}
		entry, ok := scope.Lookup(nn.callee)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolved, nn.callee)
		}
		ctor, isCtor := entry.(Constructor)
		if !isCtor {
			return nil, fmt.Errorf("%w: %s is not a constructor", ErrConstructor, nn.callee)
		}
		args := make([]any, len(nn.args))
		for i, argNode := range nn.args {
			arg, err := eval(argNode, scope, selfName)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		p, err := ctor(args...)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unsupported expression", ErrSyntax)
	}
}

// compileArgs normalizes constructor arguments, rejecting forms the
// algebra cannot consume (e.g. a string literal outside Typename).
func compileArgs(ctor string, args []any) ([]any, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		p, err := check.Compile(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s argument %d: '%v'", ErrConstructor, ctor, i+1, arg)
		}
		out[i] = p
	}
	return out, nil
}

func ctorOptional(args ...any) (check.Predicate, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("%w: Optional takes at most one argument", ErrConstructor)
	}
	compiled, err := compileArgs("Optional", args)
	if err != nil {
		return nil, err
	}
	return check.Optional(compiled...), nil
}

func ctorIterable(args ...any) (check.Predicate, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("%w: Iterable takes at most one argument", ErrConstructor)
	}
	compiled, err := compileArgs("Iterable", args)
	if err != nil {
		return nil, err
	}
	return check.Iterable(compiled...), nil
}

func ctorMapping(args ...any) (check.Predicate, error) {
	if len(args) > 2 {
		return nil, fmt.Errorf("%w: Mapping takes at most two arguments", ErrConstructor)
	}
	compiled, err := compileArgs("Mapping", args)
	if err != nil {
		return nil, err
	}
	return check.Mapping(compiled...), nil
}

func ctorTuple(args ...any) (check.Predicate, error) {
	compiled, err := compileArgs("Tuple", args)
	if err != nil {
		return nil, err
	}
	return check.Tuple(compiled...), nil
}

func ctorTypename(args ...any) (check.Predicate, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: Typename takes exactly one argument", ErrConstructor)
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: Typename argument must be a quoted name", ErrConstructor)
	}
	return check.Typename(name), nil
}
