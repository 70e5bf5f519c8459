// types.go — shared data model and errors for the contract package.
//
// Error policy:
//   - Semantics branch on sentinels with errors.Is.
//   - Field-carrying error structs (ValidationError, DefinitionError) are
//     reached with errors.As and unwrap to their sentinel.

package contract

import (
	"errors"
	"strings"

	"github.com/denniskempin/safetynet/check"
)

// ReturnsKey is the reserved CheckMap key governing the return value.
const ReturnsKey = "returns"

const (
	// initName is the constructor member: wrapped like any member but
	// exempt from interface structural checks.
	initName = "init"

	// internalSuffix marks reserved members that the hooks never touch.
	internalSuffix = "__"

	// privatePrefix marks members exempt from the undeclared-public check.
	privatePrefix = "_"
)

// Sentinel errors for wrapping, calling, and class construction.
var (
	// ErrValidation indicates one or more call-time constraint failures.
	ErrValidation = errors.New("contract: validation failed")

	// ErrDefinition indicates a construction-time failure: unresolved or
	// invalid constraint, override signature mismatch, undeclared public
	// member.
	ErrDefinition = errors.New("contract: definition error")

	// ErrUnknownMember indicates a call or access to a member the class
	// hierarchy does not declare.
	ErrUnknownMember = errors.New("contract: unknown member")
)

// Table is an explicit name→constraint declaration for one routine.
// Values may be check.Predicate instances, reflect.Types, func(any) bool
// predicates, or textual expressions for the typeexpr resolver. The
// ReturnsKey entry governs the return value.
type Table map[string]any

// CheckMap is a fully resolved name→Predicate table. Once attached to a
// wrapped Routine it never changes.
type CheckMap map[string]check.Predicate

// clone returns a copy; a nil map clones to nil.
func (m CheckMap) clone() CheckMap {
	if m == nil {
		return nil
	}
	out := make(CheckMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ValidationError aggregates every constraint violation of a single call:
// one message line per failed argument, or a single line for a failed
// return value. Argument failures and return-value failures are always
// reported as separate error instances; a call whose arguments fail never
// reaches the underlying routine.
type ValidationError struct {
	// Routine is the name of the enforced routine.
	Routine string

	// Messages holds one human-readable line per violation.
	Messages []string
}

// Error joins the violation lines with newlines.
func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "\n")
}

// Is reports ErrValidation so callers can branch with errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DefinitionError reports a construction-time failure, naming the type
// and member it occurred on. Err carries the underlying cause (e.g. a
// typeexpr resolution error) when one exists.
type DefinitionError struct {
	// Class is the type under construction, empty for bare routines.
	Class string

	// Member is the routine the failure occurred on.
	Member string

	// Reason is the human-readable failure description.
	Reason string

	// Err is the underlying cause, may be nil.
	Err error
}

func (e *DefinitionError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports ErrDefinition so callers can branch with errors.Is.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrDefinition
}

// Unwrap exposes the underlying cause to errors.Is/errors.As chains.
func (e *DefinitionError) Unwrap() error { return e.Err }
