// routine.go — the Routine type, constraint extraction, and call-time
// enforcement.

package contract

import (
	"fmt"
	"sort"

	"github.com/denniskempin/safetynet/check"
	"github.com/denniskempin/safetynet/typeexpr"
)

// Impl is the implementation of a dynamically-typed routine. It receives
// the full name→value argument binding; the enforcement layer guarantees
// the binding was validated before Impl runs.
type Impl func(args map[string]any) any

// Routine is a named dynamically-typed callable: an ordered list of
// formal parameter names, optional doc text and declared constraint
// table, and — after Wrap — an immutable resolved CheckMap.
type Routine struct {
	name   string
	doc    string
	params []string
	table  Table
	impl   Impl

	// set by Wrap; immutable afterwards
	checks  CheckMap
	wrapped bool
}

// RoutineOption configures a Routine at declaration time.
type RoutineOption func(*Routine)

// WithDoc attaches structured doc text (see the package doc for the line
// grammar).
func WithDoc(doc string) RoutineOption {
	return func(r *Routine) { r.doc = doc }
}

// WithChecks attaches an explicit constraint table. Table entries take
// precedence over doc-derived and inherited constraints for the same key.
func WithChecks(table Table) RoutineOption {
	return func(r *Routine) { r.table = table }
}

// NewRoutine declares a routine with its ordered formal parameter names.
// Panics on an empty name or nil impl; constraints are not resolved until
// Wrap.
func NewRoutine(name string, params []string, impl Impl, opts ...RoutineOption) *Routine {
	if name == "" {
		panic("contract: NewRoutine with empty name")
	}
	if impl == nil {
		panic("contract: NewRoutine(nil impl)")
	}
	r := &Routine{
		name:   name,
		params: append([]string(nil), params...),
		impl:   impl,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the routine's declared name.
func (r *Routine) Name() string { return r.name }

// Doc returns the routine's doc text, preserved across wrapping.
func (r *Routine) Doc() string { return r.doc }

// Params returns a copy of the ordered formal parameter names.
func (r *Routine) Params() []string {
	return append([]string(nil), r.params...)
}

// Checks returns a copy of the resolved CheckMap, nil when unwrapped.
func (r *Routine) Checks() CheckMap { return r.checks.clone() }

// Wrapped reports whether the routine carries a resolved CheckMap.
func (r *Routine) Wrapped() bool { return r.wrapped }

// Impl returns the underlying implementation, for introspection.
func (r *Routine) Impl() Impl { return r.impl }

// WrapOption threads resolver context into Wrap.
type WrapOption func(*wrapConfig)

type wrapConfig struct {
	scope     *typeexpr.Scope
	selfName  string
	inherited CheckMap
}

// WithScope sets the typeexpr scope textual constraints resolve against;
// nil means the builtin vocabulary only.
func WithScope(s *typeexpr.Scope) WrapOption {
	return func(c *wrapConfig) { c.scope = s }
}

// WithSelfName sets the enclosing type's name for forward
// self-references in textual constraints.
func WithSelfName(name string) WrapOption {
	return func(c *wrapConfig) { c.selfName = name }
}

// WithInherited seeds extraction with an ancestor's resolved CheckMap;
// the routine's own declarations override it per key.
func WithInherited(m CheckMap) WrapOption {
	return func(c *wrapConfig) { c.inherited = m }
}

// Wrap resolves r's constraints into a CheckMap and returns an enforcing
// copy of r. A routine already carrying a CheckMap is returned unchanged
// (wrapping is idempotent), as is a routine with no constraints at all.
// Name, params and doc metadata carry over to the wrapped copy.
func Wrap(r *Routine, opts ...WrapOption) (*Routine, error) {
	if r == nil {
		panic("contract: Wrap(nil)")
	}
	if r.wrapped || r.checks != nil {
		return r, nil
	}
	var cfg wrapConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	checks, err := extract(r, cfg)
	if err != nil {
		return nil, err
	}
	if len(checks) == 0 {
		return r, nil
	}
	wrapped := *r
	wrapped.checks = checks
	wrapped.wrapped = true
	return &wrapped, nil
}

// extract merges inherited, doc-derived and table constraints (in that
// precedence order, later wins) and resolves every still-textual value.
func extract(r *Routine, cfg wrapConfig) (CheckMap, error) {
	merged := make(map[string]any)
	for k, p := range cfg.inherited {
		merged[k] = p
	}
	for k, text := range parseDoc(r.doc) {
		merged[k] = text
	}
	for k, v := range r.table {
		merged[k] = v
	}
	if len(merged) == 0 {
		return nil, nil
	}

	checks := make(CheckMap, len(merged))
	for key, constraint := range merged {
		switch c := constraint.(type) {
		case string:
			p, err := typeexpr.Resolve(c, cfg.scope, cfg.selfName)
			if err != nil {
				return nil, &DefinitionError{
					Member: r.name,
					Reason: fmt.Sprintf("cannot resolve constraint for %q", key),
					Err:    err,
				}
			}
			checks[key] = p
		default:
			p, err := check.Compile(constraint)
			if err != nil {
				return nil, &DefinitionError{
					Member: r.name,
					Reason: fmt.Sprintf("invalid constraint for %q", key),
					Err:    err,
				}
			}
			checks[key] = p
		}
	}
	return checks, nil
}

// Call invokes the routine with positional arguments only.
func (r *Routine) Call(pos ...any) (any, error) {
	return r.CallNamed(nil, pos...)
}

// CallNamed reconstructs the full name→value binding — positional
// arguments paired with the formal parameter names in declared order,
// then named arguments overlaid (name wins on collision) — validates it,
// invokes the implementation, and validates the return value.
//
// All argument violations of one call are aggregated into a single
// ValidationError and the implementation is not invoked. A return-value
// violation is reported as its own ValidationError, alongside the
// (already produced) return value.
func (r *Routine) CallNamed(named map[string]any, pos ...any) (any, error) {
	bound := r.bind(pos, named)
	if r.wrapped {
		if msgs := r.checkArgs(bound); len(msgs) > 0 {
			return nil, &ValidationError{Routine: r.name, Messages: msgs}
		}
	}
	ret := r.impl(bound)
	if r.wrapped {
		if p, ok := r.checks[ReturnsKey]; ok && !p.Check(ret) {
			msg := fmt.Sprintf("Invalid return value '%v'. Expected %s", ret, p)
			return ret, &ValidationError{Routine: r.name, Messages: []string{msg}}
		}
	}
	return ret, nil
}

// bind pairs positional arguments with formal names; surplus positional
// arguments are dropped, named arguments overwrite positional ones.
func (r *Routine) bind(pos []any, named map[string]any) map[string]any {
	bound := make(map[string]any, len(pos)+len(named))
	for i, v := range pos {
		if i < len(r.params) {
			bound[r.params[i]] = v
		}
	}
	for k, v := range named {
		bound[k] = v
	}
	return bound
}

// checkArgs validates every bound name present in the CheckMap and
// returns one message line per failure, in deterministic order: declared
// parameters first, then any extra named arguments sorted.
func (r *Routine) checkArgs(bound map[string]any) []string {
	var msgs []string
	seen := make(map[string]bool, len(r.params))
	for _, name := range r.params {
		seen[name] = true
		if msg, bad := r.checkArg(name, bound); bad {
			msgs = append(msgs, msg)
		}
	}
	extras := make([]string, 0, len(bound))
	for name := range bound {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		if msg, bad := r.checkArg(name, bound); bad {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func (r *Routine) checkArg(name string, bound map[string]any) (string, bool) {
	value, isBound := bound[name]
	if !isBound {
		return "", false
	}
	p, constrained := r.checks[name]
	if !constrained || p.Check(value) {
		return "", false
	}
	return fmt.Sprintf("Invalid value '%v' for argument %s. Expected %s", value, name, p), true
}
