// SPDX-License-Identifier: MIT
//
// builder.go — ClassBuilder: declaration surface for dynamic types and
// the construction-time hooks that finalize them.
//
// Contract (strict):
//   - Declaration methods collect; nothing is wrapped or checked until
//     Build/BuildInterface runs the hook.
//   - Members are processed in declaration order (deterministic errors).
//   - Option and declaration functions panic on programmer error (nil
//     impl, empty name); the hooks themselves never panic — every
//     structural failure is a DefinitionError.

package contract

import (
	"fmt"
	"slices"
	"strings"

	"github.com/denniskempin/safetynet/typeexpr"
)

// ClassOption configures a ClassBuilder before declarations are added.
type ClassOption func(*ClassBuilder)

// WithParent sets the direct ancestor; its wrapped members seed the
// inherited CheckMaps and, under BuildInterface, its member signatures
// are the override contract. Panics on nil.
func WithParent(parent *Class) ClassOption {
	if parent == nil {
		panic("contract: WithParent(nil)")
	}
	return func(b *ClassBuilder) { b.parent = parent }
}

// WithClassScope sets the typeexpr scope textual member constraints
// resolve against; nil (the default) means builtins only.
func WithClassScope(scope *typeexpr.Scope) ClassOption {
	return func(b *ClassBuilder) { b.scope = scope }
}

type memberDecl struct {
	routine *Routine
	getter  bool
}

// ClassBuilder collects member declarations for one type. Build runs the
// contract hook; BuildInterface additionally enforces interface
// structure. A builder is single-use and not safe for concurrent use.
type ClassBuilder struct {
	name   string
	parent *Class
	scope  *typeexpr.Scope
	decls  []memberDecl
	attrs  map[string]any
}

// NewClass starts a builder for a type named name. Panics on an empty
// name.
func NewClass(name string, opts ...ClassOption) *ClassBuilder {
	if name == "" {
		panic("contract: NewClass with empty name")
	}
	b := &ClassBuilder{name: name, attrs: make(map[string]any)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Method declares a member routine. A redeclaration of the same name
// replaces the earlier one.
func (b *ClassBuilder) Method(name string, params []string, impl Impl, opts ...RoutineOption) *ClassBuilder {
	return b.Member(NewRoutine(name, params, impl, opts...))
}

// Member installs a prebuilt routine as a member. Routines that already
// carry a resolved CheckMap pass through the hook unchanged.
func (b *ClassBuilder) Member(r *Routine) *ClassBuilder {
	if r == nil {
		panic("contract: Member(nil)")
	}
	b.install(memberDecl{routine: r})
	return b
}

// Getter declares a computed attribute: a self-only routine whose return
// constraint is enforced on every Object.Get access.
func (b *ClassBuilder) Getter(name string, impl Impl, opts ...RoutineOption) *ClassBuilder {
	b.install(memberDecl{routine: NewRoutine(name, []string{"self"}, impl, opts...), getter: true})
	return b
}

// Attr declares a class-level data attribute. The hooks leave data
// attributes completely untouched.
func (b *ClassBuilder) Attr(name string, value any) *ClassBuilder {
	b.attrs[name] = value
	return b
}

func (b *ClassBuilder) install(decl memberDecl) {
	for i, existing := range b.decls {
		if existing.routine.name == decl.routine.name && existing.getter == decl.getter {
			b.decls[i] = decl
			return
		}
	}
	b.decls = append(b.decls, decl)
}

// Build finalizes the type with the contract hook: every declared member
// not already wrapped is wrapped with enforcement, inheriting the
// CheckMap of the same-named member on the nearest contract ancestor.
// Members named with the "__" suffix are installed untouched. When the
// parent is an interface class, interface structural rules stay in force
// for this class too.
func (b *ClassBuilder) Build() (*Class, error) {
	return b.finalize(false)
}

// BuildInterface finalizes like Build and additionally enforces, against
// a contract ancestor, the interface structural rules for every declared
// member except the constructor:
//
//   - an override must repeat the ancestor member's formal parameter
//     names exactly and in order;
//   - a public member (no "_" prefix) must have an ancestor counterpart.
//
// Violations are DefinitionErrors; construction aborts and no class is
// returned.
func (b *ClassBuilder) BuildInterface() (*Class, error) {
	return b.finalize(true)
}

// finalize is the construction hook shared by Build and BuildInterface.
// Per member: inherited-map lookup, structural checks (interface only),
// extract+resolve, wrap, install.
func (b *ClassBuilder) finalize(iface bool) (*Class, error) {
	if b.parent != nil && b.parent.iface {
		iface = true
	}
	cls := &Class{
		name:    b.name,
		parent:  b.parent,
		members: make(map[string]*Routine),
		getters: make(map[string]*Routine),
		attrs:   make(map[string]any, len(b.attrs)),
		iface:   iface,
	}
	for k, v := range b.attrs {
		cls.attrs[k] = v
	}

	for _, decl := range b.decls {
		r := decl.routine

		// Reserved members stay untouched: no wrapping, no structure.
		if strings.HasSuffix(r.name, internalSuffix) {
			cls.installMember(decl, r)
			continue
		}

		parentMember, owner, inherited := b.parentMember(r.name, decl.getter)

		if iface && b.parent != nil && r.name != initName {
			if err := b.checkStructure(r, parentMember, owner, inherited); err != nil {
				return nil, err
			}
		}

		var inheritedChecks CheckMap
		if inherited {
			inheritedChecks = parentMember.Checks()
		}
		wrapped, err := Wrap(r,
			WithScope(b.scope),
			WithSelfName(b.name),
			WithInherited(inheritedChecks),
		)
		if err != nil {
			return nil, b.withClass(err)
		}
		cls.installMember(decl, wrapped)
	}
	return cls, nil
}

func (c *Class) installMember(decl memberDecl, r *Routine) {
	if decl.getter {
		c.getters[decl.routine.name] = r
	} else {
		c.members[decl.routine.name] = r
	}
}

// parentMember resolves the same-named member on the ancestor chain,
// preferring the member/getter table matching the declaration kind.
func (b *ClassBuilder) parentMember(name string, getter bool) (*Routine, *Class, bool) {
	if b.parent == nil {
		return nil, nil, false
	}
	if getter {
		if r, owner, ok := lookupGetter(b.parent, name); ok {
			return r, owner, true
		}
		return nil, nil, false
	}
	r, owner, ok := lookupAny(b.parent, name)
	return r, owner, ok
}

// checkStructure applies the interface rules for one member, at
// construction time only.
func (b *ClassBuilder) checkStructure(r *Routine, parentMember *Routine, owner *Class, exists bool) error {
	if exists && parentMember.wrapped && !slices.Equal(parentMember.params, r.params) {
		return &DefinitionError{
			Class:  b.name,
			Member: r.name,
			Reason: fmt.Sprintf("overriding %s.%s in %s with different argument names",
				owner.name, r.name, b.name),
		}
	}
	if !exists && !strings.HasPrefix(r.name, privatePrefix) {
		return &DefinitionError{
			Class:  b.name,
			Member: r.name,
			Reason: fmt.Sprintf("public member %s.%s has not been declared in %s",
				b.name, r.name, b.parent.name),
		}
	}
	return nil
}

// withClass stamps the class name onto DefinitionErrors coming out of
// member wrapping.
func (b *ClassBuilder) withClass(err error) error {
	if de, ok := err.(*DefinitionError); ok && de.Class == "" {
		de.Class = b.name
	}
	return err
}
