// class.go — the finalized dynamic type model: Class and Object.
//
// A Class only ever comes out of a ClassBuilder hook (Build or
// BuildInterface), so every Class in an ancestor chain has already been
// processed: members wrapped, constraints inherited, structure checked.
// Classes and their member tables are immutable after finalization.

package contract

import "fmt"

// Class is a finalized dynamic type. Member lookup walks the ancestor
// chain, so members declared only on an ancestor are callable on any
// descendant's instances.
type Class struct {
	name    string
	parent  *Class
	members map[string]*Routine
	getters map[string]*Routine
	attrs   map[string]any
	iface   bool
}

// Name returns the class name. Instances report it as their Typename.
func (c *Class) Name() string { return c.name }

// Parent returns the direct ancestor, nil for a root class.
func (c *Class) Parent() *Class { return c.parent }

// Interface reports whether interface structural rules apply to this
// class and its descendants.
func (c *Class) Interface() bool { return c.iface }

// Member resolves a member routine by name through the ancestor chain.
func (c *Class) Member(name string) (*Routine, bool) {
	r, _, ok := lookupMember(c, name)
	return r, ok
}

// Getter resolves a getter routine by name through the ancestor chain.
func (c *Class) Getter(name string) (*Routine, bool) {
	r, _, ok := lookupGetter(c, name)
	return r, ok
}

// Attr resolves a class-level data attribute through the ancestor chain.
func (c *Class) Attr(name string) (any, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.attrs[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// New creates an instance. When the hierarchy declares an "init" member
// it runs with the instance bound as self; its constraints are enforced
// like any other call and a violation aborts construction. Arguments
// without a declared init are an error.
func (c *Class) New(pos ...any) (*Object, error) {
	return c.NewNamed(nil, pos...)
}

// NewNamed is New with mixed positional/named constructor arguments.
func (c *Class) NewNamed(named map[string]any, pos ...any) (*Object, error) {
	obj := &Object{class: c, fields: make(map[string]any)}
	init, _, ok := lookupMember(c, initName)
	if !ok {
		if len(pos) > 0 || len(named) > 0 {
			return nil, fmt.Errorf("%w: %s has no %s member", ErrUnknownMember, c.name, initName)
		}
		return obj, nil
	}
	if _, err := init.CallNamed(named, prependSelf(obj, pos)...); err != nil {
		return nil, err
	}
	return obj, nil
}

func lookupMember(c *Class, name string) (*Routine, *Class, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if r, ok := cur.members[name]; ok {
			return r, cur, true
		}
	}
	return nil, nil, false
}

func lookupGetter(c *Class, name string) (*Routine, *Class, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if r, ok := cur.getters[name]; ok {
			return r, cur, true
		}
	}
	return nil, nil, false
}

// lookupAny resolves a member or getter, members first.
func lookupAny(c *Class, name string) (*Routine, *Class, bool) {
	if r, owner, ok := lookupMember(c, name); ok {
		return r, owner, ok
	}
	return lookupGetter(c, name)
}

// Object is an instance of a finalized Class. Field access is unchecked;
// member calls and getter access run through the enforcement layer.
type Object struct {
	class  *Class
	fields map[string]any
}

// Class returns the instance's type.
func (o *Object) Class() *Class { return o.class }

// TypeName implements check.Named: Typename predicates (including
// forward self-references) match instances by class name.
func (o *Object) TypeName() string { return o.class.name }

// Call invokes member name with positional arguments; the instance is
// bound as the leading self parameter.
func (o *Object) Call(name string, pos ...any) (any, error) {
	return o.CallNamed(name, nil, pos...)
}

// CallNamed is Call with mixed positional/named arguments.
func (o *Object) CallNamed(name string, named map[string]any, pos ...any) (any, error) {
	m, _, ok := lookupMember(o.class, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMember, o.class.name, name)
	}
	return m.CallNamed(named, prependSelf(o, pos)...)
}

// Get reads name on the instance: a declared getter runs (with its
// return constraint enforced), then instance fields, then class-level
// data attributes.
func (o *Object) Get(name string) (any, error) {
	if g, _, ok := lookupGetter(o.class, name); ok {
		return g.Call(o)
	}
	if v, ok := o.fields[name]; ok {
		return v, nil
	}
	if v, ok := o.class.Attr(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMember, o.class.name, name)
}

// Set writes an instance field. Fields are plain data; constraints apply
// to routine boundaries only.
func (o *Object) Set(name string, value any) {
	o.fields[name] = value
}

func prependSelf(o *Object, pos []any) []any {
	args := make([]any, 0, len(pos)+1)
	args = append(args, o)
	return append(args, pos...)
}
