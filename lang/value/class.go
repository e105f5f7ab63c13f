package value

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Class is a runtime class value: a name and its own (non-inherited)
// method table. Inheritance is resolved by walking Superclass at method
// lookup time rather than by copying inherited methods into Methods.
//
// Methods stores Value rather than a narrower callable type because the
// bytecode VM (lang/machine) and the tree-walking interpreter
// (lang/interpreter) install different concrete method representations
// (*Closure and the interpreter's own function value, respectively) into
// the very same Class/Instance values -- there is exactly one class/
// instance model, shared by both execution pipelines.
type Class struct {
	Name       string
	Superclass *Class
	Methods    *swiss.Map[string, Value]
}

// NewClass returns an empty class named name.
func NewClass(name string, superclass *Class) *Class {
	return &Class{
		Name:       name,
		Superclass: superclass,
		Methods:    swiss.NewMap[string, Value](uint32(4)),
	}
}

func (c *Class) String() string { return c.Name }
func (*Class) Type() string     { return "class" }
func (*Class) Truth() bool      { return true }

// FindMethod looks up name on c, then recursively on c.Superclass.
func (c *Class) FindMethod(name string) (Value, bool) {
	for cls := c; cls != nil; cls = cls.Superclass {
		if m, ok := cls.Methods.Get(name); ok {
			return m, true
		}
	}
	return nil, false
}

// Instance is a runtime instance of a Class, with its own field table.
type Instance struct {
	Class  *Class
	Fields *swiss.Map[string, Value]
}

// NewInstance returns a fresh, field-less instance of cls.
func NewInstance(cls *Class) *Instance {
	return &Instance{Class: cls, Fields: swiss.NewMap[string, Value](uint32(4))}
}

func (i *Instance) String() string { return fmt.Sprintf("%s instance", i.Class.Name) }
func (*Instance) Type() string     { return "instance" }
func (*Instance) Truth() bool      { return true }

// BoundMethod pairs a receiver instance with a method value, produced by
// a property access that resolves to a method (`instance.method`) or by a
// `super.method` expression. Method holds whatever callable shape the
// owning pipeline stores in a Class's method table (*Closure for the
// bytecode VM, the interpreter's own function value for the tree-walking
// pipeline).
type BoundMethod struct {
	Receiver *Instance
	Method   Value
}

func (b *BoundMethod) String() string { return b.Method.String() }
func (*BoundMethod) Type() string     { return "function" }
func (*BoundMethod) Truth() bool      { return true }

var (
	_ Value = (*Class)(nil)
	_ Value = (*Instance)(nil)
	_ Value = (*BoundMethod)(nil)
)
