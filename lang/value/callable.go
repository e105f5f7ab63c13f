package value

import (
	"fmt"

	"github.com/mna/lox/lang/bytecode"
)

// Function is the compiled form of a `fun` declaration (or the implicit
// top-level script function): a name, declared arity, the bytecode chunk
// compiled for its body, and the number of upvalues its closures must
// capture. It is immutable once compilation of the function body
// completes.
type Function struct {
	Arity        int
	Name         string
	Chunk        *bytecode.Chunk
	UpvalueCnt   int
	IsInitMethod bool // compiled inside a class's "init" method
}

func (f *Function) String() string {
	if f.Name == "" {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}
func (f *Function) Type() string      { return "function" }
func (*Function) Truth() bool         { return true }
func (f *Function) UpvalueCount() int { return f.UpvalueCnt }

// Upvalue is a captured reference to an enclosing function's local
// variable. While Closed is false, Stack/Index point into the live VM
// value stack; once the backing local goes out of scope the upvalue is
// "closed" by copying the value into Value and ignoring Index thereafter.
type Upvalue struct {
	Closed bool
	Index  int    // index into the owning Stack while open
	Stack  *[]Value
	Value  Value // valid only once Closed
}

// Get returns the upvalue's current value, whether open or closed.
func (u *Upvalue) Get() Value {
	if u.Closed {
		return u.Value
	}
	return (*u.Stack)[u.Index]
}

// Set overwrites the upvalue's current value, whether open or closed.
func (u *Upvalue) Set(v Value) {
	if u.Closed {
		u.Value = v
		return
	}
	(*u.Stack)[u.Index] = v
}

// Close hoists an open upvalue into its own cell, so that it survives
// after the stack slot it pointed to is reused by the caller's frame.
func (u *Upvalue) Close() {
	if u.Closed {
		return
	}
	u.Value = (*u.Stack)[u.Index]
	u.Closed = true
	u.Stack = nil
}

// Closure pairs a compiled Function with the upvalues captured at the
// point the `fun` expression or statement that produced it was evaluated.
type Closure struct {
	Function *Function
	Upvalues []*Upvalue
}

func (c *Closure) String() string { return c.Function.String() }
func (*Closure) Type() string     { return "function" }
func (*Closure) Truth() bool      { return true }

// NativeFn is a host-provided builtin such as clock or sleep.
type NativeFn struct {
	Name  string
	Arity int
	Fn    func(args []Value) (Value, error)
}

func (n *NativeFn) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }
func (*NativeFn) Type() string     { return "native function" }
func (*NativeFn) Truth() bool      { return true }

var (
	_ Value = (*Function)(nil)
	_ Value = (*Closure)(nil)
	_ Value = (*NativeFn)(nil)
)
