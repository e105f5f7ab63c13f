package interpreter

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/value"
)

const maxCallDepth = 255

// LoxFunction is the tree-walking pipeline's callable value: a function
// or method declaration paired with the environment in effect where it
// was declared. It plays the same role lang/value.Closure plays for the
// bytecode pipeline (a compiled Function paired with captured upvalues),
// but closes over a named Environment instead of indexed upvalue cells.
type LoxFunction struct {
	Decl          *ast.Function
	Name          string
	Closure       *Environment
	IsInitializer bool
}

func (f *LoxFunction) String() string {
	if f.Name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}
func (*LoxFunction) Type() string { return "function" }
func (*LoxFunction) Truth() bool  { return true }

// bind returns a new LoxFunction closing over an environment with "this"
// set to receiver, the tree-walking equivalent of the bytecode pipeline
// rewriting a BoundMethod's receiver into call slot 0.
func (f *LoxFunction) bind(receiver *value.Instance) *LoxFunction {
	env := newEnvironment(f.Closure)
	env.define("this", receiver)
	return &LoxFunction{Decl: f.Decl, Name: f.Name, Closure: env, IsInitializer: f.IsInitializer}
}

var _ value.Value = (*LoxFunction)(nil)

// callValue dispatches a call expression's callee, mirroring
// lang/machine's callValue but against already-evaluated argument values
// rather than an operand stack slice.
func (it *Interpreter) callValue(line int, callee value.Value, args []value.Value) (value.Value, error) {
	switch c := callee.(type) {
	case *LoxFunction:
		return it.callFunction(line, c, args)
	case *value.NativeFn:
		return it.callNative(line, c, args)
	case *value.Class:
		return it.callClass(line, c, args)
	case *value.BoundMethod:
		return it.callBoundMethod(line, c, args)
	default:
		return nil, it.runtimeError(line, NotCallable, "can only call functions and classes")
	}
}

func (it *Interpreter) callFunction(line int, fn *LoxFunction, args []value.Value) (value.Value, error) {
	if len(args) != len(fn.Decl.Params) {
		return nil, it.runtimeError(line, ArityMismatch, "expected %d arguments but got %d", len(fn.Decl.Params), len(args))
	}
	if len(it.calls) >= maxCallDepth {
		return nil, it.runtimeError(line, StackOverflow, "stack overflow")
	}

	env := newEnvironment(fn.Closure)
	for i, p := range fn.Decl.Params {
		env.define(p, args[i])
	}

	name := fn.Name
	if name == "" {
		name = "script"
	}
	it.calls = append(it.calls, fmt.Sprintf("%d] in %s()", line, name))
	defer func() { it.calls = it.calls[:len(it.calls)-1] }()

	err := it.execBlock(fn.Decl.Body, env)
	if rs, ok := err.(returnSignal); ok {
		if fn.IsInitializer {
			return fn.Closure.getAt(0, "this"), nil
		}
		return rs.value, nil
	}
	if err != nil {
		return nil, err
	}
	if fn.IsInitializer {
		return fn.Closure.getAt(0, "this"), nil
	}
	return value.Nil, nil
}

func (it *Interpreter) callNative(line int, n *value.NativeFn, args []value.Value) (value.Value, error) {
	if len(args) != n.Arity {
		return nil, it.runtimeError(line, ArityMismatch, "expected %d arguments but got %d", n.Arity, len(args))
	}
	result, err := n.Fn(args)
	if err != nil {
		return nil, it.runtimeError(line, NativeError, "%s", err.Error())
	}
	return result, nil
}

func (it *Interpreter) callClass(line int, cls *value.Class, args []value.Value) (value.Value, error) {
	instance := value.NewInstance(cls)
	if init, ok := cls.FindMethod("init"); ok {
		bound := init.(*LoxFunction).bind(instance)
		if _, err := it.callFunction(line, bound, args); err != nil {
			return nil, err
		}
		return instance, nil
	}
	if len(args) != 0 {
		return nil, it.runtimeError(line, ArityMismatch, "expected 0 arguments but got %d", len(args))
	}
	return instance, nil
}

func (it *Interpreter) callBoundMethod(line int, b *value.BoundMethod, args []value.Value) (value.Value, error) {
	fn, ok := b.Method.(*LoxFunction)
	if !ok {
		return nil, it.runtimeError(line, NotCallable, "can only call functions and classes")
	}
	return it.callFunction(line, fn, args)
}
