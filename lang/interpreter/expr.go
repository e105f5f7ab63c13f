package interpreter

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/value"
)

func (it *Interpreter) evalExpr(expr ast.Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return it.evalExpr(e.Expr)

	case *ast.Unary:
		return it.evalUnary(e)

	case *ast.Binary:
		return it.evalBinary(e)

	case *ast.Logical:
		return it.evalLogical(e)

	case *ast.Variable:
		return it.lookupVariable(e.Name, e.Depth, e.Ln)

	case *ast.Assign:
		v, err := it.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		if e.Depth == -1 {
			if _, ok := it.globals.get(e.Name); !ok {
				return nil, it.runtimeError(e.Ln, UndefinedVariable, "undefined variable '%s'", e.Name)
			}
			it.globals.assign(e.Name, v)
		} else {
			it.environment.assignAt(e.Depth, e.Name, v)
		}
		return v, nil

	case *ast.Call:
		return it.evalCall(e)

	case *ast.Get:
		obj, err := it.evalExpr(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*value.Instance)
		if !ok {
			return nil, it.runtimeError(e.Ln, PropertyOnNonInstance, "only instances have properties")
		}
		if v, ok := inst.Fields.Get(e.Name); ok {
			return v, nil
		}
		m, ok := inst.Class.FindMethod(e.Name)
		if !ok {
			return nil, it.runtimeError(e.Ln, UndefinedProperty, "undefined property '%s'", e.Name)
		}
		if fn, ok := m.(*LoxFunction); ok {
			return fn.bind(inst), nil
		}
		return m, nil

	case *ast.Set:
		obj, err := it.evalExpr(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*value.Instance)
		if !ok {
			return nil, it.runtimeError(e.Ln, PropertyOnNonInstance, "only instances have fields")
		}
		v, err := it.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		inst.Fields.Put(e.Name, v)
		return v, nil

	case *ast.This:
		return it.lookupVariable("this", e.Depth, e.Ln)

	case *ast.Super:
		return it.evalSuper(e)

	case *ast.Function:
		return &LoxFunction{Decl: e, Name: e.Name, Closure: it.environment}, nil

	default:
		panic("interpreter: unexpected expr type")
	}
}

func literalValue(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Nil
	case bool:
		return value.Bool(x)
	case float64:
		return value.Number(x)
	case string:
		return value.String(x)
	default:
		panic("interpreter: unexpected literal kind")
	}
}

func (it *Interpreter) lookupVariable(name string, depth, line int) (value.Value, error) {
	if depth == -1 {
		v, ok := it.globals.get(name)
		if !ok {
			return nil, it.runtimeError(line, UndefinedVariable, "undefined variable '%s'", name)
		}
		return v, nil
	}
	return it.environment.getAt(depth, name), nil
}

func (it *Interpreter) evalUnary(e *ast.Unary) (value.Value, error) {
	v, err := it.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpNegate:
		r, err := value.Negate(v)
		if err != nil {
			return nil, it.wrapValueError(e.Ln, err)
		}
		return r, nil
	case ast.OpNot:
		return value.Bool(!value.Truthy(v)), nil
	default:
		panic("interpreter: unreachable unary operator")
	}
}

func (it *Interpreter) evalBinary(e *ast.Binary) (value.Value, error) {
	a, err := it.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	b, err := it.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpEqual:
		return value.Bool(value.Equal(a, b)), nil
	case ast.OpNotEqual:
		return value.Bool(!value.Equal(a, b)), nil
	case ast.OpLess:
		ok, err := value.Less(a, b)
		if err != nil {
			return nil, it.wrapValueError(e.Ln, err)
		}
		return value.Bool(ok), nil
	case ast.OpLessEqual:
		gt, err := value.Greater(a, b)
		if err != nil {
			return nil, it.wrapValueError(e.Ln, err)
		}
		return value.Bool(!gt), nil
	case ast.OpGreater:
		ok, err := value.Greater(a, b)
		if err != nil {
			return nil, it.wrapValueError(e.Ln, err)
		}
		return value.Bool(ok), nil
	case ast.OpGreaterEqual:
		lt, err := value.Less(a, b)
		if err != nil {
			return nil, it.wrapValueError(e.Ln, err)
		}
		return value.Bool(!lt), nil
	case ast.OpAdd:
		r, err := value.Add(a, b)
		if err != nil {
			return nil, it.wrapValueError(e.Ln, err)
		}
		return r, nil
	case ast.OpSub:
		r, err := value.Sub(a, b)
		if err != nil {
			return nil, it.wrapValueError(e.Ln, err)
		}
		return r, nil
	case ast.OpMul:
		r, err := value.Mul(a, b)
		if err != nil {
			return nil, it.wrapValueError(e.Ln, err)
		}
		return r, nil
	case ast.OpDiv:
		r, err := value.Div(a, b)
		if err != nil {
			return nil, it.wrapValueError(e.Ln, err)
		}
		return r, nil
	default:
		panic("interpreter: unreachable binary operator")
	}
}

func (it *Interpreter) evalLogical(e *ast.Logical) (value.Value, error) {
	left, err := it.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpOr:
		if value.Truthy(left) {
			return left, nil
		}
	case ast.OpAnd:
		if !value.Truthy(left) {
			return left, nil
		}
	default:
		panic("interpreter: unreachable logical operator")
	}
	return it.evalExpr(e.Right)
}

func (it *Interpreter) evalCall(e *ast.Call) (value.Value, error) {
	callee, err := it.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := it.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return it.callValue(e.Ln, callee, args)
}

func (it *Interpreter) evalSuper(e *ast.Super) (value.Value, error) {
	sv := it.environment.getAt(e.Depth, "super")
	superclass, ok := sv.(*value.Class)
	if !ok {
		panic("interpreter: 'super' resolved to a non-class value")
	}
	inst, ok := it.environment.getAt(e.Depth-1, "this").(*value.Instance)
	if !ok {
		panic("interpreter: 'this' resolved to a non-instance value")
	}

	m, ok := superclass.FindMethod(e.Method)
	if !ok {
		return nil, it.runtimeError(e.Ln, UndefinedProperty, "undefined property '%s'", e.Method)
	}
	fn, ok := m.(*LoxFunction)
	if !ok {
		return nil, it.runtimeError(e.Ln, UndefinedProperty, "undefined property '%s'", e.Method)
	}
	return fn.bind(inst), nil
}

func (it *Interpreter) wrapValueError(line int, err error) error {
	return it.runtimeError(line, OperandTypeMismatch, "%s", err.Error())
}
