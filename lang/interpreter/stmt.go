package interpreter

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/value"
)

func (it *Interpreter) execStmt(stmt ast.Stmt) error {
	if err := it.tick(stmt.Line()); err != nil {
		return err
	}

	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := it.evalExpr(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := it.evalExpr(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.stdout, value.Display(v))
		return nil

	case *ast.VarStmt:
		v := value.Value(value.Nil)
		if s.Init != nil {
			var err error
			v, err = it.evalExpr(s.Init)
			if err != nil {
				return err
			}
		}
		it.environment.define(s.Name, v)
		return nil

	case *ast.BlockStmt:
		return it.execBlock(s.Stmts, newEnvironment(it.environment))

	case *ast.IfStmt:
		cond, err := it.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if value.Truthy(cond) {
			return it.execStmt(s.Then)
		}
		if s.Else != nil {
			return it.execStmt(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := it.evalExpr(s.Cond)
			if err != nil {
				return err
			}
			if !value.Truthy(cond) {
				return nil
			}
			if err := it.execStmt(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunDecl:
		fn := &LoxFunction{Decl: s.Fn, Name: s.Name, Closure: it.environment}
		it.environment.define(s.Name, fn)
		return nil

	case *ast.ReturnStmt:
		v := value.Value(value.Nil)
		if s.Value != nil {
			var err error
			v, err = it.evalExpr(s.Value)
			if err != nil {
				return err
			}
		}
		return returnSignal{value: v}

	case *ast.ClassDecl:
		return it.execClassDecl(s)

	default:
		panic("interpreter: unexpected stmt type")
	}
}

// execBlock runs stmts against env, restoring the interpreter's previous
// environment on the way out whether stmts ran to completion, failed, or
// unwound via a return statement.
func (it *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) error {
	previous := it.environment
	it.environment = env
	defer func() { it.environment = previous }()

	for _, s := range stmts {
		if err := it.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}
