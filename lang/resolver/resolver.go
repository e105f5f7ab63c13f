// Package resolver performs a static pass over the AST produced by
// lang/parser, filling in every ast.Variable/ast.Assign/ast.This/ast.Super
// node's Depth field with the number of enclosing scopes to walk at
// runtime to find its binding (or -1 for "look it up as a global"). This
// mirrors, at the source level, the local/upvalue/global resolution that
// lang/compiler performs while emitting bytecode, so the tree-walking and
// bytecode pipelines agree on scoping rules -- including full superclass
// binding for `super`, which earlier tree-walking interpreters in this
// family of languages have been known to get only partially right.
package resolver

import (
	"fmt"
	"go/scanner"
	gotoken "go/token"

	"github.com/mna/lox/lang/ast"
)

type funcKind int

const (
	funcNone funcKind = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

type resolver struct {
	scopes       []map[string]bool
	currentFunc  funcKind
	currentClass classKind
	errs         scanner.ErrorList
}

// Resolve walks stmts, annotating every variable reference with its
// resolution depth. The returned error, if any, is a scanner.ErrorList.
func Resolve(stmts []ast.Stmt) error {
	r := &resolver{}
	r.resolveStmts(stmts)
	r.errs.Sort()
	return r.errs.Err()
}

func (r *resolver) errorf(line int, format string, args ...any) {
	r.errs.Add(gotoken.Position{Line: line}, fmt.Sprintf(format, args...))
}

func (r *resolver) beginScope() { r.scopes = append(r.scopes, map[string]bool{}) }
func (r *resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *resolver) declare(name string, line int) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name]; ok {
		r.errorf(line, "already a variable with this name in this scope")
	}
	scope[name] = false
}

func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal sets depth to the number of scopes between the innermost
// and the one declaring name, or leaves it at -1 (global) if name is not
// found in any tracked scope.
func (r *resolver) resolveLocal(name string, depth *int) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			*depth = len(r.scopes) - 1 - i
			return
		}
	}
	*depth = -1
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		r.resolveExpr(s.Expr)

	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)

	case *ast.VarStmt:
		r.declare(s.Name, s.Ln)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)

	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()

	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)

	case *ast.FunDecl:
		r.declare(s.Name, s.Ln)
		r.define(s.Name)
		r.resolveFunction(s.Fn, funcFunction)

	case *ast.ReturnStmt:
		if r.currentFunc == funcNone {
			r.errorf(s.Ln, "can't return from top-level code")
		}
		if s.Value != nil {
			if r.currentFunc == funcInitializer {
				r.errorf(s.Ln, "can't return a value from an initializer")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.ClassDecl:
		r.resolveClass(s)

	default:
		panic(fmt.Sprintf("resolver: unexpected stmt %T", stmt))
	}
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// nothing to resolve

	case *ast.Grouping:
		r.resolveExpr(e.Expr)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name]; ok && !defined {
				r.errorf(e.Ln, "can't read local variable in its own initializer")
			}
		}
		r.resolveLocal(e.Name, &e.Depth)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.Name, &e.Depth)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.This:
		if r.currentClass == classNone {
			r.errorf(e.Ln, "can't use 'this' outside of a class")
			e.Depth = -1
			return
		}
		r.resolveLocal("this", &e.Depth)

	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.errorf(e.Ln, "can't use 'super' outside of a class")
		case classClass:
			r.errorf(e.Ln, "can't use 'super' in a class with no superclass")
		}
		r.resolveLocal("super", &e.Depth)

	case *ast.Function:
		r.resolveFunction(e, funcFunction)

	default:
		panic(fmt.Sprintf("resolver: unexpected expr %T", expr))
	}
}

func (r *resolver) resolveFunction(fn *ast.Function, kind funcKind) {
	enclosingFunc := r.currentFunc
	r.currentFunc = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param, fn.Ln)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunc = enclosingFunc
}

func (r *resolver) resolveClass(c *ast.ClassDecl) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(c.Name, c.Ln)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name == c.Name {
			r.errorf(c.Ln, "a class can't inherit from itself")
		}
		r.currentClass = classSubclass
		r.resolveLocal(c.Superclass.Name, &c.Superclass.Depth)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range c.Methods {
		kind := funcMethod
		if m.Name == "init" {
			kind = funcInitializer
		}
		r.resolveFunction(m.Fn, kind)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}
