package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print writes an indented dump of n to w, one node per line.
func Print(w io.Writer, n Node) error {
	p := &printer{w: w}
	Walk(p, n)
	return p.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit {
		p.depth--
		return nil
	}
	if p.err != nil {
		return nil
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(". ", p.depth), describe(n))
	p.depth++
	return p
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Literal:
		return fmt.Sprintf("literal %v", n.Value)
	case *Grouping:
		return "group"
	case *Unary:
		return "unary"
	case *Binary:
		return "binary"
	case *Logical:
		return "logical"
	case *Variable:
		return "var " + n.Name
	case *Assign:
		return "assign " + n.Name
	case *Call:
		return fmt.Sprintf("call (%d args)", len(n.Args))
	case *Get:
		return "get ." + n.Name
	case *Set:
		return "set ." + n.Name
	case *This:
		return "this"
	case *Super:
		return "super." + n.Method
	case *Function:
		return "fn " + n.Name
	case *ExprStmt:
		return "expr stmt"
	case *PrintStmt:
		return "print"
	case *VarStmt:
		return "var decl " + n.Name
	case *BlockStmt:
		return "block"
	case *IfStmt:
		return "if"
	case *WhileStmt:
		return "while"
	case *FunDecl:
		return "fun decl " + n.Name
	case *ReturnStmt:
		return "return"
	case *ClassDecl:
		return "class decl " + n.Name
	default:
		return fmt.Sprintf("%T", n)
	}
}
