package parser

import (
	"strconv"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

// Grammar, tightest-binding rule last:
//
//	expression -> assignment
//	assignment -> ( call "." )? IDENT "=" assignment | logic_or
//	logic_or   -> logic_and ( "or" logic_and )*
//	logic_and  -> equality ( "and" equality )*
//	equality   -> comparison ( ( "!=" | "==" ) comparison )*
//	comparison -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term       -> factor ( ( "-" | "+" ) factor )*
//	factor     -> unary ( ( "/" | "*" ) unary )*
//	unary      -> ( "!" | "-" ) unary | call
//	call       -> primary ( "(" arguments? ")" | "." IDENT )*
//	primary    -> NUMBER | STRING | "true" | "false" | "nil" | "this"
//	            | "(" expression ")" | IDENT | "super" "." IDENT

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

func (p *parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		ln := p.previous.Line
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Ln: ln, Name: e.Name, Value: value, Depth: -1}
		case *ast.Get:
			return &ast.Set{Ln: ln, Object: e.Object, Name: e.Name, Value: value}
		default:
			p.error("invalid assignment target")
		}
	}
	return expr
}

func (p *parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		ln := p.previous.Line
		right := p.and()
		expr = &ast.Logical{Ln: ln, Left: expr, Op: ast.OpOr, Right: right}
	}
	return expr
}

func (p *parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		ln := p.previous.Line
		right := p.equality()
		expr = &ast.Logical{Ln: ln, Left: expr, Op: ast.OpAnd, Right: right}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL) || p.match(token.EQUAL_EQUAL) {
		op, ln := binOp(p.previous.Kind), p.previous.Line
		right := p.comparison()
		expr = &ast.Binary{Ln: ln, Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER) || p.match(token.GREATER_EQUAL) || p.match(token.LESS) || p.match(token.LESS_EQUAL) {
		op, ln := binOp(p.previous.Kind), p.previous.Line
		right := p.term()
		expr = &ast.Binary{Ln: ln, Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS) || p.match(token.PLUS) {
		op, ln := binOp(p.previous.Kind), p.previous.Line
		right := p.factor()
		expr = &ast.Binary{Ln: ln, Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH) || p.match(token.STAR) {
		op, ln := binOp(p.previous.Kind), p.previous.Line
		right := p.unary()
		expr = &ast.Binary{Ln: ln, Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.match(token.BANG) || p.match(token.MINUS) {
		ln := p.previous.Line
		op := ast.OpNot
		if p.previous.Kind == token.MINUS {
			op = ast.OpNegate
		}
		right := p.unary()
		return &ast.Unary{Ln: ln, Op: op, Right: right}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			ln := p.previous.Line
			name := p.consume(token.IDENT, "expect property name after '.'")
			expr = &ast.Get{Ln: ln, Object: expr, Name: name.Lexeme}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	ln := p.previous.Line
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAtCurrent("can't have more than 255 arguments")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "expect ')' after arguments")
	return &ast.Call{Ln: ln, Callee: callee, Args: args}
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Ln: p.previous.Line, Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Ln: p.previous.Line, Value: true}
	case p.match(token.NIL):
		return &ast.Literal{Ln: p.previous.Line, Value: nil}
	case p.match(token.NUMBER):
		n, err := strconv.ParseFloat(p.previous.Lexeme, 64)
		if err != nil {
			p.error("invalid number literal")
			n = 0
		}
		return &ast.Literal{Ln: p.previous.Line, Value: n}
	case p.match(token.STRING):
		return &ast.Literal{Ln: p.previous.Line, Value: p.previous.Literal}
	case p.match(token.THIS):
		return &ast.This{Ln: p.previous.Line, Depth: -1}
	case p.match(token.SUPER):
		ln := p.previous.Line
		p.consume(token.DOT, "expect '.' after 'super'")
		method := p.consume(token.IDENT, "expect superclass method name")
		return &ast.Super{Ln: ln, Method: method.Lexeme, Depth: -1}
	case p.match(token.IDENT):
		return &ast.Variable{Ln: p.previous.Line, Name: p.previous.Lexeme, Depth: -1}
	case p.match(token.LPAREN):
		ln := p.previous.Line
		e := p.expression()
		p.consume(token.RPAREN, "expect ')' after expression")
		return &ast.Grouping{Ln: ln, Expr: e}
	default:
		p.errorAtCurrent("expect expression")
		return &ast.Literal{Ln: p.current.Line, Value: nil}
	}
}

func binOp(k token.Kind) ast.BinOp {
	switch k {
	case token.BANG_EQUAL:
		return ast.OpNotEqual
	case token.EQUAL_EQUAL:
		return ast.OpEqual
	case token.GREATER:
		return ast.OpGreater
	case token.GREATER_EQUAL:
		return ast.OpGreaterEqual
	case token.LESS:
		return ast.OpLess
	case token.LESS_EQUAL:
		return ast.OpLessEqual
	case token.MINUS:
		return ast.OpSub
	case token.PLUS:
		return ast.OpAdd
	case token.SLASH:
		return ast.OpDiv
	case token.STAR:
		return ast.OpMul
	default:
		panic("parser: unreachable binary operator token")
	}
}
