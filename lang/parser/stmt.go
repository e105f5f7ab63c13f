package parser

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

func (p *parser) declaration() (s ast.Stmt) {
	defer func() {
		if p.panicking {
			p.synchronize()
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.funDeclaration("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.LBRACE):
		ln := p.previous.Line
		return &ast.BlockStmt{Ln: ln, Stmts: p.block()}
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.RBRACE, "expect '}' after block")
	return stmts
}

func (p *parser) printStatement() ast.Stmt {
	ln := p.previous.Line
	e := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after value")
	return &ast.PrintStmt{Ln: ln, Expr: e}
}

func (p *parser) expressionStatement() ast.Stmt {
	ln := p.current.Line
	e := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after expression")
	return &ast.ExprStmt{Ln: ln, Expr: e}
}

func (p *parser) ifStatement() ast.Stmt {
	ln := p.previous.Line
	p.consume(token.LPAREN, "expect '(' after 'if'")
	cond := p.expression()
	p.consume(token.RPAREN, "expect ')' after condition")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Ln: ln, Cond: cond, Then: then, Else: els}
}

func (p *parser) whileStatement() ast.Stmt {
	ln := p.previous.Line
	p.consume(token.LPAREN, "expect '(' after 'while'")
	cond := p.expression()
	p.consume(token.RPAREN, "expect ')' after condition")
	body := p.statement()
	return &ast.WhileStmt{Ln: ln, Cond: cond, Body: body}
}

// forStatement desugars `for (init; cond; post) body` into the equivalent
// block/while nesting, exactly as the bytecode compiler desugars it into
// jump bytecode, so the interpreter needs no dedicated loop-node handling
// beyond WhileStmt.
func (p *parser) forStatement() ast.Stmt {
	ln := p.previous.Line
	p.consume(token.LPAREN, "expect '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after loop condition")

	var post ast.Expr
	if !p.check(token.RPAREN) {
		post = p.expression()
	}
	p.consume(token.RPAREN, "expect ')' after for clauses")

	body := p.statement()
	if post != nil {
		body = &ast.BlockStmt{Ln: ln, Stmts: []ast.Stmt{body, &ast.ExprStmt{Ln: ln, Expr: post}}}
	}
	if cond == nil {
		cond = &ast.Literal{Ln: ln, Value: true}
	}
	loop := ast.Stmt(&ast.WhileStmt{Ln: ln, Cond: cond, Body: body})
	if init != nil {
		loop = &ast.BlockStmt{Ln: ln, Stmts: []ast.Stmt{init, loop}}
	}
	return loop
}

func (p *parser) returnStatement() ast.Stmt {
	ln := p.previous.Line
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after return value")
	return &ast.ReturnStmt{Ln: ln, Value: value}
}

func (p *parser) varDeclaration() ast.Stmt {
	ln := p.current.Line
	name := p.consume(token.IDENT, "expect variable name")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after variable declaration")
	return &ast.VarStmt{Ln: ln, Name: name.Lexeme, Init: init}
}

func (p *parser) funDeclaration(kind string) *ast.FunDecl {
	ln := p.current.Line
	name := p.consume(token.IDENT, "expect "+kind+" name")
	fn := p.functionBody(kind)
	fn.Name = name.Lexeme
	return &ast.FunDecl{Ln: ln, Name: name.Lexeme, Fn: fn}
}

func (p *parser) functionBody(kind string) *ast.Function {
	ln := p.previous.Line
	p.consume(token.LPAREN, "expect '(' after "+kind+" name")

	var params []string
	if !p.check(token.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAtCurrent("can't have more than 255 parameters")
			}
			t := p.consume(token.IDENT, "expect parameter name")
			params = append(params, t.Lexeme)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "expect ')' after parameters")
	p.consume(token.LBRACE, "expect '{' before "+kind+" body")
	body := p.block()
	return &ast.Function{Ln: ln, Params: params, Body: body}
}

func (p *parser) classDeclaration() ast.Stmt {
	ln := p.previous.Line
	name := p.consume(token.IDENT, "expect class name")

	var super *ast.Variable
	if p.match(token.LESS) {
		superTok := p.consume(token.IDENT, "expect superclass name")
		if superTok.Lexeme == name.Lexeme {
			p.error("a class can't inherit from itself")
		}
		super = &ast.Variable{Ln: superTok.Line, Name: superTok.Lexeme, Depth: -1}
	}

	p.consume(token.LBRACE, "expect '{' before class body")
	var methods []*ast.FunDecl
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		methods = append(methods, p.funDeclaration("method"))
	}
	p.consume(token.RBRACE, "expect '}' after class body")

	return &ast.ClassDecl{Ln: ln, Name: name.Lexeme, Superclass: super, Methods: methods}
}
