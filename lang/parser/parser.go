// Package parser implements a recursive-descent parser that turns Lox
// source into a list of top-level ast.Stmt nodes, the front end of the
// tree-walking `tree` execution pipeline (as opposed to lang/compiler,
// which fuses parsing and bytecode emission into a single pass for the
// `vm` pipeline).
package parser

import (
	"fmt"
	"go/scanner"
	gotoken "go/token"

	"github.com/mna/lox/lang/ast"
	loxscanner "github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

const maxArgs = 255

type parser struct {
	scan *loxscanner.Scanner

	previous token.Token
	current  token.Token

	errs      scanner.ErrorList
	panicking bool
}

// Parse parses src into the list of top-level statements it contains. More
// than one error may be reported; the returned error, if any, is a
// scanner.ErrorList.
func Parse(src string) ([]ast.Stmt, error) {
	p := &parser{scan: loxscanner.New(src)}
	p.advance()

	var stmts []ast.Stmt
	for !p.match(token.EOF) {
		stmts = append(stmts, p.declaration())
	}

	p.errs.Sort()
	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	return stmts, nil
}

// --- token stream --------------------------------------------------------

func (p *parser) advance() {
	p.previous = p.current
	for {
		p.current = p.scan.Scan()
		if p.current.Kind != token.ILLEGAL {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *parser) check(k token.Kind) bool { return p.current.Kind == k }

func (p *parser) match(k token.Kind) bool {
	if !p.check(k) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(k token.Kind, msg string) token.Token {
	if p.current.Kind == k {
		t := p.current
		p.advance()
		return t
	}
	p.errorAtCurrent(msg)
	return p.current
}

// --- error reporting -------------------------------------------------------

func (p *parser) errorAtCurrent(msg string) { p.errorAt(p.current, msg) }
func (p *parser) error(msg string)          { p.errorAt(p.previous, msg) }

func (p *parser) errorAt(t token.Token, msg string) {
	if p.panicking {
		return
	}
	p.panicking = true

	where := "at '" + t.Lexeme + "'"
	if t.Kind == token.EOF {
		where = "at end"
	}
	p.errs.Add(gotoken.Position{Line: t.Line}, fmt.Sprintf("%s: %s", where, msg))
}

// synchronize discards tokens until a statement boundary, after a parse
// error, so one mistake doesn't cascade into a wall of spurious errors.
func (p *parser) synchronize() {
	p.panicking = false
	for p.current.Kind != token.EOF {
		if p.previous.Kind == token.SEMICOLON {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
