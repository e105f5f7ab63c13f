// Package scanner implements the lexical analyzer shared by both the
// tree-walking and bytecode pipelines.
package scanner

import (
	"fmt"

	"github.com/mna/lox/lang/token"
)

// Scanner tokenizes Lox source text one token at a time.
type Scanner struct {
	src string

	start int // byte offset of the token currently being scanned
	off   int // byte offset of cur
	cur   byte
	atEOF bool

	line int
}

// New returns a Scanner positioned at the start of src.
func New(src string) *Scanner {
	s := &Scanner{src: src, line: 1}
	s.advance()
	return s
}

// advance consumes the current byte and loads the next one into s.cur.
// off is kept one past whatever advance just consumed -- including the
// virtual end-of-input position -- so start:off-1 always spans exactly
// the bytes consumed so far, even for a token that runs up to EOF.
func (s *Scanner) advance() {
	if s.off >= len(s.src) {
		s.cur = 0
		s.atEOF = true
		s.off++
		return
	}
	s.cur = s.src[s.off]
	s.off++
}

// peek returns the byte after the current one without consuming anything,
// or 0 at end of input.
func (s *Scanner) peek() byte {
	if s.off >= len(s.src) {
		return 0
	}
	return s.src[s.off]
}

func (s *Scanner) match(want byte) bool {
	if s.atEOF || s.cur != want {
		return false
	}
	s.advance()
	return true
}

// Scan returns the next token, terminating the stream with an EOF token.
// Scanning errors (unterminated string, unexpected character) are
// reported as a token of kind token.ILLEGAL whose Lexeme holds the error
// message; the caller decides whether to abort or synchronise.
func (s *Scanner) Scan() token.Token {
	s.skipIgnored()

	s.start = s.off - 1
	line := s.line

	if s.atEOF {
		return token.Token{Kind: token.EOF, Line: line}
	}

	c := s.cur
	s.advance()

	switch {
	case isDigit(c):
		return s.number(line)
	case isAlpha(c):
		return s.identifier(c, line)
	}

	switch c {
	case '(':
		return s.tok(token.LPAREN, line)
	case ')':
		return s.tok(token.RPAREN, line)
	case '{':
		return s.tok(token.LBRACE, line)
	case '}':
		return s.tok(token.RBRACE, line)
	case ',':
		return s.tok(token.COMMA, line)
	case '.':
		return s.tok(token.DOT, line)
	case '-':
		return s.tok(token.MINUS, line)
	case '+':
		return s.tok(token.PLUS, line)
	case ';':
		return s.tok(token.SEMICOLON, line)
	case '*':
		return s.tok(token.STAR, line)
	case '/':
		return s.tok(token.SLASH, line)
	case '!':
		if s.match('=') {
			return s.tok(token.BANG_EQUAL, line)
		}
		return s.tok(token.BANG, line)
	case '=':
		if s.match('=') {
			return s.tok(token.EQUAL_EQUAL, line)
		}
		return s.tok(token.EQUAL, line)
	case '<':
		if s.match('=') {
			return s.tok(token.LESS_EQUAL, line)
		}
		return s.tok(token.LESS, line)
	case '>':
		if s.match('=') {
			return s.tok(token.GREATER_EQUAL, line)
		}
		return s.tok(token.GREATER, line)
	case '"':
		return s.string(line)
	}

	return token.Token{
		Kind:   token.ILLEGAL,
		Lexeme: fmt.Sprintf("unexpected character %q", c),
		Line:   line,
	}
}

func (s *Scanner) tok(kind token.Kind, line int) token.Token {
	return token.Token{Kind: kind, Lexeme: s.src[s.start : s.off-1], Line: line}
}

// skipIgnored consumes whitespace and "//" line comments, tracking line
// numbers as it goes.
func (s *Scanner) skipIgnored() {
	for !s.atEOF {
		switch s.cur {
		case ' ', '\t', '\r':
			s.advance()
		case '\n':
			s.line++
			s.advance()
		case '/':
			if s.peek() != '/' {
				return
			}
			for !s.atEOF && s.cur != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
