package scanner

import (
	"strconv"

	"github.com/mna/lox/lang/token"
)

// number scans `[0-9]+ ('.' [0-9]+)?`. There is no leading sign (unary
// minus is handled by the grammar, not the lexer) and no exponent.
func (s *Scanner) number(line int) token.Token {
	for !s.atEOF && isDigit(s.cur) {
		s.advance()
	}

	if !s.atEOF && s.cur == '.' && isDigit(s.peek()) {
		s.advance() // consume '.'
		for !s.atEOF && isDigit(s.cur) {
			s.advance()
		}
	}

	lit := s.src[s.start : s.off-1]
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// unreachable for a grammar-conformant lexeme, but fail loudly rather
		// than silently producing a garbage value
		return token.Token{
			Kind:   token.ILLEGAL,
			Lexeme: "invalid number literal " + lit,
			Line:   line,
		}
	}
	return token.Token{Kind: token.NUMBER, Lexeme: lit, Number: n, Line: line}
}
