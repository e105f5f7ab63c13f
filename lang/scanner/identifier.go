package scanner

import "github.com/mna/lox/lang/token"

// identifier scans the remainder of an identifier or keyword; c is the
// first character, already consumed by the caller.
func (s *Scanner) identifier(c byte, line int) token.Token {
	for !s.atEOF && isAlphaNumeric(s.cur) {
		s.advance()
	}
	lit := s.src[s.start : s.off-1]
	return token.Token{Kind: token.LookupIdent(lit), Lexeme: lit, Line: line}
}
