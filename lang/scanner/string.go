package scanner

import "github.com/mna/lox/lang/token"

// string scans a '"'-delimited string literal. The opening quote has
// already been consumed by the caller. Strings may span multiple lines;
// reaching end of input first is reported as an unterminated string.
func (s *Scanner) string(line int) token.Token {
	for !s.atEOF && s.cur != '"' {
		if s.cur == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEOF {
		return token.Token{Kind: token.ILLEGAL, Lexeme: "unterminated string", Line: line}
	}

	lit := s.src[s.start+1 : s.off-1]
	s.advance() // consume closing quote
	return token.Token{Kind: token.STRING, Lexeme: s.src[s.start : s.off-1], Literal: lit, Line: line}
}
