package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/token"
)

func scanAll(src string) []token.Token {
	s := New(src)
	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll("(){},.-+;*/ ! != = == < <= > >=")
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR,
		token.SLASH, token.BANG, token.BANG_EQUAL, token.EQUAL,
		token.EQUAL_EQUAL, token.LESS, token.LESS_EQUAL, token.GREATER,
		token.GREATER_EQUAL, token.EOF,
	}, kinds)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll("var class orchid")
	require.Equal(t, token.VAR, toks[0].Kind)
	require.Equal(t, token.CLASS, toks[1].Kind)
	require.Equal(t, token.IDENT, toks[2].Kind)
	require.Equal(t, "orchid", toks[2].Lexeme)
}

func TestScanString(t *testing.T) {
	toks := scanAll(`"hello world"`)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "hello world", toks[0].Literal)
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(`"hello`)
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
	require.Equal(t, "unterminated string", toks[0].Lexeme)
}

func TestScanMultilineStringTracksLine(t *testing.T) {
	toks := scanAll("\"a\nb\"\nvar")
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, token.VAR, toks[1].Kind)
	require.Equal(t, 3, toks[1].Line)
}

func TestScanNumber(t *testing.T) {
	toks := scanAll("123 45.67")
	require.Equal(t, token.NUMBER, toks[0].Kind)
	require.Equal(t, float64(123), toks[0].Number)
	require.Equal(t, token.NUMBER, toks[1].Kind)
	require.Equal(t, 45.67, toks[1].Number)
}

func TestScanUnexpectedCharacter(t *testing.T) {
	toks := scanAll("#")
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
	require.Contains(t, toks[0].Lexeme, "unexpected character")
}

func TestScanSkipsLineComments(t *testing.T) {
	toks := scanAll("// a comment\nvar")
	require.Equal(t, token.VAR, toks[0].Kind)
	require.Equal(t, 2, toks[0].Line)
}
