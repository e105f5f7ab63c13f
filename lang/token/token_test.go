package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindStringCoversEveryKind(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		require.NotEqual(t, "unknown token", k.String(), "kind %d has no name", k)
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	require.Equal(t, "unknown token", Kind(-1).String())
	require.Equal(t, "unknown token", maxKind.String())
}

func TestLookupIdentKeywords(t *testing.T) {
	for lit, want := range keywords {
		require.Equal(t, want, LookupIdent(lit))
	}
	require.Equal(t, IDENT, LookupIdent("notAKeyword"))
	require.Equal(t, IDENT, LookupIdent("And")) // case-sensitive
}

func TestTokenString(t *testing.T) {
	require.Equal(t, "EOF", Token{Kind: EOF, Lexeme: "whatever"}.String())
	require.Equal(t, "foo", Token{Kind: IDENT, Lexeme: "foo"}.String())
}
