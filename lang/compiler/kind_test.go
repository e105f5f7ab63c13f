package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/compiler"
)

func diagnosticKinds(t *testing.T, src string) []compiler.Kind {
	t.Helper()
	_, err := compiler.Compile(src)
	require.Error(t, err)
	cerr, ok := err.(*compiler.Errors)
	require.True(t, ok, "expected *compiler.Errors, got %T", err)
	var kinds []compiler.Kind
	for _, d := range cerr.Diagnostics() {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}

func TestCompileErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want compiler.Kind
	}{
		{"variable redeclaration", `{ var a = 1; var a = 2; }`, compiler.VariableRedeclaration},
		{"this outside class", `print this;`, compiler.ThisOutsideClass},
		{"super outside class", `print super.x;`, compiler.SuperOutsideClass},
		{"inherit from self", `class A < A {}`, compiler.InheritFromNonClass},
		{"return value from initializer", `class A { init() { return 1; } }`, compiler.ReturnInInitializer},
		{"return from top level", `return 1;`, compiler.ReturnOutsideFunction},
		{"unterminated string", "print \"abc;", compiler.UnterminatedString},
		{"unexpected character", "print 1 # 2;", compiler.UnexpectedCharacter},
		{"expected expression", `print ;`, compiler.ExpectedExpression},
		{"invalid assignment target", `1 = 2;`, compiler.InvalidAssignmentTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kinds := diagnosticKinds(t, tt.src)
			assert.Contains(t, kinds, tt.want)
		})
	}
}

func TestCompileSuccessReturnsNoError(t *testing.T) {
	_, err := compiler.Compile(`print 1 + 2 * 3;`)
	require.NoError(t, err)
}

func TestKindStringNeverEmpty(t *testing.T) {
	for k := compiler.UnexpectedCharacter; k <= compiler.ReturnOutsideFunction; k++ {
		assert.NotEmpty(t, k.String())
	}
}
