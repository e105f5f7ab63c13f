package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/value"
)

func TestEqual(t *testing.T) {
	assert.True(t, value.Equal(value.Nil, value.Nil))
	assert.False(t, value.Equal(value.Nil, value.Bool(false)))
	assert.True(t, value.Equal(value.Number(1), value.Number(1)))
	assert.False(t, value.Equal(value.Number(1), value.Number(2)))
	assert.True(t, value.Equal(value.String("a"), value.String("a")))
	assert.False(t, value.Equal(value.String("a"), value.Number(0)))
}

func TestArithmeticPrecedenceLaws(t *testing.T) {
	// 1 + 2 * 3 == 7
	mul, err := value.Mul(value.Number(2), value.Number(3))
	require.NoError(t, err)
	sum, err := value.Add(value.Number(1), mul)
	require.NoError(t, err)
	assert.Equal(t, value.Number(7), sum)

	// (1 + 2) * 3 == 9
	add, err := value.Add(value.Number(1), value.Number(2))
	require.NoError(t, err)
	prod, err := value.Mul(add, value.Number(3))
	require.NoError(t, err)
	assert.Equal(t, value.Number(9), prod)
}

func TestAddStringConcatenation(t *testing.T) {
	ab, err := value.Add(value.String("a"), value.String("b"))
	require.NoError(t, err)
	abc, err := value.Add(ab, value.String("c"))
	require.NoError(t, err)
	assert.Equal(t, value.String("abc"), abc)
}

func TestAddMixedTypesErrors(t *testing.T) {
	_, err := value.Add(value.String("a"), value.Number(1))
	require.Error(t, err)
}

func TestDivisionByZeroIsNotAnError(t *testing.T) {
	res, err := value.Div(value.Number(1), value.Number(0))
	require.NoError(t, err)
	assert.Equal(t, "+Inf", res.String())
}

func TestNegate(t *testing.T) {
	res, err := value.Negate(value.Number(5))
	require.NoError(t, err)
	assert.Equal(t, value.Number(-5), res)

	_, err = value.Negate(value.String("x"))
	require.Error(t, err)
}

func TestLessGreaterTypeMismatchErrors(t *testing.T) {
	_, err := value.Less(value.Number(1), value.String("x"))
	require.Error(t, err)
	_, err = value.Greater(value.String("x"), value.Number(1))
	require.Error(t, err)
}

func TestNumberStringNoTrailingZero(t *testing.T) {
	assert.Equal(t, "7", value.Number(7).String())
	assert.Equal(t, "2.5", value.Number(2.5).String())
}
