package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/lox/lang/value"
)

// stubCallable is a minimal Value standing in for a pipeline-specific
// callable (*value.Closure or the interpreter's own function value) in
// a class's method table.
type stubCallable string

func (s stubCallable) String() string { return string(s) }
func (stubCallable) Type() string     { return "function" }
func (stubCallable) Truth() bool      { return true }

func TestFindMethodWalksSuperclass(t *testing.T) {
	base := value.NewClass("Base", nil)
	base.Methods.Put("greet", stubCallable("base greet"))

	derived := value.NewClass("Derived", base)
	derived.Methods.Put("shout", stubCallable("derived shout"))

	m, ok := derived.FindMethod("greet")
	require.True(t, ok)
	assert.Equal(t, stubCallable("base greet"), m)

	m, ok = derived.FindMethod("shout")
	require.True(t, ok)
	assert.Equal(t, stubCallable("derived shout"), m)

	_, ok = derived.FindMethod("missing")
	assert.False(t, ok)
}

func TestFindMethodOverride(t *testing.T) {
	base := value.NewClass("Base", nil)
	base.Methods.Put("greet", stubCallable("base greet"))

	derived := value.NewClass("Derived", base)
	derived.Methods.Put("greet", stubCallable("derived greet"))

	m, ok := derived.FindMethod("greet")
	require.True(t, ok)
	assert.Equal(t, stubCallable("derived greet"), m)
}

func TestInstanceFieldsIndependentOfClass(t *testing.T) {
	cls := value.NewClass("Point", nil)
	a := value.NewInstance(cls)
	b := value.NewInstance(cls)

	a.Fields.Put("x", value.Number(1))
	_, ok := b.Fields.Get("x")
	assert.False(t, ok)
}

func TestBoundMethodWrapsWhateverMethodHolds(t *testing.T) {
	cls := value.NewClass("Greeter", nil)
	cls.Methods.Put("hello", stubCallable("hello body"))
	inst := value.NewInstance(cls)

	m, ok := cls.FindMethod("hello")
	require.True(t, ok)
	bound := &value.BoundMethod{Receiver: inst, Method: m}
	assert.Equal(t, "hello body", bound.String())
}
