package value

import "fmt"

// RuntimeError is returned by the free operator functions below when an
// operand has the wrong type. The virtual machine wraps it with a line
// number and stack trace before reporting it to the user.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func typeError(msg string) error { return &RuntimeError{Message: msg} }

// Equal reports whether a and b are equal under Lox's `==` semantics: nil
// equals only nil, numbers and strings compare by value, booleans compare
// by value, and every other value compares by reference identity.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case NilType:
		_, ok := b.(NilType)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	default:
		return a == b
	}
}

// Less reports whether a < b under Lox's `<` semantics: two numbers
// compare by value, two strings compare lexicographically. Any other
// pairing, including mismatched types, is a runtime error.
func Less(a, b Value) (bool, error) {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		if !ok {
			return false, typeError("operands must be two numbers or two strings")
		}
		return x < y, nil
	case String:
		y, ok := b.(String)
		if !ok {
			return false, typeError("operands must be two numbers or two strings")
		}
		return x < y, nil
	default:
		return false, typeError("operands must be two numbers or two strings")
	}
}

// Greater reports whether a > b; see Less for the type rules.
func Greater(a, b Value) (bool, error) {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		if !ok {
			return false, typeError("operands must be two numbers or two strings")
		}
		return x > y, nil
	case String:
		y, ok := b.(String)
		if !ok {
			return false, typeError("operands must be two numbers or two strings")
		}
		return x > y, nil
	default:
		return false, typeError("operands must be two numbers or two strings")
	}
}

// Add implements the `+` operator: numeric addition for two numbers,
// concatenation for two strings. Mixed operand types are a runtime error.
func Add(a, b Value) (Value, error) {
	if x, ok := a.(Number); ok {
		if y, ok := b.(Number); ok {
			return x + y, nil
		}
		return nil, typeError("operands must be two numbers or two strings")
	}
	if x, ok := a.(String); ok {
		if y, ok := b.(String); ok {
			return x + y, nil
		}
		return nil, typeError("operands must be two numbers or two strings")
	}
	return nil, typeError("operands must be two numbers or two strings")
}

// Sub implements the `-` binary operator.
func Sub(a, b Value) (Value, error) {
	x, y, err := numberOperands(a, b)
	if err != nil {
		return nil, err
	}
	return x - y, nil
}

// Mul implements the `*` operator.
func Mul(a, b Value) (Value, error) {
	x, y, err := numberOperands(a, b)
	if err != nil {
		return nil, err
	}
	return x * y, nil
}

// Div implements the `/` operator. Division by zero follows IEEE 754
// float semantics (+/-Inf or NaN) rather than erroring, matching the
// reference implementation's float64 arithmetic.
func Div(a, b Value) (Value, error) {
	x, y, err := numberOperands(a, b)
	if err != nil {
		return nil, err
	}
	return x / y, nil
}

// Negate implements unary `-`.
func Negate(a Value) (Value, error) {
	x, ok := a.(Number)
	if !ok {
		return nil, typeError("operand must be a number")
	}
	return -x, nil
}

func numberOperands(a, b Value) (Number, Number, error) {
	x, ok := a.(Number)
	if !ok {
		return 0, 0, typeError("operands must be numbers")
	}
	y, ok := b.(Number)
	if !ok {
		return 0, 0, typeError("operands must be numbers")
	}
	return x, y, nil
}

// CallableArity returns the declared arity of any value that can appear
// in callee position, and false if v is not callable.
func CallableArity(v Value) (int, bool) {
	switch c := v.(type) {
	case *Closure:
		return c.Function.Arity, true
	case *NativeFn:
		return c.Arity, true
	case *Class:
		if init, ok := c.FindMethod("init"); ok {
			return CallableArity(init)
		}
		return 0, true
	case *BoundMethod:
		return CallableArity(c.Method)
	default:
		return 0, false
	}
}

// Describe names a value together with its type, e.g. "3 (number)".
func Describe(v Value) string {
	return fmt.Sprintf("%s (%s)", v.String(), v.Type())
}
