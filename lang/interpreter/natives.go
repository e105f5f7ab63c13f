package interpreter

import (
	"fmt"
	"time"

	"github.com/mna/lox/lang/value"
)

// registerNatives installs the reference build's native functions into
// env: clock() and sleep(seconds), the same pair lang/machine installs
// into a Thread's globals.
func registerNatives(env *Environment) {
	env.define("clock", &value.NativeFn{
		Name:  "clock",
		Arity: 0,
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Number(float64(time.Now().UnixMilli())), nil
		},
	})
	env.define("sleep", &value.NativeFn{
		Name:  "sleep",
		Arity: 1,
		Fn: func(args []value.Value) (value.Value, error) {
			n, ok := args[0].(value.Number)
			if !ok {
				return nil, fmt.Errorf("sleep: argument must be a number")
			}
			time.Sleep(time.Duration(float64(n) * float64(time.Second)))
			return value.Nil, nil
		},
	})
}
