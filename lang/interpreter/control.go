package interpreter

import "github.com/mna/lox/lang/value"

// returnSignal unwinds execStmt/execBlock's ordinary error-propagation
// path back to the enclosing callFunction when a `return` statement
// executes. It satisfies the error interface purely to ride back up
// through the same error-return plumbing every other statement uses; it
// is never surfaced to a caller as an actual failure.
type returnSignal struct {
	value value.Value
}

func (returnSignal) Error() string { return "return" }
