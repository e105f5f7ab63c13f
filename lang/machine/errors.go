package machine

import (
	"fmt"
	"strings"
)

// Kind classifies a runtime error raised by the virtual machine, mirroring
// the taxonomy of compile-time error kinds in lang/compiler.
type Kind int

const (
	OperandTypeMismatch Kind = iota
	UndefinedVariable
	UndefinedProperty
	PropertyOnNonInstance
	NotCallable
	ArityMismatch
	StackOverflow
	NativeError
)

var kindNames = [...]string{
	OperandTypeMismatch:   "OperandTypeMismatch",
	UndefinedVariable:     "UndefinedVariable",
	UndefinedProperty:     "UndefinedProperty",
	PropertyOnNonInstance: "PropertyOnNonInstance",
	NotCallable:           "NotCallable",
	ArityMismatch:         "ArityMismatch",
	StackOverflow:         "StackOverflow",
	NativeError:           "NativeError",
}

func (k Kind) String() string { return kindNames[k] }

// RuntimeError is returned by Thread.Run when execution fails. It carries
// the offending frame's source line and a top-down stack trace, composed
// the way spec.md §7 requires: one line per frame, naming
// frame.closure.function.name and chunk.line[frame.ip-1].
type RuntimeError struct {
	Kind    Kind
	Message string
	Line    int
	Trace   []string
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.Message)
	for _, fr := range e.Trace {
		fmt.Fprintf(&b, "[line %s\n", fr)
	}
	return b.String()
}

func (th *Thread) runtimeError(kind Kind, format string, args ...any) *RuntimeError {
	err := &RuntimeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
	if len(th.frames) > 0 {
		err.Line = th.frames[len(th.frames)-1].line()
	}
	for i := len(th.frames) - 1; i >= 0; i-- {
		fr := &th.frames[i]
		name := fr.Closure.Function.Name
		if name == "" {
			err.Trace = append(err.Trace, fmt.Sprintf("%d] in script", fr.line()))
		} else {
			err.Trace = append(err.Trace, fmt.Sprintf("%d] in %s()", fr.line(), name))
		}
	}
	return err
}
