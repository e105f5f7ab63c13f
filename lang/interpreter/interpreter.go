// Package interpreter implements the tree-walking evaluator that executes
// the AST lang/parser produces and lang/resolver annotates: the back end
// of the `tree` execution pipeline, as opposed to lang/machine's bytecode
// virtual machine.
package interpreter

import (
	"context"
	"io"
	"os"
	"sync/atomic"

	"github.com/mna/lox/lang/ast"
)

// Interpreter walks a resolved AST directly against lang/value, evaluating
// statements and expressions without ever compiling to bytecode. It is not
// safe for concurrent use, mirroring lang/machine.Thread's single-thread
// scope.
type Interpreter struct {
	// Stdout, Stderr and Stdin are the standard I/O abstractions used by
	// `print` and the native functions. os.Stdout/os.Stderr/os.Stdin are
	// used when nil.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// MaxSteps bounds the number of statements executed before the
	// interpreter cancels itself; <= 0 means unlimited.
	MaxSteps int

	globals     *Environment
	environment *Environment
	calls       []string // active call trace, outermost first

	ctx       context.Context
	ctxCancel func()
	cancelled atomic.Bool
	steps     uint64
	maxSteps  uint64

	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// New returns an Interpreter with its global scope populated with the
// standard native functions (clock, sleep).
func New() *Interpreter {
	it := &Interpreter{globals: newEnvironment(nil)}
	it.environment = it.globals
	registerNatives(it.globals)
	return it
}

func (it *Interpreter) init(ctx context.Context) {
	if it.MaxSteps <= 0 {
		it.maxSteps--
	} else {
		it.maxSteps = uint64(it.MaxSteps)
	}
	it.stdout = it.Stdout
	if it.stdout == nil {
		it.stdout = os.Stdout
	}
	it.stderr = it.Stderr
	if it.stderr == nil {
		it.stderr = os.Stderr
	}
	it.stdin = it.Stdin
	if it.stdin == nil {
		it.stdin = os.Stdin
	}

	ctx, cancel := context.WithCancel(ctx)
	it.ctx = ctx
	it.ctxCancel = cancel
	go func() {
		<-ctx.Done()
		it.cancelled.Store(true)
	}()
}

// Run executes stmts to completion against the interpreter's global scope.
func (it *Interpreter) Run(ctx context.Context, stmts []ast.Stmt) error {
	it.init(ctx)
	defer it.ctxCancel()

	for _, s := range stmts {
		if err := it.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// tick counts one executed statement, failing closed once MaxSteps or
// context cancellation fires -- the tree-walking analogue of
// lang/machine's per-instruction step counter in its dispatch loop.
func (it *Interpreter) tick(line int) error {
	it.steps++
	if it.steps >= it.maxSteps {
		it.ctxCancel()
		return it.runtimeError(line, NativeError, "execution cancelled: %s", context.Cause(it.ctx))
	}
	if it.cancelled.Load() {
		return it.runtimeError(line, NativeError, "execution cancelled: %s", context.Cause(it.ctx))
	}
	return nil
}
