// Package machine implements the stack-based virtual machine that
// executes the bytecode produced by lang/compiler: an explicit call-frame
// array, a flat operand stack, a globals table, and upvalue closing.
package machine

import (
	"context"
	"io"
	"os"
	"sync/atomic"

	"github.com/dolthub/swiss"
	"github.com/mna/lox/lang/value"
)

const maxFrames = 64

// Thread is one independent execution of compiled Lox bytecode. It owns
// its call-frame stack, its operand stack, its global variable table and
// the list of currently-open upvalues, and is not safe for concurrent
// use — spec.md scopes the VM itself to a single thread of execution.
type Thread struct {
	// Name optionally identifies the thread for diagnostics.
	Name string

	// Stdout, Stderr and Stdin are the standard I/O abstractions used by
	// `print` and the native functions. os.Stdout/os.Stderr/os.Stdin are
	// used when nil.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// MaxSteps bounds the number of executed instructions before the
	// thread cancels itself; <= 0 means unlimited.
	MaxSteps int

	Globals *swiss.Map[string, value.Value]

	frames []Frame
	stack  []value.Value
	open   []*value.Upvalue // open upvalues, ascending by absolute stack index

	ctx       context.Context
	ctxCancel func()
	cancelled atomic.Bool
	steps     uint64
	maxSteps  uint64

	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// New returns a Thread with its global table populated with the standard
// native functions (clock, sleep).
func New() *Thread {
	th := &Thread{Globals: swiss.NewMap[string, value.Value](uint32(8))}
	registerNatives(th)
	return th
}

func (th *Thread) init(ctx context.Context) {
	if th.MaxSteps <= 0 {
		th.maxSteps--
	} else {
		th.maxSteps = uint64(th.MaxSteps)
	}
	th.stdout = th.Stdout
	if th.stdout == nil {
		th.stdout = os.Stdout
	}
	th.stderr = th.Stderr
	if th.stderr == nil {
		th.stderr = os.Stderr
	}
	th.stdin = th.Stdin
	if th.stdin == nil {
		th.stdin = os.Stdin
	}

	ctx, cancel := context.WithCancel(ctx)
	th.ctx = ctx
	th.ctxCancel = cancel
	go func() {
		<-ctx.Done()
		th.cancelled.Store(true)
	}()
}

// Run wraps fn in the thread's initial closure and executes it to
// completion, returning the value the script function returns (always
// nil, since the compiler rejects `return` in top-level code) and any
// runtime error encountered.
func (th *Thread) Run(ctx context.Context, fn *value.Function) (value.Value, error) {
	th.init(ctx)

	closure := &value.Closure{Function: fn}
	th.push(closure)
	th.frames = append(th.frames, Frame{Closure: closure, SlotsOffset: 0})

	return th.run()
}

// --- operand stack ------------------------------------------------------

func (th *Thread) push(v value.Value) { th.stack = append(th.stack, v) }

func (th *Thread) pop() value.Value {
	n := len(th.stack) - 1
	v := th.stack[n]
	th.stack = th.stack[:n]
	return v
}

func (th *Thread) peek(distance int) value.Value {
	return th.stack[len(th.stack)-1-distance]
}

// truncate pops the stack down to absolute index n, closing any open
// upvalues that pointed at or above it.
func (th *Thread) truncate(n int) {
	th.closeUpvalues(n)
	th.stack = th.stack[:n]
}
