package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/lox/lang/bytecode"
	"github.com/mna/lox/lang/compiler"
	"github.com/mna/lox/lang/interpreter"
	"github.com/mna/lox/lang/machine"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
)

// run dispatches to a single file run or an interactive REPL, per
// spec.md §6: `--file PATH` supplies the source, otherwise stdin drives
// a REPL.
func (c *Cmd) run(ctx context.Context, stdio mainer.Stdio) error {
	if c.File != "" {
		src, err := os.ReadFile(c.File)
		if err != nil {
			return fmt.Errorf("read %s: %w", c.File, err)
		}
		return c.runChunk(ctx, stdio, string(src), nil, nil)
	}
	return c.repl(ctx, stdio)
}

// runChunk executes src against the selected pipeline. vmThread and
// treeInterp, when non-nil, are reused across calls so a REPL session's
// globals persist between chunks, exactly as clox's repl() keeps
// evaluating lines against the same VM instance.
func (c *Cmd) runChunk(ctx context.Context, stdio mainer.Stdio, src string, vmThread *machine.Thread, treeInterp *interpreter.Interpreter) error {
	switch c.Model {
	case "tree":
		return c.runTree(ctx, stdio, src, treeInterp)
	default:
		return c.runVM(ctx, stdio, src, vmThread)
	}
}

func (c *Cmd) runVM(ctx context.Context, stdio mainer.Stdio, src string, th *machine.Thread) error {
	fn, err := compiler.Compile(src)
	if err != nil {
		return &userError{err}
	}
	if c.Disassemble {
		name := fn.Name
		if name == "" {
			name = "script"
		}
		bytecode.Disassemble(stdio.Stdout, fn.Chunk, name)
		return nil
	}

	if th == nil {
		th = machine.New()
	}
	th.Stdout = stdio.Stdout
	th.Stderr = stdio.Stderr
	th.Stdin = stdio.Stdin

	if _, err := th.Run(ctx, fn); err != nil {
		return &userError{err}
	}
	return nil
}

func (c *Cmd) runTree(ctx context.Context, stdio mainer.Stdio, src string, it *interpreter.Interpreter) error {
	stmts, err := parser.Parse(src)
	if err != nil {
		return &userError{err}
	}
	if err := resolver.Resolve(stmts); err != nil {
		return &userError{err}
	}

	if it == nil {
		it = interpreter.New()
	}
	it.Stdout = stdio.Stdout
	it.Stderr = stdio.Stderr
	it.Stdin = stdio.Stdin

	if err := it.Run(ctx, stmts); err != nil {
		return &userError{err}
	}
	return nil
}
