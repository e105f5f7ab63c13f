package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/mna/mainer"
	"github.com/mna/lox/lang/interpreter"
	"github.com/mna/lox/lang/machine"
)

// repl reads source from stdin, one or more lines terminated by a blank
// line, executes each such chunk against a persistent pipeline instance
// (so top-level vars and classes survive to the next chunk, as clox's
// repl() does by reusing one VM across lines), and repeats until EOF.
func (c *Cmd) repl(ctx context.Context, stdio mainer.Stdio) error {
	var vmThread *machine.Thread
	var treeInterp *interpreter.Interpreter
	if c.Model == "tree" {
		treeInterp = interpreter.New()
	} else {
		vmThread = machine.New()
	}

	scan := bufio.NewScanner(stdio.Stdin)
	var buf strings.Builder
	for scan.Scan() {
		line := scan.Text()
		if line != "" {
			buf.WriteString(line)
			buf.WriteByte('\n')
			continue
		}
		if buf.Len() == 0 {
			continue
		}
		src := buf.String()
		buf.Reset()
		if err := c.runChunk(ctx, stdio, src, vmThread, treeInterp); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
		}
	}
	if buf.Len() > 0 {
		if err := c.runChunk(ctx, stdio, buf.String(), vmThread, treeInterp); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
		}
	}
	return scan.Err()
}
