// Package maincmd implements the lox command-line tool: flag parsing,
// exit-code mapping and stdio plumbing around the two execution
// pipelines in lang/compiler+lang/machine (the `vm` model) and
// lang/parser+lang/resolver+lang/interpreter (the `tree` model).
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "lox"

// userErrorExitCode is the exit code spec.md §6 assigns to any
// user-visible compile-time or runtime error, matching established Lox
// convention (both taxonomies share one code, unlike clox's classic
// 65/70 split).
const userErrorExitCode = 65

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [--file PATH]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [--file PATH]
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and virtual machine for the Lox programming language.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --model {vm|tree}         Select the execution pipeline: the
                                 bytecode compiler and virtual machine
                                 (the default), or the tree-walking
                                 parser/resolver/interpreter.
       --disassemble             Compile and print the resulting
                                 bytecode chunks instead of running
                                 them. Only valid with --model vm.
       --file PATH               Read source from PATH instead of
                                 starting a REPL.

With no --file, lox reads a program from standard input: one or more
lines, terminated by a blank line, executed as a single chunk, then
repeats.

More information on the lox repository:
       https://github.com/mna/lox
`, binName)
)

// Cmd holds the parsed command line and dispatches to Run.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Model       string `flag:"model"`
	Disassemble bool   `flag:"disassemble"`
	File        string `flag:"file"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string)         { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if c.Model == "" {
		c.Model = "vm"
	}
	if c.Model != "vm" && c.Model != "tree" {
		return fmt.Errorf("--model must be 'vm' or 'tree', got %q", c.Model)
	}
	if c.Disassemble && c.Model != "vm" {
		return fmt.Errorf("--disassemble is only valid with --model vm")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.run(ctx, stdio); err != nil {
		if _, ok := err.(*userError); ok {
			fmt.Fprintln(stdio.Stderr, err)
			return mainer.ExitCode(userErrorExitCode)
		}
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}
	return mainer.Success
}

// userError marks an error originating from the Lox program itself
// (a compile-time or runtime failure), as opposed to a host-side I/O
// failure, so Main can map it to spec.md's dedicated exit code.
type userError struct{ err error }

func (e *userError) Error() string { return e.err.Error() }
func (e *userError) Unwrap() error { return e.err }
