// Package compiler implements the single-pass Pratt-parser compiler that
// turns Lox source directly into a bytecode.Chunk, with no intervening
// AST. It is the front end of the `vm` execution pipeline (as opposed to
// the `tree` pipeline in lang/ast, lang/parser and lang/interpreter).
package compiler

import (
	"fmt"
	"go/scanner"
	gotoken "go/token"

	"github.com/mna/lox/lang/bytecode"
	loxscanner "github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
	"github.com/mna/lox/lang/value"
)

const (
	maxLocals   = 256
	maxUpvalues = 256
	maxArgs     = 255
)

// funcType distinguishes the kind of function body currently being
// compiled, since `this`, `super` and implicit returns behave differently
// for each.
type funcType int

const (
	funcScript funcType = iota
	funcFunction
	funcMethod
	funcInitializer
)

// local is a compile-time record of a block-scoped variable living on the
// VM operand stack.
type local struct {
	name       string
	depth      int // -1 while being defined, to detect "var x = x;"
	isCaptured bool
}

// upvalueRef records where a compiled function's upvalue comes from: a
// local slot in the immediately enclosing function, or an upvalue already
// captured by it.
type upvalueRef struct {
	index   uint8
	isLocal bool
}

// classState tracks nested class declarations, for `this` and `super`
// resolution and for rejecting `return` with a value inside `init`.
type classState struct {
	enclosing     *classState
	hasSuperclass bool
}

// fnState is one level of the compiler's call stack, one per nested
// function (including the implicit top-level script function).
type fnState struct {
	enclosing *fnState

	fn   *value.Function
	kind funcType

	locals     []local
	upvalues   []upvalueRef
	scopeDepth int
}

// compiler holds all state for compiling one source file into a chain of
// value.Function values (the script function and everything nested
// inside it).
type compiler struct {
	scan *loxscanner.Scanner

	previous token.Token
	current  token.Token

	errs      scanner.ErrorList
	diag      []Diagnostic
	panicking bool

	fn    *fnState
	class *classState
}

// Compile compiles src into the top-level script Function. More than one
// error may be reported; the returned error, if any, is a *Errors, whose
// Error() formats identically to a *scanner.ErrorList (the standard
// library's go/scanner package, reused here purely as a ready-made
// multi-error aggregator, the same role the teacher's parser gives it)
// and whose Diagnostics() exposes each error's Kind.
func Compile(src string) (*value.Function, error) {
	c := &compiler{scan: loxscanner.New(src)}
	c.beginFunction(funcScript, "")

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	fn := c.endFunction()

	c.errs.Sort()
	if err := c.errs.Err(); err != nil {
		if list, ok := err.(scanner.ErrorList); ok {
			return nil, &Errors{list: &list, diag: c.diag}
		}
		return nil, err
	}
	return fn, nil
}

func (c *compiler) beginFunction(kind funcType, name string) {
	fs := &fnState{
		enclosing: c.fn,
		kind:      kind,
		fn: &value.Function{
			Name:  name,
			Chunk: &bytecode.Chunk{},
		},
	}
	// Slot zero is reserved: the receiver for methods/initializers, or an
	// unnamed, unusable slot for plain functions and the top-level script.
	slotName := ""
	if kind == funcMethod || kind == funcInitializer {
		slotName = "this"
	}
	fs.locals = append(fs.locals, local{name: slotName, depth: 0})
	c.fn = fs
}

func (c *compiler) endFunction() *value.Function {
	c.emitReturn()
	fn := c.fn.fn
	fn.UpvalueCnt = len(c.fn.upvalues)
	fn.IsInitMethod = c.fn.kind == funcInitializer
	upvalues := c.fn.upvalues
	enclosing := c.fn.enclosing
	c.fn = enclosing
	if enclosing != nil {
		// Record how the enclosing function's OP_CLOSURE should build this
		// function's upvalue array: one (isLocal, index) pair per upvalue.
		idx := c.chunk().AddConstant(fn)
		c.emitOp(bytecode.OpClosure)
		c.emitByte(byte(idx))
		for _, uv := range upvalues {
			if uv.isLocal {
				c.emitByte(1)
			} else {
				c.emitByte(0)
			}
			c.emitByte(uv.index)
		}
	}
	return fn
}

func (c *compiler) chunk() *bytecode.Chunk { return c.fn.fn.Chunk }

// --- token stream -----------------------------------------------------

func (c *compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scan.Scan()
		if c.current.Kind != token.ILLEGAL {
			break
		}
		kind := UnexpectedCharacter
		if c.current.Lexeme == "unterminated string" {
			kind = UnterminatedString
		}
		c.errorAtCurrent(kind, c.current.Lexeme)
	}
}

func (c *compiler) check(k token.Kind) bool { return c.current.Kind == k }

func (c *compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *compiler) consume(k token.Kind, msg string) {
	if c.current.Kind == k {
		c.advance()
		return
	}
	c.errorAtCurrent(TokenMismatch, msg)
}

// --- error reporting ---------------------------------------------------

func (c *compiler) errorAtCurrent(kind Kind, msg string) { c.errorAt(c.current, kind, msg) }
func (c *compiler) error(kind Kind, msg string)          { c.errorAt(c.previous, kind, msg) }

func (c *compiler) errorAt(t token.Token, kind Kind, msg string) {
	if c.panicking {
		return
	}
	c.panicking = true

	where := "at '" + t.Lexeme + "'"
	if t.Kind == token.EOF {
		where = "at end"
	}
	pos := gotoken.Position{Line: t.Line}
	c.errs.Add(pos, fmt.Sprintf("%s: %s", where, msg))
	c.diag = append(c.diag, Diagnostic{Kind: kind, Pos: pos, Msg: msg})
}

// synchronize discards tokens until it reaches a statement boundary,
// after a compile error, so that one mistake doesn't cascade into a wall
// of spurious follow-on errors.
func (c *compiler) synchronize() {
	c.panicking = false
	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.SEMICOLON {
			return
		}
		switch c.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// --- bytecode emission --------------------------------------------------

func (c *compiler) emitByte(b byte)       { c.chunk().WriteByte(b, c.previous.Line) }
func (c *compiler) emitOp(op bytecode.Op) { c.chunk().WriteOp(op, c.previous.Line) }

func (c *compiler) emitOpByte(op bytecode.Op, b byte) {
	c.emitOp(op)
	c.emitByte(b)
}

func (c *compiler) emitReturn() {
	if c.fn.kind == funcInitializer {
		c.emitOpByte(bytecode.OpGetLocal, 0)
	} else {
		c.emitOp(bytecode.OpNil)
	}
	c.emitOp(bytecode.OpReturn)
}

func (c *compiler) emitConstant(v value.Value) {
	idx := c.chunk().AddConstant(v)
	if idx > 0xff {
		c.error(TooManyConstants, "too many constants in one chunk")
		return
	}
	c.emitOpByte(bytecode.OpConstant, byte(idx))
}

// emitJump emits a two-byte placeholder operand after op and returns its
// offset, to be patched later by patchJump.
func (c *compiler) emitJump(op bytecode.Op) int {
	c.emitOp(op)
	return c.chunk().WriteU16(0xffff, c.previous.Line)
}

func (c *compiler) patchJump(at int) {
	jump := c.chunk().Len() - (at + 2)
	if jump > 0xffff {
		c.error(JumpTooLarge, "too much code to jump over")
	}
	c.chunk().PatchU16(at, uint16(jump))
}

func (c *compiler) emitLoop(loopStart int) {
	c.emitOp(bytecode.OpLoop)
	offset := c.chunk().Len() - loopStart + 2
	if offset > 0xffff {
		c.error(LoopBodyTooLarge, "loop body too large")
	}
	c.chunk().WriteU16(uint16(offset), c.previous.Line)
}
