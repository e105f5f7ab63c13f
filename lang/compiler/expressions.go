package compiler

import (
	"strconv"

	"github.com/mna/lox/lang/bytecode"
	"github.com/mna/lox/lang/token"
	"github.com/mna/lox/lang/value"
)

func (c *compiler) number(canAssign bool) {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error(ExpectedExpression, "invalid number literal")
		return
	}
	c.emitConstant(value.Number(n))
}

func (c *compiler) stringLit(canAssign bool) {
	c.emitConstant(value.String(c.previous.Literal))
}

func (c *compiler) literal(canAssign bool) {
	switch c.previous.Kind {
	case token.FALSE:
		c.emitOp(bytecode.OpFalse)
	case token.TRUE:
		c.emitOp(bytecode.OpTrue)
	case token.NIL:
		c.emitOp(bytecode.OpNil)
	}
}

func (c *compiler) grouping(canAssign bool) {
	c.expression()
	c.consume(token.RPAREN, "expect ')' after expression")
}

func (c *compiler) unary(canAssign bool) {
	op := c.previous.Kind
	c.parsePrecedence(precUnary)
	switch op {
	case token.MINUS:
		c.emitOp(bytecode.OpNegate)
	case token.BANG:
		c.emitOp(bytecode.OpNot)
	}
}

func (c *compiler) binary(canAssign bool) {
	op := c.previous.Kind
	rule := getRule(op)
	c.parsePrecedence(rule.precedence + 1)

	switch op {
	case token.BANG_EQUAL:
		c.emitOp(bytecode.OpEqual)
		c.emitOp(bytecode.OpNot)
	case token.EQUAL_EQUAL:
		c.emitOp(bytecode.OpEqual)
	case token.GREATER:
		c.emitOp(bytecode.OpGreater)
	case token.GREATER_EQUAL:
		c.emitOp(bytecode.OpLess)
		c.emitOp(bytecode.OpNot)
	case token.LESS:
		c.emitOp(bytecode.OpLess)
	case token.LESS_EQUAL:
		c.emitOp(bytecode.OpGreater)
		c.emitOp(bytecode.OpNot)
	case token.PLUS:
		c.emitOp(bytecode.OpAdd)
	case token.MINUS:
		c.emitOp(bytecode.OpSub)
	case token.STAR:
		c.emitOp(bytecode.OpMul)
	case token.SLASH:
		c.emitOp(bytecode.OpDiv)
	}
}

func (c *compiler) and(canAssign bool) {
	endJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

func (c *compiler) or(canAssign bool) {
	elseJump := c.emitJump(bytecode.OpJumpIfFalse)
	endJump := c.emitJump(bytecode.OpJump)

	c.patchJump(elseJump)
	c.emitOp(bytecode.OpPop)

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

// call compiles a call expression's argument list; the callee has
// already been compiled and left on the stack by the preceding prefix
// or infix rule.
func (c *compiler) call(canAssign bool) {
	argc := c.argumentList()
	c.emitOpByte(bytecode.OpCall, argc)
}

func (c *compiler) argumentList() byte {
	var argc int
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			if argc == maxArgs {
				c.error(TooManyArguments, "can't have more than 255 arguments")
			}
			argc++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "expect ')' after arguments")
	return byte(argc)
}

// dot compiles a property access/assignment/method-call-shortcut
// following `.`. The receiver has already been compiled and left on the
// stack.
func (c *compiler) dot(canAssign bool) {
	c.consume(token.IDENT, "expect property name after '.'")
	name := c.previous.Lexeme
	idx := c.identifierConstant(name)

	switch {
	case canAssign && c.match(token.EQUAL):
		c.expression()
		c.emitOpByte(bytecode.OpSetProperty, idx)
	case c.match(token.LPAREN):
		argc := c.argumentList()
		c.emitOp(bytecode.OpInvoke)
		c.emitByte(idx)
		c.emitByte(argc)
	default:
		c.emitOpByte(bytecode.OpGetProperty, idx)
	}
}

func (c *compiler) this(canAssign bool) {
	if c.class == nil {
		c.error(ThisOutsideClass, "can't use 'this' outside of a class")
		return
	}
	c.variableNamed("this", false)
}

func (c *compiler) super(canAssign bool) {
	switch {
	case c.class == nil:
		c.error(SuperOutsideClass, "can't use 'super' outside of a class")
	case !c.class.hasSuperclass:
		c.error(SuperWithoutSuperclass, "can't use 'super' in a class with no superclass")
	}

	c.consume(token.DOT, "expect '.' after 'super'")
	c.consume(token.IDENT, "expect superclass method name")
	idx := c.identifierConstant(c.previous.Lexeme)

	c.variableNamed("this", false)
	if c.match(token.LPAREN) {
		argc := c.argumentList()
		c.variableNamed("super", false)
		c.emitOp(bytecode.OpSuperInvoke)
		c.emitByte(idx)
		c.emitByte(argc)
		return
	}
	c.variableNamed("super", false)
	c.emitOpByte(bytecode.OpGetSuper, idx)
}

// identifierConstant interns name in the chunk's constant pool and
// returns its index, used for global names and property names (anything
// the VM must look up by string rather than by stack slot).
func (c *compiler) identifierConstant(name string) byte {
	idx := c.chunk().AddConstant(value.String(name))
	if idx > 0xff {
		c.error(TooManyConstants, "too many constants in one chunk")
	}
	return byte(idx)
}

func (c *compiler) variable(canAssign bool) {
	c.variableNamed(c.previous.Lexeme, canAssign)
}

func (c *compiler) variableNamed(name string, canAssign bool) {
	var getOp, setOp bytecode.Op
	slot := resolveLocal(c.fn, name)
	switch {
	case slot == -2:
		c.error(UseBeforeInit, "can't read local variable in its own initializer")
		slot = 0
		getOp, setOp = bytecode.OpGetLocal, bytecode.OpSetLocal
	case slot >= 0:
		getOp, setOp = bytecode.OpGetLocal, bytecode.OpSetLocal
	default:
		if up := resolveUpvalue(c.fn, name); up >= 0 {
			slot = up
			getOp, setOp = bytecode.OpGetUpvalue, bytecode.OpSetUpvalue
		} else {
			slot = int(c.identifierConstant(name))
			getOp, setOp = bytecode.OpGetGlobal, bytecode.OpSetGlobal
		}
	}

	if canAssign && c.match(token.EQUAL) {
		c.expression()
		c.emitOpByte(setOp, byte(slot))
		return
	}
	c.emitOpByte(getOp, byte(slot))
}
