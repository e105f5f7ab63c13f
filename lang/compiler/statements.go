package compiler

import (
	"github.com/mna/lox/lang/bytecode"
	"github.com/mna/lox/lang/token"
)

// declaration compiles one top-level or block-level declaration and
// resynchronizes on error so that a single mistake doesn't abort the
// whole compilation.
func (c *compiler) declaration() {
	switch {
	case c.match(token.CLASS):
		c.classDeclaration()
	case c.match(token.FUN):
		c.funDeclaration()
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicking {
		c.synchronize()
	}
}

func (c *compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *compiler) block() {
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RBRACE, "expect '}' after block")
}

func (c *compiler) printStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "expect ';' after value")
	c.emitOp(bytecode.OpPrint)
}

func (c *compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "expect ';' after expression")
	c.emitOp(bytecode.OpPop)
}

func (c *compiler) ifStatement() {
	c.consume(token.LPAREN, "expect '(' after 'if'")
	c.expression()
	c.consume(token.RPAREN, "expect ')' after condition")

	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()

	elseJump := c.emitJump(bytecode.OpJump)
	c.patchJump(thenJump)
	c.emitOp(bytecode.OpPop)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *compiler) whileStatement() {
	loopStart := c.chunk().Len()
	c.consume(token.LPAREN, "expect '(' after 'while'")
	c.expression()
	c.consume(token.RPAREN, "expect ')' after condition")

	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(bytecode.OpPop)
}

// forStatement desugars `for (init; cond; post) body` into the
// equivalent `while` loop built out of jumps, exactly as clox does, so
// the VM needs no dedicated looping opcode beyond OP_LOOP/OP_JUMP.
func (c *compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPAREN, "expect '(' after 'for'")

	switch {
	case c.match(token.SEMICOLON):
		// no initializer
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := c.chunk().Len()
	exitJump := -1
	if !c.match(token.SEMICOLON) {
		c.expression()
		c.consume(token.SEMICOLON, "expect ';' after loop condition")
		exitJump = c.emitJump(bytecode.OpJumpIfFalse)
		c.emitOp(bytecode.OpPop)
	}

	if !c.match(token.RPAREN) {
		bodyJump := c.emitJump(bytecode.OpJump)
		incrementStart := c.chunk().Len()
		c.expression()
		c.emitOp(bytecode.OpPop)
		c.consume(token.RPAREN, "expect ')' after for clauses")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(bytecode.OpPop)
	}
	c.endScope()
}

func (c *compiler) returnStatement() {
	if c.fn.kind == funcScript {
		c.error(ReturnOutsideFunction, "can't return from top-level code")
	}
	switch {
	case c.match(token.SEMICOLON):
		c.emitReturn()
	default:
		if c.fn.kind == funcInitializer {
			c.error(ReturnInInitializer, "can't return a value from an initializer")
		}
		c.expression()
		c.consume(token.SEMICOLON, "expect ';' after return value")
		c.emitOp(bytecode.OpReturn)
	}
}

func (c *compiler) varDeclaration() {
	global := c.parseVariable("expect variable name")

	if c.match(token.EQUAL) {
		c.expression()
	} else {
		c.emitOp(bytecode.OpNil)
	}
	c.consume(token.SEMICOLON, "expect ';' after variable declaration")
	c.defineVariable(global)
}

// parseVariable consumes an identifier, declares it as a local if inside
// a scope, and returns the constant-pool index to use for
// OP_DEFINE_GLOBAL if it turns out to be a global (the return value is
// meaningless, but harmless, for locals).
func (c *compiler) parseVariable(errMsg string) byte {
	c.consume(token.IDENT, errMsg)
	name := c.previous.Lexeme

	c.declareLocal(name)
	if c.fn.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(name)
}

func (c *compiler) defineVariable(global byte) {
	if c.fn.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(bytecode.OpDefineGlobal, global)
}

func (c *compiler) funDeclaration() {
	global := c.parseVariable("expect function name")
	c.markInitialized()
	c.function(funcFunction)
	c.defineVariable(global)
}

// function compiles a parameter list and body into a brand new fnState,
// leaving an OP_CLOSURE (plus its upvalue operands) emitted into the
// enclosing function's chunk.
func (c *compiler) function(kind funcType) {
	name := c.previous.Lexeme
	c.beginFunction(kind, name)
	c.beginScope()

	c.consume(token.LPAREN, "expect '(' after function name")
	if !c.check(token.RPAREN) {
		for {
			c.fn.fn.Arity++
			if c.fn.fn.Arity > maxArgs {
				c.errorAtCurrent(TooManyArguments, "can't have more than 255 parameters")
			}
			param := c.parseVariable("expect parameter name")
			c.defineVariable(param)
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "expect ')' after parameters")
	c.consume(token.LBRACE, "expect '{' before function body")
	c.block()

	c.endFunction()
}

func (c *compiler) classDeclaration() {
	c.consume(token.IDENT, "expect class name")
	name := c.previous.Lexeme
	nameIdx := c.identifierConstant(name)
	c.declareLocal(name)

	c.emitOpByte(bytecode.OpClass, nameIdx)
	c.defineVariable(nameIdx)

	cs := &classState{enclosing: c.class}
	c.class = cs

	if c.match(token.LESS) {
		c.consume(token.IDENT, "expect superclass name")
		if c.previous.Lexeme == name {
			c.error(InheritFromNonClass, "a class can't inherit from itself")
		}
		c.variable(false) // pushes the superclass value

		c.beginScope()
		c.addLocal("super")
		c.markInitialized()

		c.variableNamed(name, false)
		c.emitOp(bytecode.OpInherit)
		cs.hasSuperclass = true
	}

	c.variableNamed(name, false)
	c.consume(token.LBRACE, "expect '{' before class body")
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.method()
	}
	c.consume(token.RBRACE, "expect '}' after class body")
	c.emitOp(bytecode.OpPop) // the class value pushed by variableNamed above

	if cs.hasSuperclass {
		c.endScope()
	}
	c.class = cs.enclosing
}

func (c *compiler) method() {
	c.consume(token.IDENT, "expect method name")
	name := c.previous.Lexeme
	idx := c.identifierConstant(name)

	kind := funcMethod
	if name == "init" {
		kind = funcInitializer
	}
	c.function(kind)
	c.emitOpByte(bytecode.OpMethod, idx)
}
