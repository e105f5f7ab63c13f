package compiler

import "github.com/mna/lox/lang/bytecode"

func (c *compiler) beginScope() { c.fn.scopeDepth++ }

// endScope pops every local declared in the scope being left, emitting
// OP_CLOSE_UPVALUE for any of them that an inner closure captured so the
// value survives on the heap after its stack slot is reused.
func (c *compiler) endScope() {
	c.fn.scopeDepth--
	locals := c.fn.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.fn.scopeDepth {
		if locals[len(locals)-1].isCaptured {
			c.emitOp(bytecode.OpCloseUpvalue)
		} else {
			c.emitOp(bytecode.OpPop)
		}
		locals = locals[:len(locals)-1]
	}
	c.fn.locals = locals
}

// declareLocal registers name as a new local in the current scope. It is
// a compile error to redeclare a name already bound in the same scope.
func (c *compiler) declareLocal(name string) {
	if c.fn.scopeDepth == 0 {
		return
	}
	for i := len(c.fn.locals) - 1; i >= 0; i-- {
		l := c.fn.locals[i]
		if l.depth != -1 && l.depth < c.fn.scopeDepth {
			break
		}
		if l.name == name {
			c.error(VariableRedeclaration, "already a variable with this name in this scope")
		}
	}
	c.addLocal(name)
}

func (c *compiler) addLocal(name string) {
	if len(c.fn.locals) >= maxLocals {
		c.error(TooManyLocals, "too many local variables in function")
		return
	}
	c.fn.locals = append(c.fn.locals, local{name: name, depth: -1})
}

// markInitialized makes the most recently declared local resolvable,
// once its initializer expression has finished compiling.
func (c *compiler) markInitialized() {
	if c.fn.scopeDepth == 0 {
		return
	}
	c.fn.locals[len(c.fn.locals)-1].depth = c.fn.scopeDepth
}

// resolveLocal returns the stack slot of name in fs, or -1 if fs has no
// such local in scope.
func resolveLocal(fs *fnState, name string) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].name == name {
			if fs.locals[i].depth == -1 {
				return -2 // sentinel: "read own initializer" error, see caller
			}
			return i
		}
	}
	return -1
}

// resolveUpvalue recursively resolves name as a captured variable of an
// enclosing function, adding upvalue chain entries as needed, or returns
// -1 if name is not found in any enclosing scope (and is therefore a
// global).
func resolveUpvalue(fs *fnState, name string) int {
	if fs.enclosing == nil {
		return -1
	}
	if slot := resolveLocal(fs.enclosing, name); slot >= 0 {
		fs.enclosing.locals[slot].isCaptured = true
		return addUpvalue(fs, uint8(slot), true)
	}
	if up := resolveUpvalue(fs.enclosing, name); up >= 0 {
		return addUpvalue(fs, uint8(up), false)
	}
	return -1
}

func addUpvalue(fs *fnState, index uint8, isLocal bool) int {
	for i, uv := range fs.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if len(fs.upvalues) >= maxUpvalues {
		return -1
	}
	fs.upvalues = append(fs.upvalues, upvalueRef{index: index, isLocal: isLocal})
	return len(fs.upvalues) - 1
}
