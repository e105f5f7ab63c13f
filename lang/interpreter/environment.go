package interpreter

import "github.com/mna/lox/lang/value"

// Environment is one lexical scope: a table of variable bindings and a
// pointer to the enclosing scope (nil for the global scope). It plays the
// same role for the tree-walking pipeline that the operand stack's local
// slots play for lang/machine, except bindings are named rather than
// indexed, since lang/resolver annotates references with a scope
// *distance* rather than a slot index.
type Environment struct {
	enclosing *Environment
	values    map[string]value.Value
}

func newEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: map[string]value.Value{}}
}

// define binds name to v in this scope, shadowing any enclosing binding.
// Lox allows redeclaring a var in the same scope, so define never checks
// for an existing entry.
func (e *Environment) define(name string, v value.Value) {
	e.values[name] = v
}

// get looks up name in this scope only, without walking enclosing scopes.
// It is used for the global scope, which resolver.Depth == -1 points at
// directly.
func (e *Environment) get(name string) (value.Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// assign overwrites name's binding in this scope if it exists, reporting
// whether it did.
func (e *Environment) assign(name string, v value.Value) bool {
	if _, ok := e.values[name]; !ok {
		return false
	}
	e.values[name] = v
	return true
}

// ancestor walks up distance enclosing scopes.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// getAt reads name out of the scope distance levels up, per the depth
// lang/resolver recorded on the referencing ast node.
func (e *Environment) getAt(distance int, name string) value.Value {
	v, _ := e.ancestor(distance).get(name)
	return v
}

// assignAt overwrites name in the scope distance levels up.
func (e *Environment) assignAt(distance int, name string, v value.Value) {
	e.ancestor(distance).define(name, v)
}
