package compiler

import "github.com/mna/lox/lang/token"

// precedence is the binding power of an infix operator; higher binds
// tighter. Mirrors clox's enum exactly.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

type (
	prefixFn func(c *compiler, canAssign bool)
	infixFn  func(c *compiler, canAssign bool)
)

type parseRule struct {
	prefix     prefixFn
	infix      infixFn
	precedence precedence
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
		token.LPAREN:        {(*compiler).grouping, (*compiler).call, precCall},
		token.DOT:           {nil, (*compiler).dot, precCall},
		token.MINUS:         {(*compiler).unary, (*compiler).binary, precTerm},
		token.PLUS:          {nil, (*compiler).binary, precTerm},
		token.SLASH:         {nil, (*compiler).binary, precFactor},
		token.STAR:          {nil, (*compiler).binary, precFactor},
		token.BANG:          {(*compiler).unary, nil, precNone},
		token.BANG_EQUAL:    {nil, (*compiler).binary, precEquality},
		token.EQUAL_EQUAL:   {nil, (*compiler).binary, precEquality},
		token.GREATER:       {nil, (*compiler).binary, precComparison},
		token.GREATER_EQUAL: {nil, (*compiler).binary, precComparison},
		token.LESS:          {nil, (*compiler).binary, precComparison},
		token.LESS_EQUAL:    {nil, (*compiler).binary, precComparison},
		token.IDENT:         {(*compiler).variable, nil, precNone},
		token.STRING:        {(*compiler).stringLit, nil, precNone},
		token.NUMBER:        {(*compiler).number, nil, precNone},
		token.AND:           {nil, (*compiler).and, precAnd},
		token.OR:            {nil, (*compiler).or, precOr},
		token.FALSE:         {(*compiler).literal, nil, precNone},
		token.TRUE:          {(*compiler).literal, nil, precNone},
		token.NIL:           {(*compiler).literal, nil, precNone},
		token.THIS:          {(*compiler).this, nil, precNone},
		token.SUPER:         {(*compiler).super, nil, precNone},
	}
}

func getRule(k token.Kind) parseRule {
	if r, ok := rules[k]; ok {
		return r
	}
	return parseRule{precedence: precNone}
}

// expression compiles a full expression at precAssignment, the lowest
// precedence that still excludes bare comma sequences and declarations.
func (c *compiler) expression() {
	c.parsePrecedence(precAssignment)
}

// parsePrecedence is the heart of the Pratt parser: it consumes a prefix
// token, then repeatedly consumes infix operators whose precedence is at
// least prec, building up the expression's bytecode as it goes.
func (c *compiler) parsePrecedence(prec precedence) {
	c.advance()
	rule := getRule(c.previous.Kind)
	if rule.prefix == nil {
		c.error(ExpectedExpression, "expect expression")
		return
	}

	canAssign := prec <= precAssignment
	rule.prefix(c, canAssign)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.EQUAL) {
		c.error(InvalidAssignmentTarget, "invalid assignment target")
	}
}
