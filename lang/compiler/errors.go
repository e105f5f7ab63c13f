package compiler

import (
	"go/scanner"
	gotoken "go/token"
)

// Kind tags a compile-time diagnostic with the specific failure it
// reports, mirroring the Kind-tagged runtime error taxonomy in
// lang/machine and lang/interpreter.
type Kind int

const (
	UnexpectedCharacter Kind = iota
	UnterminatedString
	UnexpectedToken
	TokenMismatch
	ExpectedExpression
	InvalidAssignmentTarget
	VariableRedeclaration
	UseBeforeInit
	TooManyLocals
	TooManyUpvalues
	TooManyArguments
	JumpTooLarge
	ReturnInInitializer
	ThisOutsideClass
	SuperOutsideClass
	SuperWithoutSuperclass
	InheritFromNonClass

	// Implementation limits beyond spec.md §7's named taxonomy, reported
	// with the same Kind/Diagnostic machinery.
	TooManyConstants
	LoopBodyTooLarge
	ReturnOutsideFunction
)

var kindNames = [...]string{
	UnexpectedCharacter:     "UnexpectedCharacter",
	UnterminatedString:      "UnterminatedString",
	UnexpectedToken:         "UnexpectedToken",
	TokenMismatch:           "TokenMismatch",
	ExpectedExpression:      "ExpectedExpression",
	InvalidAssignmentTarget: "InvalidAssignmentTarget",
	VariableRedeclaration:   "VariableRedeclaration",
	UseBeforeInit:           "UseBeforeInit",
	TooManyLocals:           "TooManyLocals",
	TooManyUpvalues:         "TooManyUpvalues",
	TooManyArguments:        "TooManyArguments",
	JumpTooLarge:            "JumpTooLarge",
	ReturnInInitializer:     "ReturnInInitializer",
	ThisOutsideClass:        "ThisOutsideClass",
	SuperOutsideClass:       "SuperOutsideClass",
	SuperWithoutSuperclass:  "SuperWithoutSuperclass",
	InheritFromNonClass:     "InheritFromNonClass",
	TooManyConstants:        "TooManyConstants",
	LoopBodyTooLarge:        "LoopBodyTooLarge",
	ReturnOutsideFunction:   "ReturnOutsideFunction",
}

func (k Kind) String() string { return kindNames[k] }

// Diagnostic is one Kind-tagged compile error, in addition to the plain
// position/message pair recorded in scanner.ErrorList.
type Diagnostic struct {
	Kind Kind
	Pos  gotoken.Position
	Msg  string
}

// Errors is returned by Compile when one or more diagnostics were
// recorded. Error() formats identically to the underlying
// *scanner.ErrorList, so existing callers that only care about the
// message text see no change; Diagnostics exposes the Kind-tagged detail.
type Errors struct {
	list *scanner.ErrorList
	diag []Diagnostic
}

func (e *Errors) Error() string          { return e.list.Error() }
func (e *Errors) Diagnostics() []Diagnostic { return e.diag }
