package bytecode

// Op is a single bytecode instruction opcode.
type Op byte

// The closed set of opcodes executed by the virtual machine. The comment
// after each entry is a stack picture: the operand stack before and after
// the instruction runs (top of stack on the right).
//
//nolint:revive
const (
	OpConstant Op = iota //            - OpConstant K[i]
	OpNil                //            - OpNil               nil
	OpTrue               //            - OpTrue              true
	OpFalse              //            - OpFalse             false
	OpPop                //            x OpPop               -

	OpGetLocal    //  - OpGetLocal i    stack[base+i]
	OpSetLocal    //  x OpSetLocal i    x
	OpGetGlobal   //  - OpGetGlobal i   globals[K[i]]
	OpSetGlobal   //  x OpSetGlobal i   x
	OpDefineGlobal // x OpDefineGlobal i -
	OpGetUpvalue  //  - OpGetUpvalue i  *upvalues[i]
	OpSetUpvalue  //  x OpSetUpvalue i  x

	OpGetProperty // instance OpGetProperty n   value
	OpSetProperty // instance value OpSetProperty n   value

	OpEqual   // a b OpEqual   bool
	OpGreater // a b OpGreater bool
	OpLess    // a b OpLess    bool

	OpAdd // a b OpAdd -> a+b (or concat)
	OpSub // a b OpSub -> a-b
	OpMul // a b OpMul -> a*b
	OpDiv // a b OpDiv -> a/b

	OpNot    // x OpNot    !x
	OpNegate // x OpNegate -x

	OpPrint // x OpPrint -

	OpJump        //  - OpJump o        -
	OpJumpIfFalse //  x OpJumpIfFalse o x   (condition stays on stack)
	OpLoop        //  - OpLoop o        -

	OpCall // callee arg1..argN OpCall n  result

	OpInvoke      // receiver arg1..argN OpInvoke name,n  result
	OpSuperInvoke // receiver arg1..argN superclass OpSuperInvoke name,n result

	OpClosure      // function OpClosure upspec... closure
	OpCloseUpvalue // x OpCloseUpvalue -

	OpReturn // x OpReturn  (pops frame, pushes x in caller)

	OpClass   // - OpClass name  class
	OpMethod  // class closure OpMethod name class
	OpInherit // superclass subclass OpInherit superclass

	OpGetSuper // instance superclass OpGetSuper n  boundmethod

	maxOp
)

var opNames = [...]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetUpvalue:   "OP_GET_UPVALUE",
	OpSetUpvalue:   "OP_SET_UPVALUE",
	OpGetProperty:  "OP_GET_PROPERTY",
	OpSetProperty:  "OP_SET_PROPERTY",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSub:          "OP_SUBTRACT",
	OpMul:          "OP_MULTIPLY",
	OpDiv:          "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpCall:         "OP_CALL",
	OpInvoke:       "OP_INVOKE",
	OpSuperInvoke:  "OP_SUPER_INVOKE",
	OpClosure:      "OP_CLOSURE",
	OpCloseUpvalue: "OP_CLOSE_UPVALUE",
	OpReturn:       "OP_RETURN",
	OpClass:        "OP_CLASS",
	OpMethod:       "OP_METHOD",
	OpInherit:      "OP_INHERIT",
	OpGetSuper:     "OP_GET_SUPER",
}

func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "OP_UNKNOWN"
}
