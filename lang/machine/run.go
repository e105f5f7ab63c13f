package machine

import (
	"context"
	"fmt"

	"github.com/mna/lox/lang/bytecode"
	"github.com/mna/lox/lang/value"
)

// run is the bytecode dispatch loop. It executes frames from
// th.frames[len(th.frames)-1] until that frame (the one active when run
// was entered) returns, following the teacher's switch-dispatch idiom:
// explicit sp/pc-equivalent locals refreshed from the frame, and an
// inFlightErr checked once per loop iteration rather than propagated by
// a Go panic/recover.
func (th *Thread) run() (value.Value, error) {
	baseFrame := len(th.frames) - 1
	var result value.Value

	for {
		th.steps++
		if th.steps >= th.maxSteps {
			th.ctxCancel()
			return nil, th.runtimeError(NativeError, "execution cancelled: %s", context.Cause(th.ctx))
		}
		if th.cancelled.Load() {
			return nil, th.runtimeError(NativeError, "execution cancelled: %s", context.Cause(th.ctx))
		}

		fr := &th.frames[len(th.frames)-1]
		chunk := fr.Closure.Function.Chunk
		op := bytecode.Op(chunk.Code[fr.IP])
		fr.IP++

		switch op {
		case bytecode.OpConstant:
			idx := chunk.Code[fr.IP]
			fr.IP++
			th.push(chunk.GetConstant(int(idx)).(value.Value))

		case bytecode.OpNil:
			th.push(value.Nil)
		case bytecode.OpTrue:
			th.push(value.Bool(true))
		case bytecode.OpFalse:
			th.push(value.Bool(false))
		case bytecode.OpPop:
			th.pop()

		case bytecode.OpGetLocal:
			slot := int(chunk.Code[fr.IP])
			fr.IP++
			th.push(th.stack[fr.SlotsOffset+slot])
		case bytecode.OpSetLocal:
			slot := int(chunk.Code[fr.IP])
			fr.IP++
			th.stack[fr.SlotsOffset+slot] = th.peek(0)

		case bytecode.OpGetGlobal:
			idx := chunk.Code[fr.IP]
			fr.IP++
			name := string(chunk.GetConstant(int(idx)).(value.String))
			v, ok := th.Globals.Get(name)
			if !ok {
				return nil, th.runtimeError(UndefinedVariable, "undefined variable '%s'", name)
			}
			th.push(v)
		case bytecode.OpSetGlobal:
			idx := chunk.Code[fr.IP]
			fr.IP++
			name := string(chunk.GetConstant(int(idx)).(value.String))
			if _, ok := th.Globals.Get(name); !ok {
				return nil, th.runtimeError(UndefinedVariable, "undefined variable '%s'", name)
			}
			th.Globals.Put(name, th.peek(0))
		case bytecode.OpDefineGlobal:
			idx := chunk.Code[fr.IP]
			fr.IP++
			name := string(chunk.GetConstant(int(idx)).(value.String))
			th.Globals.Put(name, th.pop())

		case bytecode.OpGetUpvalue:
			idx := int(chunk.Code[fr.IP])
			fr.IP++
			th.push(fr.Closure.Upvalues[idx].Get())
		case bytecode.OpSetUpvalue:
			idx := int(chunk.Code[fr.IP])
			fr.IP++
			fr.Closure.Upvalues[idx].Set(th.peek(0))

		case bytecode.OpGetProperty:
			idx := chunk.Code[fr.IP]
			fr.IP++
			name := string(chunk.GetConstant(int(idx)).(value.String))
			inst, ok := th.peek(0).(*value.Instance)
			if !ok {
				return nil, th.runtimeError(PropertyOnNonInstance, "only instances have properties")
			}
			if v, ok := inst.Fields.Get(name); ok {
				th.pop()
				th.push(v)
				break
			}
			m, ok := inst.Class.FindMethod(name)
			if !ok {
				return nil, th.runtimeError(UndefinedProperty, "undefined property '%s'", name)
			}
			th.pop()
			th.push(&value.BoundMethod{Receiver: inst, Method: m.(*value.Closure)})

		case bytecode.OpSetProperty:
			idx := chunk.Code[fr.IP]
			fr.IP++
			name := string(chunk.GetConstant(int(idx)).(value.String))
			inst, ok := th.peek(1).(*value.Instance)
			if !ok {
				return nil, th.runtimeError(PropertyOnNonInstance, "only instances have fields")
			}
			v := th.pop()
			inst.Fields.Put(name, v)
			th.pop() // instance
			th.push(v)

		case bytecode.OpEqual:
			b, a := th.pop(), th.pop()
			th.push(value.Bool(value.Equal(a, b)))
		case bytecode.OpGreater:
			b, a := th.pop(), th.pop()
			ok, err := value.Greater(a, b)
			if err != nil {
				return nil, th.wrapValueError(err)
			}
			th.push(value.Bool(ok))
		case bytecode.OpLess:
			b, a := th.pop(), th.pop()
			ok, err := value.Less(a, b)
			if err != nil {
				return nil, th.wrapValueError(err)
			}
			th.push(value.Bool(ok))

		case bytecode.OpAdd:
			b, a := th.pop(), th.pop()
			v, err := value.Add(a, b)
			if err != nil {
				return nil, th.wrapValueError(err)
			}
			th.push(v)
		case bytecode.OpSub:
			b, a := th.pop(), th.pop()
			v, err := value.Sub(a, b)
			if err != nil {
				return nil, th.wrapValueError(err)
			}
			th.push(v)
		case bytecode.OpMul:
			b, a := th.pop(), th.pop()
			v, err := value.Mul(a, b)
			if err != nil {
				return nil, th.wrapValueError(err)
			}
			th.push(v)
		case bytecode.OpDiv:
			b, a := th.pop(), th.pop()
			v, err := value.Div(a, b)
			if err != nil {
				return nil, th.wrapValueError(err)
			}
			th.push(v)

		case bytecode.OpNot:
			th.push(value.Bool(!value.Truthy(th.pop())))
		case bytecode.OpNegate:
			v, err := value.Negate(th.pop())
			if err != nil {
				return nil, th.wrapValueError(err)
			}
			th.push(v)

		case bytecode.OpPrint:
			fmt.Fprintln(th.stdout, value.Display(th.pop()))

		case bytecode.OpJump:
			offset := chunk.ReadU16(fr.IP)
			fr.IP += 2 + int(offset)
		case bytecode.OpJumpIfFalse:
			offset := chunk.ReadU16(fr.IP)
			fr.IP += 2
			if !value.Truthy(th.peek(0)) {
				fr.IP += int(offset)
			}
		case bytecode.OpLoop:
			offset := chunk.ReadU16(fr.IP)
			fr.IP += 2 - int(offset)

		case bytecode.OpCall:
			argCount := int(chunk.Code[fr.IP])
			fr.IP++
			if err := th.callValue(argCount); err != nil {
				return nil, err
			}

		case bytecode.OpInvoke:
			idx := chunk.Code[fr.IP]
			argCount := int(chunk.Code[fr.IP+1])
			fr.IP += 2
			name := string(chunk.GetConstant(int(idx)).(value.String))
			if err := th.invoke(name, argCount); err != nil {
				return nil, err
			}

		case bytecode.OpSuperInvoke:
			idx := chunk.Code[fr.IP]
			argCount := int(chunk.Code[fr.IP+1])
			fr.IP += 2
			name := string(chunk.GetConstant(int(idx)).(value.String))
			superclass := th.pop().(*value.Class)
			m, ok := superclass.FindMethod(name)
			if !ok {
				return nil, th.runtimeError(UndefinedProperty, "undefined property '%s'", name)
			}
			if err := th.callClosure(m.(*value.Closure), argCount); err != nil {
				return nil, err
			}

		case bytecode.OpGetSuper:
			idx := chunk.Code[fr.IP]
			fr.IP++
			name := string(chunk.GetConstant(int(idx)).(value.String))
			superclass := th.pop().(*value.Class)
			inst := th.pop().(*value.Instance)
			m, ok := superclass.FindMethod(name)
			if !ok {
				return nil, th.runtimeError(UndefinedProperty, "undefined property '%s'", name)
			}
			th.push(&value.BoundMethod{Receiver: inst, Method: m.(*value.Closure)})

		case bytecode.OpClosure:
			idx := chunk.Code[fr.IP]
			fr.IP++
			fn := chunk.GetConstant(int(idx)).(*value.Function)
			closure := &value.Closure{Function: fn, Upvalues: make([]*value.Upvalue, fn.UpvalueCnt)}
			for i := 0; i < fn.UpvalueCnt; i++ {
				isLocal := chunk.Code[fr.IP]
				index := int(chunk.Code[fr.IP+1])
				fr.IP += 2
				if isLocal != 0 {
					closure.Upvalues[i] = th.captureUpvalue(fr.SlotsOffset + index)
				} else {
					closure.Upvalues[i] = fr.Closure.Upvalues[index]
				}
			}
			th.push(closure)

		case bytecode.OpCloseUpvalue:
			th.closeUpvalues(len(th.stack) - 1)
			th.pop()

		case bytecode.OpReturn:
			v := th.pop()
			finished := len(th.frames) - 1
			th.truncate(fr.SlotsOffset)
			th.frames = th.frames[:finished]

			if finished == baseFrame {
				result = v
				return result, nil
			}
			th.push(v)

		case bytecode.OpClass:
			idx := chunk.Code[fr.IP]
			fr.IP++
			name := string(chunk.GetConstant(int(idx)).(value.String))
			th.push(value.NewClass(name, nil))

		case bytecode.OpInherit:
			superclass, ok := th.peek(1).(*value.Class)
			if !ok {
				return nil, th.runtimeError(OperandTypeMismatch, "superclass must be a class")
			}
			subclass := th.peek(0).(*value.Class)
			subclass.Superclass = superclass
			th.pop() // pop subclass; superclass remains, bound to the "super" local

		case bytecode.OpMethod:
			idx := chunk.Code[fr.IP]
			fr.IP++
			name := string(chunk.GetConstant(int(idx)).(value.String))
			method := th.pop().(*value.Closure)
			class := th.peek(0).(*value.Class)
			class.Methods.Put(name, method)

		default:
			panic(fmt.Sprintf("machine: unimplemented opcode %s", op))
		}
	}
}

func (th *Thread) wrapValueError(err error) error {
	return th.runtimeError(OperandTypeMismatch, "%s", err.Error())
}
