package machine

import "github.com/mna/lox/lang/value"

// callValue dispatches a call instruction: callee is at
// th.peek(argCount) and its argCount arguments occupy the argCount
// slots above it. Each branch below implements the call-dispatch rules
// of spec.md §4.5.
func (th *Thread) callValue(argCount int) error {
	callee := th.peek(argCount)
	switch c := callee.(type) {
	case *value.Closure:
		return th.callClosure(c, argCount)
	case *value.NativeFn:
		return th.callNative(c, argCount)
	case *value.Class:
		return th.callClass(c, argCount)
	case *value.BoundMethod:
		// Rewrite the callee slot to the receiver, exactly as calling the
		// method directly on that instance would, then dispatch as usual.
		th.stack[len(th.stack)-argCount-1] = c.Receiver
		return th.callClosure(c.Method.(*value.Closure), argCount)
	default:
		return th.runtimeError(NotCallable, "can only call functions and classes")
	}
}

func (th *Thread) callClosure(c *value.Closure, argCount int) error {
	if argCount != c.Function.Arity {
		return th.runtimeError(ArityMismatch, "expected %d arguments but got %d", c.Function.Arity, argCount)
	}
	if len(th.frames) >= maxFrames {
		return th.runtimeError(StackOverflow, "stack overflow")
	}
	th.frames = append(th.frames, Frame{
		Closure:     c,
		SlotsOffset: len(th.stack) - argCount - 1,
	})
	return nil
}

func (th *Thread) callNative(n *value.NativeFn, argCount int) error {
	if argCount != n.Arity {
		return th.runtimeError(ArityMismatch, "expected %d arguments but got %d", n.Arity, argCount)
	}
	args := make([]value.Value, argCount)
	copy(args, th.stack[len(th.stack)-argCount:])

	result, err := n.Fn(args)
	if err != nil {
		return th.runtimeError(NativeError, "%s", err.Error())
	}

	th.truncate(len(th.stack) - argCount - 1)
	th.push(result)
	return nil
}

func (th *Thread) callClass(cls *value.Class, argCount int) error {
	instance := value.NewInstance(cls)
	th.stack[len(th.stack)-argCount-1] = instance

	if init, ok := cls.FindMethod("init"); ok {
		return th.callClosure(init.(*value.Closure), argCount)
	}
	if argCount != 0 {
		return th.runtimeError(ArityMismatch, "expected 0 arguments but got %d", argCount)
	}
	return nil
}

// invoke compiles the common "get property, then call it" pair into a
// single dispatch: if name resolves to a field holding a callable, call
// that; otherwise resolve it as a method on the instance's class.
func (th *Thread) invoke(name string, argCount int) error {
	receiver := th.peek(argCount)
	inst, ok := receiver.(*value.Instance)
	if !ok {
		return th.runtimeError(PropertyOnNonInstance, "only instances have methods")
	}

	if field, ok := inst.Fields.Get(name); ok {
		th.stack[len(th.stack)-argCount-1] = field
		return th.callValue(argCount)
	}

	method, ok := inst.Class.FindMethod(name)
	if !ok {
		return th.runtimeError(UndefinedProperty, "undefined property '%s'", name)
	}
	return th.callClosure(method.(*value.Closure), argCount)
}
