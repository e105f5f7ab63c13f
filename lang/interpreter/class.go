package interpreter

import (
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/value"
)

// execClassDecl evaluates a class declaration, binding its methods to a
// closure that sees "super" when the class has a superclass, exactly as
// lang/compiler's classDeclaration binds the equivalent bytecode-level
// local -- the fix for the superclass-binding gap this pipeline used to
// have.
func (it *Interpreter) execClassDecl(s *ast.ClassDecl) error {
	var superclass *value.Class
	if s.Superclass != nil {
		sv, err := it.lookupVariable(s.Superclass.Name, s.Superclass.Depth, s.Superclass.Ln)
		if err != nil {
			return err
		}
		sc, ok := sv.(*value.Class)
		if !ok {
			return it.runtimeError(s.Superclass.Ln, OperandTypeMismatch, "superclass must be a class")
		}
		superclass = sc
	}

	// Two-stage declare/assign lets a method body reference the class's own
	// name (e.g. a factory method returning `new` instances of it).
	it.environment.define(s.Name, value.Nil)

	methodEnv := it.environment
	if superclass != nil {
		methodEnv = newEnvironment(it.environment)
		methodEnv.define("super", superclass)
	}

	cls := value.NewClass(s.Name, superclass)
	for _, m := range s.Methods {
		fn := &LoxFunction{
			Decl:          m.Fn,
			Name:          m.Name,
			Closure:       methodEnv,
			IsInitializer: m.Name == "init",
		}
		cls.Methods.Put(m.Name, fn)
	}

	it.environment.assign(s.Name, cls)
	return nil
}
