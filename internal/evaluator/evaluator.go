package evaluator

import (
	"log/slog"
	"sageleaf/internal/ast"
	"sageleaf/internal/object"
)

// EvalProgram runs statements in order against env and returns the value of the last
// one, or Unit for an empty program. Evaluation stops at the first failing statement.
func EvalProgram(env *object.Environment, program *ast.Program) (object.Value, error) {
	last, err := unitValue(env)
	if err != nil {
		return object.Value{}, err
	}
	for i, stmt := range program.Statements {
		env, last, err = EvalStatement(env, stmt)
		if err != nil {
			slog.Debug("statement failed",
				slog.Int("index", i),
				slog.String("statement", stmt.String()),
				slog.Any("error", err))
			return object.Value{}, err
		}
	}
	return last, nil
}

// EvalStatement evaluates one statement. Bindings mutate env and yield Unit; bare
// expressions leave env as it is and yield their value.
func EvalStatement(env *object.Environment, stmt ast.Statement) (*object.Environment, object.Value, error) {
	switch node := stmt.(type) {
	case *ast.Binding:
		if err := evalBinding(env, node); err != nil {
			return env, object.Value{}, err
		}
		unit, err := unitValue(env)
		return env, unit, err

	case *ast.Expression:
		val, err := Eval(env, node)
		return env, val, err

	default:
		return env, object.Value{}, &object.UnrecognizedNodeError{Node: stmt}
	}
}

// Eval folds the terms of expr left to right: [f, x, y] is Apply(Apply(f, x), y).
func Eval(env *object.Environment, expr *ast.Expression) (object.Value, error) {
	if expr == nil || len(expr.Terms) == 0 {
		return object.Value{}, ast.ErrEmptyExpression
	}

	acc, err := EvalTerm(env, expr.Terms[0])
	if err != nil {
		return object.Value{}, err
	}

	for _, term := range expr.Terms[1:] {
		arg, err := EvalTerm(env, term)
		if err != nil {
			return object.Value{}, err
		}
		acc, err = Apply(acc, arg)
		if err != nil {
			return object.Value{}, err
		}
	}
	return acc, nil
}

func EvalTerm(env *object.Environment, term ast.Term) (object.Value, error) {
	switch node := term.(type) {
	case *ast.NumberLiteral:
		realType, err := env.LookupType(object.REAL_TYPE)
		if err != nil {
			return object.Value{}, err
		}
		return object.Value{Type: realType, Payload: object.Number(node.Value)}, nil

	case *ast.Identifier:
		return env.LookupBinding(node.Name)

	case *ast.Block:
		return evalBlock(env, node)

	default:
		return object.Value{}, &object.UnrecognizedNodeError{Node: term}
	}
}

// Apply calls fn with a single argument after checking it against fn's declared input.
// The result is typed with fn's declared output, whatever the callable returned.
func Apply(fn object.Value, arg object.Value) (object.Value, error) {
	fnType, ok := fn.Type.(*object.FunctionType)
	if !ok {
		return object.Value{}, &object.ApplyNonFunctionError{Type: fn.Type}
	}
	callable, ok := fn.Payload.(*object.Callable)
	if !ok {
		return object.Value{}, &object.ApplyNonFunctionError{Type: fn.Type}
	}

	if !object.IsMember(fnType.Input, arg.Payload) {
		return object.Value{}, &object.TypeMismatchError{Expected: fnType.Input, Actual: arg.Type}
	}

	payload, err := callable.Fn(arg.Payload)
	if err != nil {
		return object.Value{}, &object.CallError{Function: fnType.String(), Err: err}
	}

	return object.Value{Type: fnType.Output, Payload: payload}, nil
}

func evalBlock(env *object.Environment, block *ast.Block) (object.Value, error) {
	local := env.Snapshot()

	last, err := unitValue(local)
	if err != nil {
		return object.Value{}, err
	}

	for _, stmt := range block.Statements {
		local, last, err = EvalStatement(local, stmt)
		if err != nil {
			return object.Value{}, err
		}
	}

	return last, nil
}

// evalBinding resolves and evaluates everything before touching env, so a failed
// binding never leaves a partial write behind.
func evalBinding(env *object.Environment, binding *ast.Binding) error {
	declared, err := object.Resolve(env, binding.Type)
	if err != nil {
		return err
	}

	val, err := Eval(env, binding.Value)
	if err != nil {
		return err
	}

	if !object.IsMember(declared, val.Payload) {
		return &object.BindingTypeError{
			Name:     binding.Name.Name,
			Declared: declared,
			Actual:   val.Type,
		}
	}

	env.Bind(binding.Name.Name, object.Value{Type: declared, Payload: val.Payload})
	return nil
}

func unitValue(env *object.Environment) (object.Value, error) {
	unit, err := env.LookupType(object.UNIT_TYPE)
	if err != nil {
		return object.Value{}, err
	}
	return object.Value{Type: unit, Payload: object.UNIT_PAYLOAD}, nil
}
