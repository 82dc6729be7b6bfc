package evaluator

import (
	"fmt"
	"io"
	"log/slog"
	"sageleaf/internal/object"
)

// NewGlobalEnvironment seeds a fresh environment with the base types and the built-in
// bindings. print writes to out.
func NewGlobalEnvironment(out io.Writer) *object.Environment {
	env := object.NewEnvironment()
	for name, typ := range object.BaseTypes() {
		// names in a fresh registry cannot collide
		_ = env.DefineType(name, typ)
	}
	for name, val := range Builtins(out, env.Types) {
		env.Bind(name, val)
	}
	slog.Debug("global environment ready",
		slog.Uint64("env", env.ID),
		slog.Int("types", len(env.Types)),
		slog.Int("bindings", len(env.Bindings)))
	return env
}

// Builtins returns the built-in bindings typed against the given registry, which must
// hold the base types.
func Builtins(out io.Writer, types map[string]object.Type) map[string]object.Value {
	return map[string]object.Value{
		"Unit":  {Type: types[object.UNIT_TYPE], Payload: object.UNIT_PAYLOAD},
		"add":   funcAdd(types),
		"print": funcPrint(out, types),
	}
}

// funcAdd is curried: add x yields a Real -> Real closure over x.
func funcAdd(types map[string]object.Type) object.Value {
	num := types[object.REAL_TYPE]
	return object.Value{
		Type: object.NewFunctionType(num, object.NewFunctionType(num, num, false), false),
		Payload: &object.Callable{
			Name: "add",
			Fn: func(x object.Payload) (object.Payload, error) {
				left, ok := x.(object.Number)
				if !ok {
					return nil, fmt.Errorf("argument to `add` must be a number, got %s", x.Inspect())
				}
				return &object.Callable{
					Name: "add " + left.Inspect(),
					Fn: func(y object.Payload) (object.Payload, error) {
						right, ok := y.(object.Number)
						if !ok {
							return nil, fmt.Errorf("argument to `add` must be a number, got %s", y.Inspect())
						}
						return left + right, nil
					},
				}, nil
			},
		},
	}
}

func funcPrint(out io.Writer, types map[string]object.Type) object.Value {
	return object.Value{
		Type: object.NewFunctionType(types[object.ANY_TYPE], types[object.UNIT_TYPE], true),
		Payload: &object.Callable{
			Name: "print",
			Fn: func(x object.Payload) (object.Payload, error) {
				if _, err := fmt.Fprintln(out, x.Inspect()); err != nil {
					return nil, err
				}
				return object.UNIT_PAYLOAD, nil
			},
		},
	}
}
