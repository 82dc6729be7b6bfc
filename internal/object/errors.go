package object

import "fmt"

type UnboundIdentifierError struct {
	Name string
}

func (e *UnboundIdentifierError) Error() string {
	return fmt.Sprintf("identifier not found: %s", e.Name)
}

type TypeResolutionError struct {
	Name string
}

func (e *TypeResolutionError) Error() string {
	return fmt.Sprintf("type not found: %s", e.Name)
}

type ApplyNonFunctionError struct {
	Type Type
}

func (e *ApplyNonFunctionError) Error() string {
	return fmt.Sprintf("cannot apply a value of non-function type %s", typeName(e.Type))
}

type TypeMismatchError struct {
	Expected Type
	Actual   Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected an argument of type %s, got %s", typeName(e.Expected), typeName(e.Actual))
}

type BindingTypeError struct {
	Name     string
	Declared Type
	Actual   Type
}

func (e *BindingTypeError) Error() string {
	return fmt.Sprintf("binding `%s` expected a value of type %s, got %s", e.Name, typeName(e.Declared), typeName(e.Actual))
}

// UnrecognizedNodeError means a node outside the known AST variants reached the core.
type UnrecognizedNodeError struct {
	Node any
}

func (e *UnrecognizedNodeError) Error() string {
	return fmt.Sprintf("unrecognised node %T", e.Node)
}

// CallError wraps a failure raised by a built-in function body.
type CallError struct {
	Function string
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("call to %s failed: %v", e.Function, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

func typeName(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
