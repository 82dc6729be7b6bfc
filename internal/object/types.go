package object

import (
	"fmt"
	"sageleaf/internal/ast"
)

const (
	VOID_TYPE = "Void"
	ANY_TYPE  = "Any"
	UNIT_TYPE = "Unit"
	REAL_TYPE = "Real"
)

// Type is either a *PrimitiveType or a *FunctionType.
type Type interface {
	fmt.Stringer
	typeVariant()
}

type PrimitiveType struct {
	Name      string
	Predicate func(Payload) bool
	Effectful bool
}

func (p *PrimitiveType) typeVariant()   {}
func (p *PrimitiveType) String() string { return p.Name }

type FunctionType struct {
	Name      string
	Input     Type
	Output    Type
	Predicate func(Payload) bool
	Effectful bool
}

func (f *FunctionType) typeVariant() {}
func (f *FunctionType) String() string {
	if f.Name != "" {
		return f.Name
	}
	return functionTypeName(f.Input, f.Output)
}

// NewFunctionType builds a function type whose membership test only checks that the
// payload is callable. The callable's own input and output are never inspected.
func NewFunctionType(input, output Type, effectful bool) *FunctionType {
	return &FunctionType{
		Name:      functionTypeName(input, output),
		Input:     input,
		Output:    output,
		Predicate: isCallable,
		Effectful: effectful,
	}
}

func functionTypeName(input, output Type) string {
	in := input.String()
	if _, ok := input.(*FunctionType); ok {
		in = "(" + in + ")"
	}
	return in + " -> " + output.String()
}

func isCallable(p Payload) bool {
	_, ok := p.(*Callable)
	return ok
}

// IsMember reports whether payload structurally belongs to typ.
func IsMember(typ Type, payload Payload) bool {
	switch t := typ.(type) {
	case *PrimitiveType:
		return t.Predicate(payload)
	case *FunctionType:
		return t.Predicate(payload)
	default:
		return false
	}
}

// BaseTypes returns a fresh copy of the built-in type registry.
func BaseTypes() map[string]Type {
	return map[string]Type{
		VOID_TYPE: &PrimitiveType{Name: VOID_TYPE, Predicate: func(Payload) bool { return false }},
		ANY_TYPE:  &PrimitiveType{Name: ANY_TYPE, Predicate: func(Payload) bool { return true }},
		UNIT_TYPE: &PrimitiveType{Name: UNIT_TYPE, Predicate: func(p Payload) bool { return p == UNIT_PAYLOAD }},
		REAL_TYPE: &PrimitiveType{Name: REAL_TYPE, Predicate: func(p Payload) bool {
			_, ok := p.(Number)
			return ok
		}},
	}
}

// Resolve turns a syntactic type into a runtime Type using the environment's type registry.
func Resolve(env *Environment, expr ast.TypeExpr) (Type, error) {
	switch node := expr.(type) {
	case *ast.NamedType:
		return env.LookupType(node.Name)
	case *ast.FunctionType:
		input, err := Resolve(env, node.Input)
		if err != nil {
			return nil, err
		}
		output, err := Resolve(env, node.Output)
		if err != nil {
			return nil, err
		}
		return NewFunctionType(input, output, false), nil
	default:
		return nil, &UnrecognizedNodeError{Node: expr}
	}
}
