package object

import (
	"fmt"
	"strconv"
)

// UNIT_PAYLOAD is the datum carried by the Unit value.
const UNIT_PAYLOAD = String("Unit")

// Payload is the host datum inside a Value: Number, String, Boolean or *Callable.
type Payload interface {
	Inspect() string
	payloadVariant()
}

type Number float64

func (n Number) payloadVariant() {}
func (n Number) Inspect() string  { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

type String string

func (s String) payloadVariant() {}
func (s String) Inspect() string  { return string(s) }

type Boolean bool

func (b Boolean) payloadVariant() {}
func (b Boolean) Inspect() string  { return fmt.Sprintf("%t", bool(b)) }

// Callable is a unary host function. Curried functions return another *Callable.
type Callable struct {
	Name string
	Fn   func(arg Payload) (Payload, error)
}

func (c *Callable) payloadVariant() {}
func (c *Callable) Inspect() string {
	if c.Name == "" {
		return "<fn>"
	}
	return "<fn " + c.Name + ">"
}

type Value struct {
	Type    Type
	Payload Payload
}

// Inspect renders a value the way the REPL reports it: `payload : Type` for primitive
// values and just the type for functions.
func (v Value) Inspect() string {
	if _, ok := v.Type.(*FunctionType); ok {
		return v.Type.String()
	}
	return v.Payload.Inspect() + " : " + v.Type.String()
}
