package object

import (
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
)

var nextID atomic.Uint64

// Environment maps names to bound values and named types. There is no outer scope:
// blocks run in a Snapshot, so nothing they bind leaks back into the caller.
type Environment struct {
	ID       uint64
	Types    map[string]Type
	Bindings map[string]Value
}

func nextEnvID() uint64 {
	return nextID.Add(1)
}

func NewEnvironment() *Environment {
	return &Environment{
		ID:       nextEnvID(),
		Types:    make(map[string]Type),
		Bindings: make(map[string]Value),
	}
}

// Snapshot returns an independent copy. Types and Values are never mutated in place,
// so copying both maps is enough to keep later writes on either side apart.
func (e *Environment) Snapshot() *Environment {
	newEnv := &Environment{
		ID:       nextEnvID(),
		Types:    make(map[string]Type, len(e.Types)),
		Bindings: make(map[string]Value, len(e.Bindings)),
	}

	for k, v := range e.Types {
		newEnv.Types[k] = v
	}
	for k, v := range e.Bindings {
		newEnv.Bindings[k] = v
	}

	slog.Debug("environment snapshot",
		slog.Uint64("from", e.ID),
		slog.Uint64("to", newEnv.ID),
		slog.Int("bindings", len(newEnv.Bindings)))
	return newEnv
}

func (e *Environment) LookupBinding(name string) (Value, error) {
	val, ok := e.Bindings[name]
	if !ok {
		return Value{}, &UnboundIdentifierError{Name: name}
	}
	return val, nil
}

func (e *Environment) LookupType(name string) (Type, error) {
	typ, ok := e.Types[name]
	if !ok {
		return nil, &TypeResolutionError{Name: name}
	}
	return typ, nil
}

// Bind inserts or overwrites a binding; shadowing is always allowed.
func (e *Environment) Bind(name string, val Value) {
	if old, exists := e.Bindings[name]; exists {
		slog.Debug("rebinding value",
			slog.String("name", name),
			slog.String("old-type", typeName(old.Type)),
			slog.String("type", typeName(val.Type)))
	} else {
		slog.Debug("binding value",
			slog.String("name", name),
			slog.String("type", typeName(val.Type)))
	}
	e.Bindings[name] = val
}

func (e *Environment) DefineType(name string, typ Type) error {
	if _, exists := e.Types[name]; exists {
		return fmt.Errorf("type `%s` is already defined", name)
	}
	e.Types[name] = typ
	return nil
}

func (e *Environment) BindingNames() []string {
	names := make([]string, 0, len(e.Bindings))
	for name := range e.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
