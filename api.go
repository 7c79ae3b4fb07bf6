package schemert

import (
	"github.com/tailhop/schemert/internal/diag"
	"github.com/tailhop/schemert/internal/obj"
)

// Value, Closure, Environment, Code1, Code2, Arity, EnvID, VarID and
// EnvTable are re-exported so generated code never needs to import
// internal/obj directly — the object model is internal, but its names are
// part of the stable ABI.
type (
	Value       = obj.Value
	Closure     = obj.Closure
	Environment = obj.Environment
	Code1       = obj.Code1
	Code2       = obj.Code2
	Arity       = obj.Arity
	EnvID       = obj.EnvID
	VarID       = obj.VarID
	EnvTable    = obj.EnvTable
)

const (
	ArityOne = obj.ArityOne
	ArityTwo = obj.ArityTwo
)

// MakeInt constructs a fresh, stack-side integer.
func (rt *Runtime) MakeInt(n int64) Value { return obj.NewInteger(n) }

// MakeString constructs a fresh, stack-side string, copying b.
func (rt *Runtime) MakeString(b []byte) Value { return obj.NewString(b) }

// MakeVoid returns the process-wide void singleton.
func (rt *Runtime) MakeVoid() Value { return obj.TheVoid }

// MakeClosure1 constructs a fresh, stack-side arity-ONE closure.
func (rt *Runtime) MakeClosure1(fn Code1, envID EnvID, env *Environment) Value {
	return obj.NewClosure1(fn, envID, env)
}

// MakeClosure2 constructs a fresh, stack-side arity-TWO closure.
func (rt *Runtime) MakeClosure2(fn Code2, envID EnvID, env *Environment) Value {
	return obj.NewClosure2(fn, envID, env)
}

// EnvNew allocates a fresh, stack-side environment sized for size
// variable-ids.
func (rt *Runtime) EnvNew(size int) *Environment { return obj.NewEnvironment(size) }

// EnvWith returns a new environment that shadows env with id ↦ value,
// leaving env itself untouched.
func (rt *Runtime) EnvWith(env *Environment, id VarID, value Value) *Environment {
	return env.With(id, value)
}

// EnvGet returns the binding for id in env. A missing binding is fatal:
// per spec.md §7, it can only arise from a compiler bug, and the source
// language has no way to catch it.
func (rt *Runtime) EnvGet(env *Environment, id VarID) Value {
	v := env.Get(id)
	if v == nil {
		rt.fatal(&diag.UnboundVariableError{VarID: int(id)})
		return nil
	}
	return v
}

// EnvSet overwrites the binding for id in env and returns the previous
// value.
func (rt *Runtime) EnvSet(env *Environment, id VarID, value Value) Value {
	return env.Set(id, value)
}
