// Package schemert is a runtime core for a trampolined, CPS-compiled Lisp
// dialect: a tagged object model, an arity-checked calling convention, and
// a two-phase (Cheney-style minor, tri-color mark-and-sweep major)
// collector layered over Go's own garbage-collected heap.
//
// It does not implement a reader, macro-expander, or code generator — it
// is the runtime surface a compiler backend targets. A program using this
// package constructs a Runtime with New, builds its entry-point Closure
// and EnvTable by hand (or, in practice, by code generation), and calls
// Runtime.Start.
//
// The collector and object model live in internal/gc and internal/obj;
// this package re-exports the handful of types (Value, Closure,
// Environment, EnvTable) and exposes the stable ABI (CallOne, CallTwo,
// EnvNew/EnvWith/EnvGet/EnvSet, the Make* constructors, NewHalt) that
// generated code is expected to call.
package schemert
