// Package diag holds the runtime's fatal-error types and its structured
// logging/rate-limiting wiring. Every error here is, by the design in
// spec.md §7, unrecoverable: the source language has no exception
// mechanism, so surfacing one of these always ends the process.
package diag

import (
	"errors"
	"fmt"
)

// ArityMismatchError is raised when call_one is used on an arity-TWO
// closure, or call_two on an arity-ONE closure.
type ArityMismatchError struct {
	Want, Got string
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("called arity-%s closure with %s args", e.Want, e.Got)
}

// TypeError is raised when the operator position of a call holds a
// non-closure value.
type TypeError struct {
	Operation string
	Cause     error
}

func (e *TypeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: operator is not a closure: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: operator is not a closure", e.Operation)
}

func (e *TypeError) Unwrap() error { return e.Cause }

// UnboundVariableError is raised by env_get when a variable-id has no
// binding in the environment.
type UnboundVariableError struct {
	VarID int
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable-id %d", e.VarID)
}

// InvariantViolationError reports a collector invariant broken by a
// compiler bug: a GREY object surviving to sweep time, an on-stack object
// reached during major GC, or an oversized/unknown tag.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Detail)
}

// AllocationFailureError is raised when the host allocator cannot satisfy
// a gc_malloc request.
type AllocationFailureError struct {
	Size int
}

func (e *AllocationFailureError) Error() string {
	return fmt.Sprintf("allocation failure (requested %d bytes)", e.Size)
}

// Is reports whether err is (or wraps) an error of the same concrete
// fatal-error type as target, following the Unwrap chain. This lets callers
// test against the categories in spec.md §7's table without caring about
// field values.
func Is(err, target error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if sameKind(err, target) {
			return true
		}
	}
	return false
}

// sameKind reports whether err itself has the same concrete fatal-error
// type as target.
func sameKind(err, target error) bool {
	switch target.(type) {
	case *ArityMismatchError:
		_, ok := err.(*ArityMismatchError)
		return ok
	case *TypeError:
		_, ok := err.(*TypeError)
		return ok
	case *UnboundVariableError:
		_, ok := err.(*UnboundVariableError)
		return ok
	case *InvariantViolationError:
		_, ok := err.(*InvariantViolationError)
		return ok
	case *AllocationFailureError:
		_, ok := err.(*AllocationFailureError)
		return ok
	default:
		return false
	}
}
