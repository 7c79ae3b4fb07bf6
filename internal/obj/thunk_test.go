package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThunk_Roots_ArityOneSkipsCont(t *testing.T) {
	cl := NewClosure1(func(Value, *Environment) {}, EnvID(0), NewEnvironment(0))
	th := &Thunk{Closure: cl, Rand: NewInteger(1), Cont: NewInteger(99)}

	roots := th.Roots()
	assert.Len(t, roots, 2, "an arity-ONE thunk must never root Cont, even if it is non-nil garbage")
	assert.Same(t, cl, roots[0])
}

func TestThunk_Roots_ArityTwoIncludesCont(t *testing.T) {
	cl := NewClosure2(func(Value, Value, *Environment) {}, EnvID(0), NewEnvironment(0))
	rand := NewInteger(1)
	cont := NewInteger(2)
	th := &Thunk{Closure: cl, Rand: rand, Cont: cont}

	roots := th.Roots()
	assert.Equal(t, []Value{cl, rand, cont}, roots)
}

func TestThunk_Roots_NilRandOmitted(t *testing.T) {
	cl := NewClosure1(func(Value, *Environment) {}, EnvID(0), NewEnvironment(0))
	th := &Thunk{Closure: cl}

	roots := th.Roots()
	assert.Equal(t, []Value{cl}, roots)
}
