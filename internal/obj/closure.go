package obj

// Arity distinguishes the two procedure shapes the compiler ever emits:
// ONE (a computed value) or TWO (a value and its continuation).
type Arity uint8

const (
	// ArityOne procedures take (value, env).
	ArityOne Arity = 1
	// ArityTwo procedures take (value, continuation, env).
	ArityTwo Arity = 2
)

func (a Arity) String() string {
	switch a {
	case ArityOne:
		return "ONE"
	case ArityTwo:
		return "TWO"
	default:
		return "unknown"
	}
}

// Code1 is the signature of a compiled arity-ONE procedure. It never
// returns control to its caller in the ordinary sense: it either tail-calls
// the next procedure (directly, or through the trampoline) or terminates
// the process (halt_func).
type Code1 func(rand Value, env *Environment)

// Code2 is the signature of a compiled arity-TWO (CPS) procedure.
type Code2 func(rand, cont Value, env *Environment)

// EnvID indexes the compile-time global environment table (see EnvTable).
type EnvID int

// Closure is a procedure value: a code pointer of matching arity, the
// environment-id the compiler assigned its body, and the captured
// Environment it was created in.
type Closure struct {
	Header
	Arity Arity
	Code1 Code1
	Code2 Code2
	EnvID EnvID
	Env   *Environment
}

func (v *Closure) Hdr() *Header { return &v.Header }

// NewClosure1 constructs a fresh, stack-side arity-ONE closure.
func NewClosure1(fn Code1, envID EnvID, env *Environment) *Closure {
	v := &Closure{
		Header: Header{Tag: TagClosure, OnStack: true},
		Arity:  ArityOne,
		Code1:  fn,
		EnvID:  envID,
		Env:    env,
	}
	v.Prov.Touch("NewClosure1")
	return v
}

// NewClosure2 constructs a fresh, stack-side arity-TWO closure.
func NewClosure2(fn Code2, envID EnvID, env *Environment) *Closure {
	v := &Closure{
		Header: Header{Tag: TagClosure, OnStack: true},
		Arity:  ArityTwo,
		Code2:  fn,
		EnvID:  envID,
		Env:    env,
	}
	v.Prov.Touch("NewClosure2")
	return v
}
