package schemert

import (
	"github.com/tailhop/schemert/internal/diag"
	"github.com/tailhop/schemert/internal/gc"
	"github.com/tailhop/schemert/internal/obj"
)

// Runtime is the single process-wide object the generated program's entry
// point owns for its lifetime: the heap bookkeeping vector, the
// stack-depth guard, and the resolved Config. Per spec.md §5 ("the design
// assumes no reentrancy... a reentrant design would require passing a
// runtime handle through every entry point"), nothing here is safe for
// concurrent use by more than one goroutine at a time, and emitted code is
// expected to hold exactly one Runtime.
//
// CallOne, CallTwo, EnvNew, EnvWith, EnvGet, EnvSet and the Make* family
// are the stable ABI of spec.md §6: the only surface the compiler's
// generated code is expected to call.
type Runtime struct {
	cfg   *Config
	heap  *gc.Heap
	depth int
	state uint32
	cycle int
}

// New resolves opts into a Config and returns a fresh Runtime with an
// empty heap. Every option has a usable default; without WithEnvTable the
// environment table is empty.
func New(opts ...Option) (*Runtime, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Runtime{cfg: cfg, heap: gc.NewHeap()}, nil
}

// bounce is the sentinel panic value the depth guard throws when the
// simulated call stack gets too deep: Go's native non-local-transfer
// primitive standing in for the longjmp spec.md §9 describes, recovered
// only by Start's dispatch loop.
type bounce struct {
	thunk *obj.Thunk
}

// fatal logs err at the Fatal (Alert) level and relies on logiface's
// built-in OsExit-after-write behavior to end the process, exactly as
// spec.md §7 requires: every error in this table is unrecoverable.
// logiface.OsExit is a package-level var the test suite overrides to
// observe a fatal without actually killing the test binary; when
// overridden to not exit, fatal returns normally and the caller must stop
// on its own (every call site below does).
func (rt *Runtime) fatal(err error) {
	rt.cfg.Logger.Fatal().Err(err).Log(err.Error())
}

// CallOne is call_one: invoke a closure that expects a single argument.
// rator must be an arity-ONE Closure; anything else is fatal.
func (rt *Runtime) CallOne(rator, rand obj.Value) {
	rt.call(rator, rand, nil, obj.ArityOne)
}

// CallTwo is call_two: invoke a closure in CPS style, with an explicit
// continuation. rator must be an arity-TWO Closure; anything else is
// fatal.
func (rt *Runtime) CallTwo(rator, rand, cont obj.Value) {
	rt.call(rator, rand, cont, obj.ArityTwo)
}

func (rt *Runtime) call(rator, rand, cont obj.Value, want obj.Arity) {
	cl, ok := rator.(*obj.Closure)
	if !ok {
		rt.fatal(&diag.TypeError{Operation: "call"})
		return
	}
	if cl.Arity != want {
		rt.fatal(&diag.ArityMismatchError{Want: cl.Arity.String(), Got: want.String()})
		return
	}

	th := &obj.Thunk{Closure: cl, Rand: rand, Cont: cont, OnStack: true}

	rt.depth++
	if rt.depth > rt.cfg.StackDepthLimit {
		rt.bounceInto(th)
		return
	}
	invoke(th)
}

// invoke dispatches a thunk straight into its closure's code pointer: a
// call that does not overflow behaves exactly like an ordinary Go call,
// consuming th entirely in this frame without touching the heap.
func invoke(th *obj.Thunk) {
	switch th.Closure.Arity {
	case obj.ArityOne:
		th.Closure.Code1(th.Rand, th.Closure.Env)
	case obj.ArityTwo:
		th.Closure.Code2(th.Rand, th.Cont, th.Closure.Env)
	}
}

// bounceInto runs one GC cycle (minor promotion followed by a major
// mark-and-sweep) over th's roots, then unwinds to Start's dispatch loop
// by panicking with the bounce sentinel — the trampoline "bounce" of
// spec.md §9.
func (rt *Runtime) bounceInto(th *obj.Thunk) {
	rt.setState(StateCollecting)

	minor := gc.NewMinor(rt.heap, rt.cfg.EnvTable, rt.cfg.HeapLimit)
	if err := minor.PromoteThunk(th); err != nil {
		rt.fatal(err)
		return
	}
	major := gc.NewMajor(rt.heap, rt.cfg.EnvTable)
	stats, err := major.Run(th)
	if err != nil {
		rt.fatal(err)
		return
	}

	rt.cycle++
	if rt.cfg.GCLogThrottle.Allow() {
		rt.cfg.Logger.Info().
			Int("cycle", rt.cycle).
			Int("promoted", minor.Forwarded()).
			Int("freed", stats.Freed).
			Int("live", stats.Live).
			Log("gc cycle")
	}

	panic(bounce{thunk: th})
}

// Start runs the trampoline's dispatch loop, beginning with initial. Code1
// and Code2 bodies never return in the ordinary sense: they either
// tail-call the next procedure directly (an ordinary nested Go call,
// through CallOne/CallTwo) or, once the depth guard trips, unwind via
// bounce back to this loop, which lands the promoted thunk and dispatches
// it fresh with the depth counter reset to zero. Start itself returns only
// when a dispatch completes without bouncing — which in practice means the
// program's own halt continuation has already called os.Exit, so this is
// effectively the only loop in the process.
func (rt *Runtime) Start(initial *obj.Thunk) {
	th := initial
	for {
		rt.depth = 0
		rt.setState(StateRunning)
		landed, bounced := rt.dispatchOnce(th)
		if !bounced {
			rt.setState(StateIdle)
			return
		}
		th = landed
	}
}

// dispatchOnce invokes th directly, recovering a bounce panic at exactly
// one point — the spec's single trampoline landing pad — and re-panicking
// anything else (a fatal error's panic-after-OsExit-override, or a genuine
// Go bug) rather than silently swallowing it.
func (rt *Runtime) dispatchOnce(th *obj.Thunk) (next *obj.Thunk, bounced bool) {
	defer func() {
		if r := recover(); r != nil {
			if b, ok := r.(bounce); ok {
				next, bounced = b.thunk, true
				return
			}
			panic(r)
		}
	}()
	invoke(th)
	return nil, false
}
