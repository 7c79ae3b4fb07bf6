package obj

// Thunk is a closure plus its pending argument(s): a suspended call,
// matching the closure's arity. A Thunk is not itself a Value variant — it
// never appears inside an Environment slot — it is purely the trampoline's
// and the collector's bookkeeping for "the call about to happen".
//
// Roots is exactly the set of fields the minor and major GC phases start
// from: Closure (and transitively its Environment), Rand, and, for
// arity-TWO closures, Cont.
type Thunk struct {
	Closure *Closure
	Rand    Value
	Cont    Value // nil for arity-ONE thunks
	OnStack bool
}

// Roots returns the thunk's root values in a fixed order, skipping Cont
// when the closure is arity-ONE.
func (t *Thunk) Roots() []Value {
	roots := make([]Value, 0, 3)
	roots = append(roots, t.Closure)
	if t.Rand != nil {
		roots = append(roots, t.Rand)
	}
	if t.Closure != nil && t.Closure.Arity == ArityTwo && t.Cont != nil {
		roots = append(roots, t.Cont)
	}
	return roots
}
