package gc

import (
	"github.com/tailhop/schemert/internal/diag"
	"github.com/tailhop/schemert/internal/obj"
)

// Major runs one major (tri-color mark-and-sweep) collection, per
// spec.md §4.3.3. It must run only after a Minor pass has promoted every
// object the thunk can reach — Major itself treats any on-stack object it
// encounters as an invariant violation.
type Major struct {
	heap     *Heap
	envTable obj.EnvTable
	grey     []obj.Value
}

// NewMajor prepares a major collector over heap, consulting envTable to
// resolve a closure's live slots the same way Minor does.
func NewMajor(heap *Heap, envTable obj.EnvTable) *Major {
	return &Major{heap: heap, envTable: envTable}
}

// SweepStats summarizes one sweep for GC-cycle diagnostics and tests.
type SweepStats struct {
	Freed int
	Live  int
}

// Run marks every object reachable from th's roots, then sweeps the heap
// bookkeeping vector, freeing anything left WHITE and resetting survivors
// to WHITE for the next cycle.
func (g *Major) Run(th *obj.Thunk) (*SweepStats, error) {
	for _, root := range th.Roots() {
		if err := g.mark(root); err != nil {
			return nil, err
		}
	}
	if err := g.drain(); err != nil {
		return nil, err
	}
	return g.sweep()
}

// mark transitions a root WHITE→BLACK directly (roots are never merely
// GREY) and enqueues its children.
func (g *Major) mark(v obj.Value) error {
	if v == nil {
		return nil
	}
	if v.Hdr().OnStack {
		return &diag.InvariantViolationError{Detail: "on-stack object reached during major GC"}
	}
	if v.Hdr().Mark == obj.Black {
		return nil
	}
	v.Hdr().Mark = obj.Black
	v.Hdr().Prov.Touch("major.mark")
	return g.enqueueChildren(v)
}

// enqueueChildren implements the per-variant marking rules of spec.md
// §4.3.3 step 1/2: only Closure has interior pointers. Its environment is
// marked BLACK directly (reached only via closures, so its liveness is
// implied); each live variable-id's slot transitions WHITE→GREY and is
// enqueued.
func (g *Major) enqueueChildren(v obj.Value) error {
	cl, ok := v.(*obj.Closure)
	if !ok {
		return nil // Integer, String, Void: no interior pointers.
	}
	env := cl.Env
	if env == nil {
		return nil
	}
	if env.OnStack {
		return &diag.InvariantViolationError{Detail: "on-stack environment reached during major GC"}
	}
	env.Mark = obj.Black
	env.Prov.Touch("major.enqueueChildren")

	for _, varID := range g.envTable.VarIDs(cl.EnvID) {
		idx := int(varID)
		if idx < 0 || idx >= len(env.Slots) {
			continue
		}
		slot := env.Slots[idx]
		if slot == nil {
			continue
		}
		if slot.Hdr().Mark == obj.White {
			slot.Hdr().Mark = obj.Grey
			g.grey = append(g.grey, slot)
		}
	}
	return nil
}

// drain pops the grey worklist to exhaustion, marking each entry BLACK and
// enqueueing any WHITE children it exposes.
func (g *Major) drain() error {
	for len(g.grey) > 0 {
		v := g.grey[len(g.grey)-1]
		g.grey = g.grey[:len(g.grey)-1]
		if v.Hdr().OnStack {
			return &diag.InvariantViolationError{Detail: "on-stack object reached during major GC"}
		}
		v.Hdr().Mark = obj.Black
		v.Hdr().Prov.Touch("major.drain")
		if err := g.enqueueChildren(v); err != nil {
			return err
		}
	}
	return nil
}

// sweep iterates the heap bookkeeping vector: WHITE entries are freed,
// BLACK entries are reset to WHITE for the next cycle, and a GREY entry at
// this point is an impossible state (spec.md §4.3.3 step 3).
func (g *Major) sweep() (*SweepStats, error) {
	stats := &SweepStats{}
	for i := 0; i < g.heap.Len(); i++ {
		v := g.heap.At(i)
		if v == nil {
			continue
		}
		switch v.Hdr().Mark {
		case obj.White:
			g.heap.Free(i)
			stats.Freed++
		case obj.Black:
			v.Hdr().Mark = obj.White
			stats.Live++
		case obj.Grey:
			return nil, &diag.InvariantViolationError{Detail: "grey object at sweep time"}
		}
	}
	g.heap.Compact()
	return stats, nil
}
