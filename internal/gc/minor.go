package gc

import (
	"fmt"

	"github.com/tailhop/schemert/internal/diag"
	"github.com/tailhop/schemert/internal/obj"
)

// fixup is one entry of the pointers_toupdate FIFO of spec.md §4.3.2: a
// stack-side object that must be promoted (if not already), plus where to
// write its forwarded address once resolved.
type fixup struct {
	src obj.Value
	set func(obj.Value)
}

// Minor runs one minor (stack→heap promotion) collection. A fresh Minor
// must be created per collection: its forwarding table and worklist are
// scoped to exactly one cycle.
type Minor struct {
	table      *ForwardingTable
	heap       *Heap
	envTable   obj.EnvTable
	allocLimit int
	queue      []fixup
}

// NewMinor prepares a minor collector writing promoted objects into heap,
// consulting envTable to resolve which environment slots are live for a
// given closure. allocLimit bounds heap growth (0 = unbounded); see
// Heap.Malloc.
func NewMinor(heap *Heap, envTable obj.EnvTable, allocLimit int) *Minor {
	return &Minor{
		table:      NewForwardingTable(),
		heap:       heap,
		envTable:   envTable,
		allocLimit: allocLimit,
	}
}

// PromoteThunk promotes every object reachable from th (its closure,
// transitively its environment, its pending argument, and for arity-TWO
// closures its continuation) to the heap, rewriting th in place so every
// field points at the heap replica. This is the only entry point: spec.md
// §4.3.1 — "The roots of any collection are exactly the fields of the
// in-flight thunk... Nothing else."
func (m *Minor) PromoteThunk(th *obj.Thunk) error {
	if env, ok := th.Rand.(*obj.Environment); ok && env != nil {
		return &diag.InvariantViolationError{Detail: "bare environment reached as a thunk root"}
	}
	if env, ok := th.Cont.(*obj.Environment); ok && env != nil {
		return &diag.InvariantViolationError{Detail: "bare environment reached as a thunk root"}
	}

	if th.Closure != nil {
		promoted, err := m.toHeap(th.Closure)
		if err != nil {
			return err
		}
		th.Closure = promoted.(*obj.Closure)
	}
	if th.Rand != nil {
		promoted, err := m.toHeap(th.Rand)
		if err != nil {
			return err
		}
		th.Rand = promoted
	}
	if th.Cont != nil {
		promoted, err := m.toHeap(th.Cont)
		if err != nil {
			return err
		}
		th.Cont = promoted
	}
	if err := m.drain(); err != nil {
		return err
	}
	th.OnStack = false
	return nil
}

// Forwarded reports how many distinct stack-side objects this collection
// has promoted — used by tests asserting Property 4 (forwarding
// uniqueness) and Property 5 (no on-stack survivors).
func (m *Minor) Forwarded() int { return m.table.Len() }

// toHeap is the algorithm of spec.md §4.3.2: if obj is already on the heap,
// return it unchanged; on a forwarding-table hit, return the forwarded
// address; on a miss, allocate a heap replica, record the forwarding
// entry, and (variant-dependent) enqueue interior pointers.
func (m *Minor) toHeap(v obj.Value) (obj.Value, error) {
	if v == nil {
		return nil, nil
	}
	if _, isVoid := v.(*obj.Void); isVoid {
		// Void always returns the process-wide singleton rather than
		// allocating (spec.md §4.3.2 bullet 2).
		return obj.TheVoid, nil
	}
	if !v.Hdr().OnStack {
		return v, nil
	}
	if fwd, ok := m.table.Lookup(v); ok {
		return fwd, nil
	}

	replica, err := m.allocate(v)
	if err != nil {
		return nil, err
	}
	m.table.Record(v, replica)

	if cl, ok := replica.(*obj.Closure); ok {
		if err := m.enqueueClosureChildren(cl); err != nil {
			return nil, err
		}
	}
	return replica, nil
}

// allocate bit-copies obj's stack image into a fresh heap replica via
// gc_malloc, marking it off-stack. Integer/String/Void/Environment/Closure
// are the only variants; anything else is a compiler bug.
func (m *Minor) allocate(v obj.Value) (obj.Value, error) {
	var replica obj.Value
	switch x := v.(type) {
	case *obj.Closure:
		cp := *x
		cp.OnStack = false
		replica = &cp
	case *obj.Environment:
		cp := *x
		cp.Slots = append([]obj.Value(nil), x.Slots...)
		cp.OnStack = false
		replica = &cp
	case *obj.Integer:
		cp := *x
		cp.OnStack = false
		replica = &cp
	case *obj.String:
		cp := *x
		cp.Bytes = append([]byte(nil), x.Bytes...)
		cp.OnStack = false
		replica = &cp
	default:
		return nil, &diag.InvariantViolationError{Detail: fmt.Sprintf("toheap: unrecognized value of tag %v", v.Hdr().Tag)}
	}
	if _, err := m.heap.Malloc(replica, m.allocLimit); err != nil {
		return nil, err
	}
	replica.Hdr().Prov.Touch("minor.allocate")
	return replica, nil
}

// enqueueClosureChildren implements the Closure bullet of spec.md §4.3.2:
// promote the environment immediately if it is still on-stack, then enqueue
// a pointer-fixup for every variable-id the global env table lists for this
// closure's env-id whose slot is non-nil and still on-stack.
func (m *Minor) enqueueClosureChildren(cl *obj.Closure) error {
	env := cl.Env
	if env == nil {
		return nil
	}
	if env.OnStack {
		promoted, err := m.toHeap(env)
		if err != nil {
			return err
		}
		env = promoted.(*obj.Environment)
		cl.Env = env
	}

	for _, varID := range m.envTable.VarIDs(cl.EnvID) {
		idx := int(varID)
		if idx < 0 || idx >= len(env.Slots) {
			continue
		}
		slot := env.Slots[idx]
		if slot == nil || !slot.Hdr().OnStack {
			continue
		}
		target, i, src := env, idx, slot
		m.queue = append(m.queue, fixup{
			src: src,
			set: func(resolved obj.Value) { target.Slots[i] = resolved },
		})
	}
	return nil
}

// drain processes pointers_toupdate to exhaustion: for each pending fix,
// resolve its target via the forwarding table (promoting it if first seen)
// and write the forwarded address into the recorded slot.
func (m *Minor) drain() error {
	for len(m.queue) > 0 {
		item := m.queue[0]
		m.queue = m.queue[1:]
		resolved, err := m.toHeap(item.src)
		if err != nil {
			return err
		}
		item.set(resolved)
	}
	return nil
}
