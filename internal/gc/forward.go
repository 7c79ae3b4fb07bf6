package gc

import "github.com/tailhop/schemert/internal/obj"

// ForwardingTable maps a value's pre-promotion (stack-side) identity to its
// post-promotion heap replica. It is rebuilt fresh for every minor
// collection: it is the forwarding table of spec.md §4.3.2, serving both as
// the cycle cutoff and as the mechanism behind Property 4 (forwarding
// uniqueness) — looking an already-forwarded value up returns the same
// replica every time, so two pointers that aliased before GC still alias
// after it.
//
// Keying by the obj.Value interface itself (rather than an unsafe.Pointer
// derived from it) is sufficient and simpler: two interface values compare
// equal exactly when they hold the same concrete pointer, which is exactly
// the "same stack address" the spec's algorithm is keying on.
type ForwardingTable struct {
	fwd map[obj.Value]obj.Value
}

// NewForwardingTable returns an empty forwarding table.
func NewForwardingTable() *ForwardingTable {
	return &ForwardingTable{fwd: make(map[obj.Value]obj.Value)}
}

// Lookup returns the heap replica previously recorded for src, if any.
func (t *ForwardingTable) Lookup(src obj.Value) (obj.Value, bool) {
	v, ok := t.fwd[src]
	return v, ok
}

// Record associates src (a stack-side object) with dst (its heap replica).
// Recording the same src twice is a forwarding-uniqueness violation and
// would indicate a collector bug; callers are expected to check Lookup
// first, per the toheap algorithm in spec.md §4.3.2.
func (t *ForwardingTable) Record(src, dst obj.Value) {
	t.fwd[src] = dst
}

// Len reports how many objects this collection has forwarded so far.
func (t *ForwardingTable) Len() int { return len(t.fwd) }
