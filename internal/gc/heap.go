// Package gc implements the two-phase collector described in spec.md §4.3:
// a Cheney-style minor phase that promotes everything reachable from the
// in-flight thunk from the (simulated) call stack to the heap, followed by
// a tri-color mark-and-sweep major phase over the heap bookkeeping vector.
package gc

import (
	"sort"

	"github.com/tailhop/schemert/internal/diag"
	"github.com/tailhop/schemert/internal/obj"
	"golang.org/x/exp/constraints"
)

// Heap is the process-global bookkeeping vector of weak back-references to
// every value gc_malloc has returned (spec.md §3, "Heap bookkeeping").
// Slots are nulled when freed; Compact drops them.
type Heap struct {
	entries []obj.Value
	freed   int
}

// NewHeap returns an empty bookkeeping vector.
func NewHeap() *Heap {
	return &Heap{}
}

// Malloc records v and returns its slot index. limit, if positive, bounds
// the number of live entries the heap will hold before reporting
// AllocationFailureError — the runtime's stand-in for a host malloc
// failure, which cannot otherwise be induced deterministically in Go.
func (h *Heap) Malloc(v obj.Value, limit int) (int, error) {
	if limit > 0 && len(h.entries) >= limit {
		return -1, &diag.AllocationFailureError{Size: 1}
	}
	h.entries = append(h.entries, v)
	return len(h.entries) - 1, nil
}

// Len returns the number of slots, including freed (nil) ones.
func (h *Heap) Len() int { return len(h.entries) }

// At returns the value at slot i, or nil if it has been freed.
func (h *Heap) At(i int) obj.Value { return h.entries[i] }

// Free nulls slot i, invoking no destructor (the variants in this model
// own no external resources) and incrementing the freed counter.
func (h *Heap) Free(i int) {
	if h.entries[i] != nil {
		h.entries[i] = nil
		h.freed++
	}
}

// FreedCount returns the cumulative number of objects freed across every
// sweep since the heap was created.
func (h *Heap) FreedCount() int { return h.freed }

// Compact drops NULL slots, preserving relative order, so every live heap
// object continues to appear exactly once and no permanent gaps remain.
func (h *Heap) Compact() {
	out := h.entries[:0]
	for _, v := range h.entries {
		if v != nil {
			out = append(out, v)
		}
	}
	h.entries = out
}

// Live returns a snapshot of every non-freed entry, in bookkeeping order.
func (h *Heap) Live() []obj.Value {
	live := make([]obj.Value, 0, len(h.entries))
	for _, v := range h.entries {
		if v != nil {
			live = append(live, v)
		}
	}
	return live
}

// SortedEnvIDs returns the environment-ids registered in t in ascending
// order. Whitebox tests use this instead of ranging over the table
// directly, so output stays reproducible despite Go's randomized map
// iteration order.
func SortedEnvIDs(t obj.EnvTable) []obj.EnvID {
	return sortedKeys(t)
}

// sortedKeys returns the keys of m in ascending order. It backs
// SortedEnvIDs; the collector itself iterates each entry's VarIDs slice in
// its stored order and does not range over the table.
func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
