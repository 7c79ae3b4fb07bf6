package gc

import (
	"testing"

	"github.com/tailhop/schemert/internal/obj"
	"github.com/stretchr/testify/assert"
)

func TestForwardingTable_LookupMiss(t *testing.T) {
	ft := NewForwardingTable()
	_, ok := ft.Lookup(obj.NewInteger(1))
	assert.False(t, ok)
	assert.Equal(t, 0, ft.Len())
}

func TestForwardingTable_RecordAndLookup(t *testing.T) {
	ft := NewForwardingTable()
	src := obj.NewInteger(1)
	dst := obj.NewInteger(1)
	dst.OnStack = false

	ft.Record(src, dst)

	fwd, ok := ft.Lookup(src)
	assert.True(t, ok)
	assert.Same(t, dst, fwd)
	assert.Equal(t, 1, ft.Len())
}

func TestForwardingTable_DistinctAliasesShareOneReplica(t *testing.T) {
	ft := NewForwardingTable()
	src := obj.NewInteger(1)
	dst := obj.NewInteger(1)
	ft.Record(src, dst)

	first, _ := ft.Lookup(src)
	second, _ := ft.Lookup(src)
	assert.Same(t, first, second, "two lookups of the same aliased pointer must forward to the identical replica")
}
