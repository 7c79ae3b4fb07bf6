package schemert

import (
	"testing"

	"github.com/tailhop/schemert/internal/gc"
	"github.com/tailhop/schemert/internal/obj"
	"github.com/stretchr/testify/require"
)

func FuzzIntegerRoundtrip(f *testing.F) {
	for _, seed := range []int64{0, 1, -1, 1 << 62, -(1 << 62)} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, n int64) {
		heap := gc.NewHeap()
		minor := gc.NewMinor(heap, obj.EnvTable{}, 0)
		cl := obj.NewClosure1(func(obj.Value, *obj.Environment) {}, 0, obj.NewEnvironment(0))
		th := &obj.Thunk{Closure: cl, Rand: obj.NewInteger(n)}

		require.NoError(t, minor.PromoteThunk(th))
		require.Equal(t, n, th.Rand.(*obj.Integer).N)
	})
}

func FuzzStringPromotion(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hello"))
	f.Add(make([]byte, 4096))

	f.Fuzz(func(t *testing.T, b []byte) {
		heap := gc.NewHeap()
		minor := gc.NewMinor(heap, obj.EnvTable{}, 0)
		cl := obj.NewClosure1(func(obj.Value, *obj.Environment) {}, 0, obj.NewEnvironment(0))
		th := &obj.Thunk{Closure: cl, Rand: obj.NewString(b)}

		require.NoError(t, minor.PromoteThunk(th))
		promoted := th.Rand.(*obj.String)
		require.Equal(t, len(b), len(promoted.Bytes))
		require.Equal(t, b, promoted.Bytes)
		require.False(t, promoted.OnStack)
	})
}
