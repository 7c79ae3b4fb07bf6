package schemert

import (
	"strings"
	"testing"

	"github.com/tailhop/schemert/internal/diag"
	"github.com/tailhop/schemert/internal/obj"
	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFatalCapture overrides logiface's package-wide OsExit hook for the
// duration of a test, so a fatal error can be observed without killing the
// test binary.
func withFatalCapture(t *testing.T) *bool {
	t.Helper()
	prev := logiface.OsExit
	exited := false
	logiface.OsExit = func(int) { exited = true }
	t.Cleanup(func() { logiface.OsExit = prev })
	return &exited
}

func TestCallOne_DirectDispatch(t *testing.T) {
	rt, err := New(WithEnvTable(obj.EnvTable{}))
	require.NoError(t, err)

	var got obj.Value
	cl := obj.NewClosure1(func(rand obj.Value, env *obj.Environment) {
		got = rand
	}, 0, obj.NewEnvironment(0))

	rt.CallOne(cl, obj.NewInteger(5))

	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.(*obj.Integer).N)
}

func TestCallTwo_DirectDispatch(t *testing.T) {
	rt, err := New(WithEnvTable(obj.EnvTable{}))
	require.NoError(t, err)

	var gotRand, gotCont obj.Value
	cl := obj.NewClosure2(func(rand, cont obj.Value, env *obj.Environment) {
		gotRand, gotCont = rand, cont
	}, 0, obj.NewEnvironment(0))

	cont := obj.NewClosure1(func(obj.Value, *obj.Environment) {}, 0, obj.NewEnvironment(0))
	rt.CallTwo(cl, obj.NewInteger(1), cont)

	assert.Equal(t, int64(1), gotRand.(*obj.Integer).N)
	assert.Same(t, cont, gotCont)
}

func TestCallTwo_ArityMismatchIsFatal(t *testing.T) {
	exited := withFatalCapture(t)

	var buf strings.Builder
	rt, err := New(WithEnvTable(obj.EnvTable{}), WithLogger(diag.NewLogger(&buf)))
	require.NoError(t, err)

	invoked := false
	cl := obj.NewClosure1(func(obj.Value, *obj.Environment) { invoked = true }, 0, obj.NewEnvironment(0))

	rt.CallTwo(cl, obj.NewInteger(1), obj.NewInteger(2))

	assert.True(t, *exited)
	assert.False(t, invoked, "the mismatched closure must never run")
	assert.Contains(t, buf.String(), "called arity-ONE closure with TWO args")
}

func TestCallOne_NonClosureOperatorIsFatal(t *testing.T) {
	exited := withFatalCapture(t)

	var buf strings.Builder
	rt, err := New(WithEnvTable(obj.EnvTable{}), WithLogger(diag.NewLogger(&buf)))
	require.NoError(t, err)

	rt.CallOne(obj.NewInteger(1), obj.NewInteger(2))

	assert.True(t, *exited)
	assert.Contains(t, buf.String(), "operator is not a closure")
}

func TestRuntime_BounceTriggersGCCycleAndHalts(t *testing.T) {
	var buf strings.Builder
	logger := diag.NewLogger(&buf)

	rt, err := New(WithEnvTable(obj.EnvTable{}), WithStackDepthLimit(5), WithLogger(logger))
	require.NoError(t, err)

	var exited bool
	var haltOut strings.Builder
	haltClosure := newHalt(&haltOut, func(int) { exited = true })

	var loopClosure *obj.Closure
	code := func(rand obj.Value, env *obj.Environment) {
		n := rand.(*obj.Integer).N
		if n <= 0 {
			rt.CallOne(haltClosure, obj.TheVoid)
			return
		}
		rt.CallOne(loopClosure, obj.NewInteger(n-1))
	}
	loopClosure = obj.NewClosure1(code, 0, obj.NewEnvironment(0))

	rt.Start(&obj.Thunk{Closure: loopClosure, Rand: obj.NewInteger(50)})

	assert.True(t, exited)
	assert.Equal(t, "Halt\n", haltOut.String())
	assert.Contains(t, buf.String(), "gc cycle")
	assert.Greater(t, rt.cycle, 0)
	assert.Equal(t, StateIdle, rt.State())
}

func TestRuntime_NoOverflowNeverTouchesHeap(t *testing.T) {
	rt, err := New(WithEnvTable(obj.EnvTable{}), WithStackDepthLimit(1000))
	require.NoError(t, err)

	cl := obj.NewClosure1(func(obj.Value, *obj.Environment) {}, 0, obj.NewEnvironment(0))
	rt.CallOne(cl, obj.NewInteger(1))

	assert.Equal(t, 0, rt.heap.Len(), "a call within the depth limit must not allocate anything on the heap")
}
