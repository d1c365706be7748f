package nativetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/hdf5c/internal/native"
)

func drainDescs(t *testing.T, f *Fake, dir native.Direction) []string {
	t.Helper()

	stack := f.GetCurrentStack()
	require.NotEqual(t, native.InvalidHid, stack)

	var descs []string
	cb := f.NewWalkCallback(func(_ uint, e *native.Entry) native.Herr {
		descs = append(descs, string(e.Desc))
		return 0
	})
	defer f.FreeWalkCallback(cb)

	require.Equal(t, native.Herr(0), f.Walk(stack, dir, cb))
	require.Equal(t, native.Herr(0), f.CloseStack(stack))
	return descs
}

func TestWalkDirections(t *testing.T) {
	b := Builtin()

	t.Run("downward visits innermost first", func(t *testing.T) {
		f := New()
		f.Raise(
			Frame("inner", b.MajFile, b.MinCantOpen),
			Frame("outer", b.MajInternal, b.MinCantInit),
		)
		require.Equal(t, []string{"inner", "outer"}, drainDescs(t, f, native.WalkDownward))
	})

	t.Run("upward visits outermost first", func(t *testing.T) {
		f := New()
		f.Raise(
			Frame("inner", b.MajFile, b.MinCantOpen),
			Frame("outer", b.MajInternal, b.MinCantInit),
		)
		require.Equal(t, []string{"outer", "inner"}, drainDescs(t, f, native.WalkUpward))
	})
}

func TestWalkEntryBuffersAreTransient(t *testing.T) {
	b := Builtin()
	f := New()
	f.Raise(
		Frame("first", b.MajFile, b.MinCantOpen),
		Frame("second", b.MajIO, b.MinReadError),
	)

	stack := f.GetCurrentStack()
	var aliased [][]byte
	cb := f.NewWalkCallback(func(_ uint, e *native.Entry) native.Herr {
		aliased = append(aliased, e.Desc) // deliberately kept without copying
		return 0
	})
	defer f.FreeWalkCallback(cb)

	require.Equal(t, native.Herr(0), f.Walk(stack, native.WalkDownward, cb))
	require.Equal(t, native.Herr(0), f.CloseStack(stack))

	// The first frame's slice was overwritten when the second frame was
	// delivered through the shared scratch buffer.
	require.Len(t, aliased, 2)
	require.NotEqual(t, "first", string(aliased[0]))
	require.Equal(t, "second", string(aliased[1]))
}

func TestScriptedFailuresPushFrames(t *testing.T) {
	f := New()
	f.FailCreateStack = true

	require.Equal(t, native.InvalidHid, f.CreateStack())
	frames := f.CurrentFrames()
	require.Len(t, frames, 1)
	require.Equal(t, "unable to create error stack", string(frames[0].Desc))
}
