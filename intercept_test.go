package hdf5c

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/hdf5c/internal/native"
	"github.com/scigolib/hdf5c/internal/nativetest"
)

// bind installs a fresh fake native library for the duration of a test.
func bind(t *testing.T) *nativetest.Fake {
	t.Helper()
	fake := nativetest.New()
	prev := native.SetActive(fake)
	t.Cleanup(func() { native.SetActive(prev) })
	return fake
}

func TestCheckSuccessPassesResultThrough(t *testing.T) {
	fake := bind(t)

	res, err := Check(func() Status { return 7 })
	require.NoError(t, err)
	require.Equal(t, Status(7), res)

	// A successful call must have no side effects: no stack fetch, no walk,
	// no callback registration, nothing left on the thread's stack.
	require.Zero(t, fake.TotalCalls())
	require.Zero(t, fake.LiveCallbacks())
	require.Empty(t, fake.CurrentFrames())
	require.False(t, fake.AutoSilenced())
}

func TestCheckSilencesAutoReportOnlyDuringCall(t *testing.T) {
	fake := bind(t)
	fake.Raise(nativetest.Frame("scripted failure",
		nativetest.Builtin().MajIO, nativetest.Builtin().MinReadError))

	var mutedInside bool
	_, err := Check(func() Status {
		mutedInside = fake.AutoSilenced()
		return -1
	})
	require.Error(t, err)

	require.True(t, mutedInside, "auto reporting should be off during the native call")
	require.False(t, fake.AutoSilenced(), "auto reporting should be restored afterwards")
	require.False(t, fake.Muted("GetCurrentStack"),
		"the drain must run outside the silenced scope")
}

func TestCheckRestoresAutoReportOnPanic(t *testing.T) {
	fake := bind(t)

	require.Panics(t, func() {
		_, _ = Check(func() Status { panic("native call blew up") })
	})
	require.False(t, fake.AutoSilenced())
}

func TestCheckFailureDrainsStackInWalkOrder(t *testing.T) {
	fake := bind(t)
	b := nativetest.Builtin()
	fake.Raise(
		nativetest.Frame("innermost failure", b.MajFile, b.MinCantOpen),
		nativetest.Frame("intermediate frame", b.MajIO, b.MinReadError),
		nativetest.Frame("outermost frame", b.MajInternal, b.MinCantInit),
	)

	_, err := Check(func() Status { return -1 })
	require.Error(t, err)

	var stackErr *Error
	require.ErrorAs(t, err, &stackErr)

	recs := stackErr.Records()
	require.Len(t, recs, 3)

	// Walk-callback invocation order, innermost frame first. The fake hands
	// out entry strings in a reused buffer, so matching descriptions here
	// also proves the decoder copied them out during each callback.
	require.Equal(t, []byte("innermost failure"), recs[0].Desc)
	require.Equal(t, []byte("intermediate frame"), recs[1].Desc)
	require.Equal(t, []byte("outermost frame"), recs[2].Desc)

	require.Equal(t, MajorFile, recs[0].Major.Kind)
	require.Equal(t, MinorCantOpen, recs[0].Minor.Kind)
	require.Equal(t, int64(b.MajFile), recs[0].Major.Num)
	require.Equal(t, int64(b.ErrClass), recs[0].ClassID)
	require.Equal(t, uint(1204), recs[0].Line)
	require.Equal(t, []byte("H5X_fake_op"), recs[0].Func)
	require.Equal(t, []byte("H5Xfake.c"), recs[0].File)

	// The drained snapshot handle and the walk callback are both released.
	require.Equal(t, 1, fake.CallCount("CloseStack"))
	require.Zero(t, fake.LiveStacks())
	require.Equal(t, 1, fake.CallCount("FreeWalkCallback"))
	require.Zero(t, fake.LiveCallbacks())
}

func TestCheckEmptyStackYieldsEmptyError(t *testing.T) {
	fake := bind(t)

	_, err := Check(func() Status { return -1 })
	require.Error(t, err)

	var stackErr *Error
	require.ErrorAs(t, err, &stackErr)
	require.Empty(t, stackErr.Records())
	require.Contains(t, err.Error(), "empty error stack")
	require.Zero(t, fake.LiveCallbacks())
}

func TestCheckToleratesUnfetchableStack(t *testing.T) {
	fake := bind(t)
	fake.FailGetCurrentStack = true

	_, err := Check(func() Status { return -1 })
	require.Error(t, err)

	var stackErr *Error
	require.ErrorAs(t, err, &stackErr)
	require.Empty(t, stackErr.Records())
	require.Zero(t, fake.CallCount("CloseStack"),
		"no handle was acquired, none must be closed")
}

func TestCheckFailingWalkStillReleasesResources(t *testing.T) {
	fake := bind(t)
	b := nativetest.Builtin()
	fake.Raise(
		nativetest.Frame("first frame", b.MajFile, b.MinCantOpen),
		nativetest.Frame("second frame", b.MajIO, b.MinReadError),
		nativetest.Frame("third frame", b.MajInternal, b.MinCantInit),
	)
	fake.FailWalk = true
	fake.FailWalkAfter = 1

	_, err := Check(func() Status { return -1 })
	require.Error(t, err)

	var stackErr *Error
	require.ErrorAs(t, err, &stackErr)

	// The frames delivered before the walk failed are kept.
	recs := stackErr.Records()
	require.Len(t, recs, 1)
	require.Equal(t, []byte("first frame"), recs[0].Desc)

	require.Equal(t, 1, fake.CallCount("CloseStack"))
	require.Zero(t, fake.LiveStacks())
	require.Zero(t, fake.LiveCallbacks())
}

func TestCheckLeavesNoStaleCallbackState(t *testing.T) {
	fake := bind(t)
	b := nativetest.Builtin()

	fake.Raise(nativetest.Frame("first failure", b.MajFile, b.MinCantOpen))
	_, err := Check(func() Status { return -1 })
	require.Error(t, err)
	require.Zero(t, fake.LiveCallbacks())

	fake.Raise(nativetest.Frame("second failure", b.MajIO, b.MinWriteError))
	_, err = Check(func() Status { return -1 })
	require.Error(t, err)

	var stackErr *Error
	require.ErrorAs(t, err, &stackErr)
	recs := stackErr.Records()
	require.Len(t, recs, 1, "second drain must not see frames from the first")
	require.Equal(t, []byte("second failure"), recs[0].Desc)
	require.Zero(t, fake.LiveCallbacks())
}

func TestDoDiscardsSuccessValue(t *testing.T) {
	bind(t)

	err := Do(func() Status { return 3 })
	require.NoError(t, err)
}

func TestDoPropagatesFailure(t *testing.T) {
	fake := bind(t)
	fake.Raise(nativetest.Frame("side-effect call failed",
		nativetest.Builtin().MajInternal, nativetest.Builtin().MinCantSet))

	err := Do(func() Status { return -1 })
	require.Error(t, err)

	var stackErr *Error
	require.ErrorAs(t, err, &stackErr)
	require.Len(t, stackErr.Records(), 1)
}

func TestCheckBool(t *testing.T) {
	tests := []struct {
		name    string
		tri     Tri
		want    bool
		wantErr bool
	}{
		{name: "positive maps to true", tri: 1, want: true},
		{name: "large positive maps to true", tri: 17, want: true},
		{name: "zero maps to false", tri: 0, want: false},
		{name: "negative is intercepted as failure", tri: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bind(t)
			got, err := CheckBool(func() Tri { return tt.tri })
			if tt.wantErr {
				require.Error(t, err)
				var stackErr *Error
				require.ErrorAs(t, err, &stackErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
