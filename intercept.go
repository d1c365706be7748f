// Package hdf5c implements the error-reporting bridge between Go and the
// native HDF5 library's error subsystem. Every fallible native call in the
// binding runs through Check or one of its variants: the call executes with
// the library's automatic error printing suspended, its result is classified
// per return-type convention, and on failure the calling thread's error
// stack is drained into a structured *Error carrying the complete ordered
// frame snapshot. The raw native layer is reached through the contract in
// internal/native, which the cgo side fulfills at init time.
package hdf5c

import "github.com/scigolib/hdf5c/internal/native"

// Check runs a native call with automatic error reporting suspended and
// classifies its result. A non-error result is returned unchanged. On
// failure the raw result is discarded and the thread's error stack is
// drained into the returned *Error; the drained stack handle and the walk
// callback are released on every path.
func Check[R Result](call func() R) (R, error) {
	lib := native.Active()
	res := silenced(lib, call)
	if !res.IsError() {
		return res, nil
	}
	var zero R
	return zero, drain(lib)
}

// Do runs call through Check and discards a successful result. It suits
// native calls made only for their side effects.
func Do[R Result](call func() R) error {
	_, err := Check(call)
	return err
}

// CheckBool runs a tri-state native call through Check and folds the result
// into a plain bool: strictly positive is true, zero is false. A negative
// encoding never reaches the fold; Check intercepts it as a failure.
func CheckBool(call func() Tri) (bool, error) {
	t, err := Check(call)
	if err != nil {
		return false, err
	}
	return t > 0, nil
}

// silenced suspends automatic error reporting for exactly the duration of
// the call, restoring the previous handler even if the call panics. The
// suspension does not alter the error stack's contents.
func silenced[R Result](lib native.Lib, call func() R) R {
	restore := lib.SilenceAutoReport()
	defer restore()
	return call()
}

// drain snapshots the calling thread's error stack into an *Error. The
// native get-current-stack call transfers ownership of the snapshot handle,
// so it is closed here on every path, including a failing walk. An empty or
// unfetchable stack on a reported failure yields an *Error with no records
// rather than a secondary failure.
func drain(lib native.Lib) *Error {
	stack := lib.GetCurrentStack()
	if stack < 0 {
		return &Error{}
	}
	defer lib.CloseStack(stack)
	return &Error{records: walkStack(lib, stack)}
}
