package hdf5c

import "github.com/scigolib/hdf5c/internal/native"

// ErrorStack is an opaque handle to a native error-stack object, either the
// thread's implicit current stack or an explicitly created detached one.
// Handles obtained from NewStack and CurrentStack are caller-owned and must
// be closed; a handle consumed by SetCurrentStack must not be.
type ErrorStack struct {
	id native.Hid
}

// IsError implements Result; an invalid handle marks a failed acquisition.
func (s ErrorStack) IsError() bool { return s.id < 0 }

// ID returns the raw native identifier of the stack.
func (s ErrorStack) ID() int64 { return int64(s.id) }

// NewStack creates a new, empty, detached error stack owned by the caller.
func NewStack() (ErrorStack, error) {
	return Check(func() ErrorStack {
		return ErrorStack{id: native.Active().CreateStack()}
	})
}

// CurrentStack returns a snapshot of the calling thread's error stack. Per
// the native get-current-stack contract the thread's stack is cleared and
// the returned handle is owned by the caller, who must Close it when done.
func CurrentStack() (ErrorStack, error) {
	return Check(func() ErrorStack {
		return ErrorStack{id: native.Active().GetCurrentStack()}
	})
}

// SetCurrentStack makes s the calling thread's active error stack. The
// handle is consumed on success and must not be closed afterwards.
func SetCurrentStack(s ErrorStack) error {
	return Do(func() Status {
		return Status(native.Active().SetCurrentStack(s.id))
	})
}

// Close releases the native resources behind a caller-owned stack. Closing
// an already-closed handle, or a handle the caller does not own, is a caller
// error reported by the native library.
func (s ErrorStack) Close() error {
	return Do(func() Status {
		return Status(native.Active().CloseStack(s.id))
	})
}
