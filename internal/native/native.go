// Package native defines the boundary contract with the HDF5 C library's
// error subsystem. The cgo layer registers a Lib implementation at init time;
// everything above this package is written against the interface so the
// bridge logic stays testable without a linked native library.
package native

// Hid is a native object identifier (hid_t). Negative values are invalid.
type Hid int64

// InvalidHid is the sentinel returned by identifier-producing calls on
// failure (H5I_INVALID_HID).
const InvalidHid Hid = -1

// Herr is a native status code (herr_t). Negative values indicate failure.
type Herr int32

// Htri is a native tri-state result (htri_t): positive is true, zero is
// false, negative is failure.
type Htri int32

// Severity selects between major and minor message codes at registration
// (H5E_type_t).
type Severity int32

// Message code severities.
const (
	SeverityMajor Severity = 0
	SeverityMinor Severity = 1
)

// Direction selects the traversal order of an error-stack walk
// (H5E_direction_t).
type Direction int32

// Walk directions. Downward visits the innermost (most specific) frame first.
const (
	WalkUpward   Direction = 0
	WalkDownward Direction = 1
)

// Entry is one error-stack frame as presented to a walk callback
// (H5E_error2_t). The byte fields alias native memory and are only valid for
// the duration of the callback invocation; callers must copy what they keep.
type Entry struct {
	ClassID  Hid
	MajNum   Hid
	MinNum   Hid
	Line     uint
	FuncName []byte
	FileName []byte
	Desc     []byte
}

// WalkFunc is invoked once per stack frame during a walk, with the frame's
// position in traversal order. A negative return requests early termination.
type WalkFunc func(pos uint, entry *Entry) Herr

// Callback is an opaque token for a walk callback registered with the native
// layer. The cgo implementation backs it with a runtime/cgo.Handle; it must
// be freed after the walk it was created for.
type Callback uintptr

// Builtins carries the library's runtime-assigned identifiers for the
// built-in error class and the recognized message codes. The cgo layer
// populates it once from the H5E_* globals after library initialization.
type Builtins struct {
	ErrClass Hid

	MajArgs, MajResource, MajIO, MajFile, MajDataset Hid
	MajDataspace, MajDatatype, MajAttribute, MajGroup Hid
	MajLink, MajSymbolTable, MajHeap, MajBtree        Hid
	MajCache, MajPlist, MajStorage, MajInternal       Hid

	MinCantOpen, MinCantClose, MinCantInit, MinCantAlloc Hid
	MinCantFree, MinCantGet, MinCantSet, MinCantRegister Hid
	MinReadError, MinWriteError, MinSeekError            Hid
	MinBadValue, MinBadType, MinBadRange, MinBadID       Hid
	MinNotFound, MinAlreadyExists, MinUnsupported        Hid
}

// Lib is the set of native error-subsystem primitives this module depends on.
// All calls are synchronous and operate on the calling thread's error stack
// per the library's thread-local-storage contract.
type Lib interface {
	// SilenceAutoReport suspends the library's automatic error printing and
	// returns a function that restores the previous handler. It does not
	// touch the error stack's contents.
	SilenceAutoReport() (restore func())

	// GetCurrentStack returns a handle to a copy of the calling thread's
	// error stack and clears the original (H5Eget_current_stack semantics).
	// Ownership of the returned handle transfers to the caller.
	GetCurrentStack() Hid

	// CreateStack allocates a new, empty, detached error stack.
	CreateStack() Hid

	// SetCurrentStack makes the given stack the thread's active stack and
	// releases the handle (H5Eset_current_stack semantics).
	SetCurrentStack(stack Hid) Herr

	// CloseStack releases a caller-owned stack handle.
	CloseStack(stack Hid) Herr

	// NewWalkCallback pins fn as a native-callable and returns its token.
	NewWalkCallback(fn WalkFunc) Callback

	// FreeWalkCallback releases a token created by NewWalkCallback.
	FreeWalkCallback(cb Callback)

	// Walk traverses the given stack in the given direction, invoking the
	// registered callback once per frame. The stack is not modified.
	Walk(stack Hid, dir Direction, cb Callback) Herr

	// RegisterClass registers a new error class. The three byte strings are
	// passed through to the library without validation.
	RegisterClass(name, libName, version []byte) Hid

	// UnregisterClass removes a caller-registered error class.
	UnregisterClass(cls Hid) Herr

	// CreateMessage registers a new major or minor message code under cls.
	CreateMessage(cls Hid, sev Severity, msg []byte) Hid

	// CloseMessage releases a caller-created message code.
	CloseMessage(msg Hid) Herr

	// Builtins reports the runtime identifiers of the built-in error class
	// and recognized message codes.
	Builtins() Builtins
}

var active Lib

// SetActive installs the process-wide native library implementation. The cgo
// layer calls this from init; tests swap in a fake and restore the previous
// value.
func SetActive(l Lib) (prev Lib) {
	prev = active
	active = l
	return prev
}

// Active returns the installed native library implementation.
func Active() Lib {
	if active == nil {
		panic("hdf5c: no native HDF5 library bound (cgo layer not linked)")
	}
	return active
}
