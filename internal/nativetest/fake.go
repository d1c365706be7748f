// Package nativetest provides an in-memory fake of the native HDF5 error
// subsystem for testing the error bridge without a linked C library.
package nativetest

import (
	"fmt"
	"sync"

	"github.com/scigolib/hdf5c/internal/native"
)

// Runtime identifiers the fake assigns to the built-in error class and
// message codes. Values are arbitrary but stable within a process, like the
// real library's H5E_* globals.
var builtinIDs = native.Builtins{
	ErrClass: 64,

	MajArgs: 101, MajResource: 102, MajIO: 103, MajFile: 104, MajDataset: 105,
	MajDataspace: 106, MajDatatype: 107, MajAttribute: 108, MajGroup: 109,
	MajLink: 110, MajSymbolTable: 111, MajHeap: 112, MajBtree: 113,
	MajCache: 114, MajPlist: 115, MajStorage: 116, MajInternal: 117,

	MinCantOpen: 201, MinCantClose: 202, MinCantInit: 203, MinCantAlloc: 204,
	MinCantFree: 205, MinCantGet: 206, MinCantSet: 207, MinCantRegister: 208,
	MinReadError: 209, MinWriteError: 210, MinSeekError: 211,
	MinBadValue: 212, MinBadType: 213, MinBadRange: 214, MinBadID: 215,
	MinNotFound: 216, MinAlreadyExists: 217, MinUnsupported: 218,
}

// Builtin returns the identifiers the fake reports from Builtins.
func Builtin() native.Builtins {
	return builtinIDs
}

type message struct {
	cls native.Hid
	sev native.Severity
	msg []byte
}

// Fake implements native.Lib in memory. Every operation increments a named
// call counter and records whether automatic reporting was silenced at the
// time, so tests can assert on call sequencing. Scripted Fail* fields make
// the corresponding operation fail and push a synthetic frame onto the
// current stack, the way the native library would.
type Fake struct {
	mu sync.Mutex

	calls    map[string]int
	silenced int
	muted    map[string]bool // was auto reporting off when the op ran

	nextID  native.Hid
	current []native.Entry // the thread's implicit stack, innermost first
	stacks  map[native.Hid][]native.Entry

	callbacks map[native.Callback]native.WalkFunc
	classes   map[native.Hid][]byte
	messages  map[native.Hid]message

	walkBuf []byte // transient per-frame string storage, reused each callback

	FailGetCurrentStack bool
	FailCreateStack     bool
	FailSetCurrentStack bool
	FailCloseStack      bool
	FailRegisterClass   bool
	FailUnregisterClass bool
	FailCreateMessage   bool
	FailCloseMessage    bool
	FailWalk            bool
	FailWalkAfter       int // frames delivered before a failing walk stops
}

// New returns an empty fake library.
func New() *Fake {
	return &Fake{
		calls:     make(map[string]int),
		muted:     make(map[string]bool),
		nextID:    1000,
		stacks:    make(map[native.Hid][]native.Entry),
		callbacks: make(map[native.Callback]native.WalkFunc),
		classes:   make(map[native.Hid][]byte),
		messages:  make(map[native.Hid]message),
		walkBuf:   make([]byte, 0, 256),
	}
}

func (f *Fake) count(op string) {
	f.calls[op]++
	f.muted[op] = f.silenced > 0
}

// CallCount reports how many times the named operation ran.
func (f *Fake) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// TotalCalls reports the number of native operations issued, excluding
// SilenceAutoReport bookkeeping.
func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for op, c := range f.calls {
		if op == "SilenceAutoReport" {
			continue
		}
		n += c
	}
	return n
}

// Muted reports whether auto reporting was silenced when the named operation
// last ran.
func (f *Fake) Muted(op string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted[op]
}

// AutoSilenced reports whether automatic reporting is currently suspended.
func (f *Fake) AutoSilenced() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.silenced > 0
}

// LiveCallbacks reports how many walk callbacks are registered and not yet
// freed.
func (f *Fake) LiveCallbacks() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.callbacks)
}

// LiveStacks reports how many detached stack handles remain open.
func (f *Fake) LiveStacks() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stacks)
}

// Raise appends frames to the thread's current error stack, innermost first,
// as a failing native call would.
func (f *Fake) Raise(entries ...native.Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = append(f.current, entries...)
}

// CurrentFrames returns a copy of the thread's current stack contents.
func (f *Fake) CurrentFrames() []native.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]native.Entry, len(f.current))
	copy(out, f.current)
	return out
}

// Frame builds a stack entry under the built-in error class. Tests use it to
// script failures without spelling out every field.
func Frame(desc string, maj, min native.Hid) native.Entry {
	return native.Entry{
		ClassID:  builtinIDs.ErrClass,
		MajNum:   maj,
		MinNum:   min,
		Line:     1204,
		FuncName: []byte("H5X_fake_op"),
		FileName: []byte("H5Xfake.c"),
		Desc:     []byte(desc),
	}
}

func (f *Fake) raiseLocked(fn, desc string, maj, min native.Hid) {
	f.current = append(f.current, native.Entry{
		ClassID:  builtinIDs.ErrClass,
		MajNum:   maj,
		MinNum:   min,
		Line:     77,
		FuncName: []byte(fn),
		FileName: []byte("H5E.c"),
		Desc:     []byte(desc),
	})
}

func (f *Fake) newID() native.Hid {
	f.nextID++
	return f.nextID
}

// SilenceAutoReport implements native.Lib.
func (f *Fake) SilenceAutoReport() (restore func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["SilenceAutoReport"]++
	f.silenced++
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.silenced--
		})
	}
}

// GetCurrentStack implements native.Lib. The real call copies the thread's
// stack and clears the original, transferring ownership of the copy.
func (f *Fake) GetCurrentStack() native.Hid {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GetCurrentStack")
	if f.FailGetCurrentStack {
		return native.InvalidHid
	}
	id := f.newID()
	f.stacks[id] = f.current
	f.current = nil
	return id
}

// CreateStack implements native.Lib.
func (f *Fake) CreateStack() native.Hid {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CreateStack")
	if f.FailCreateStack {
		f.raiseLocked("H5Ecreate_stack", "unable to create error stack",
			builtinIDs.MajResource, builtinIDs.MinCantAlloc)
		return native.InvalidHid
	}
	id := f.newID()
	f.stacks[id] = nil
	return id
}

// SetCurrentStack implements native.Lib. The handle is consumed on success.
func (f *Fake) SetCurrentStack(stack native.Hid) native.Herr {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("SetCurrentStack")
	frames, ok := f.stacks[stack]
	if f.FailSetCurrentStack || !ok {
		f.raiseLocked("H5Eset_current_stack", "unable to set current error stack",
			builtinIDs.MajArgs, builtinIDs.MinBadID)
		return -1
	}
	f.current = frames
	delete(f.stacks, stack)
	return 0
}

// CloseStack implements native.Lib.
func (f *Fake) CloseStack(stack native.Hid) native.Herr {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CloseStack")
	if _, ok := f.stacks[stack]; f.FailCloseStack || !ok {
		f.raiseLocked("H5Eclose_stack", "unable to close error stack",
			builtinIDs.MajArgs, builtinIDs.MinBadID)
		return -1
	}
	delete(f.stacks, stack)
	return 0
}

// NewWalkCallback implements native.Lib.
func (f *Fake) NewWalkCallback(fn native.WalkFunc) native.Callback {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("NewWalkCallback")
	cb := native.Callback(f.newID())
	f.callbacks[cb] = fn
	return cb
}

// FreeWalkCallback implements native.Lib.
func (f *Fake) FreeWalkCallback(cb native.Callback) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("FreeWalkCallback")
	delete(f.callbacks, cb)
}

// Walk implements native.Lib. Frames are delivered through transient buffers
// that are overwritten on the next callback invocation, matching the real
// library's lifetime guarantee for entry strings.
func (f *Fake) Walk(stack native.Hid, dir native.Direction, cb native.Callback) native.Herr {
	f.mu.Lock()
	f.count("Walk")
	fn, okCB := f.callbacks[cb]
	frames, okStack := f.stacks[stack]
	failAfter := -1
	if f.FailWalk {
		failAfter = f.FailWalkAfter
	}
	f.mu.Unlock()

	if !okCB || !okStack {
		return -1
	}
	if dir == native.WalkUpward {
		rev := make([]native.Entry, len(frames))
		for i, e := range frames {
			rev[len(frames)-1-i] = e
		}
		frames = rev
	}
	for i, e := range frames {
		if failAfter >= 0 && i == failAfter {
			return -1
		}
		entry := f.transient(e)
		if fn(uint(i), &entry) < 0 {
			break
		}
	}
	if failAfter >= 0 && failAfter >= len(frames) {
		return -1
	}
	return 0
}

// transient rebuilds e with its string fields in a shared scratch buffer, so
// the slices handed to a callback do not survive the next invocation.
func (f *Fake) transient(e native.Entry) native.Entry {
	f.walkBuf = f.walkBuf[:0]
	borrow := func(b []byte) []byte {
		start := len(f.walkBuf)
		f.walkBuf = append(f.walkBuf, b...)
		return f.walkBuf[start:len(f.walkBuf):len(f.walkBuf)]
	}
	e.FuncName = borrow(e.FuncName)
	e.FileName = borrow(e.FileName)
	e.Desc = borrow(e.Desc)
	return e
}

// RegisterClass implements native.Lib.
func (f *Fake) RegisterClass(name, _, _ []byte) native.Hid {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("RegisterClass")
	if f.FailRegisterClass {
		f.raiseLocked("H5Eregister_class", "unable to register error class",
			builtinIDs.MajResource, builtinIDs.MinCantRegister)
		return native.InvalidHid
	}
	id := f.newID()
	f.classes[id] = append([]byte(nil), name...)
	return id
}

// UnregisterClass implements native.Lib.
func (f *Fake) UnregisterClass(cls native.Hid) native.Herr {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("UnregisterClass")
	if _, ok := f.classes[cls]; f.FailUnregisterClass || !ok {
		f.raiseLocked("H5Eunregister_class", "unable to remove error class",
			builtinIDs.MajArgs, builtinIDs.MinBadID)
		return -1
	}
	delete(f.classes, cls)
	return 0
}

// CreateMessage implements native.Lib.
func (f *Fake) CreateMessage(cls native.Hid, sev native.Severity, msg []byte) native.Hid {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CreateMessage")
	_, known := f.classes[cls]
	if f.FailCreateMessage || (!known && cls != builtinIDs.ErrClass) {
		f.raiseLocked("H5Ecreate_msg", "unable to create error message",
			builtinIDs.MajArgs, builtinIDs.MinBadValue)
		return native.InvalidHid
	}
	id := f.newID()
	f.messages[id] = message{cls: cls, sev: sev, msg: append([]byte(nil), msg...)}
	return id
}

// CloseMessage implements native.Lib. Closing an unknown or already-closed
// message fails, matching the native double-release contract.
func (f *Fake) CloseMessage(msg native.Hid) native.Herr {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CloseMessage")
	if _, ok := f.messages[msg]; f.FailCloseMessage || !ok {
		f.raiseLocked("H5Eclose_msg", fmt.Sprintf("unable to close error message %d", msg),
			builtinIDs.MajArgs, builtinIDs.MinBadID)
		return -1
	}
	delete(f.messages, msg)
	return 0
}

// Builtins implements native.Lib.
func (f *Fake) Builtins() native.Builtins {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("Builtins")
	return builtinIDs
}
