package hdf5c

import "github.com/scigolib/hdf5c/internal/native"

// walkStack drains the given stack into decoded records, innermost frame
// first, matching the native walk's downward callback order. The walk
// callback is a transient native-callable: it is registered immediately
// before the walk and freed on every exit path, including a failing walk.
// The walk itself does not modify the stack's contents.
func walkStack(lib native.Lib, stack native.Hid) []ErrorRecord {
	tabs := lookupTables(lib)

	var records []ErrorRecord
	cb := lib.NewWalkCallback(func(_ uint, e *native.Entry) native.Herr {
		records = append(records, decodeEntry(e, tabs))
		return 0
	})
	defer lib.FreeWalkCallback(cb)

	// A failed walk still yields the frames delivered before the failure; a
	// partial stack is more useful in the raised error than none at all.
	lib.Walk(stack, native.WalkDownward, cb)
	return records
}
