package hdf5c

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/scigolib/hdf5c/internal/utils"
)

// ErrBuiltinCode reports an attempt to release a built-in major or minor
// error code. Built-in codes are process-wide library constants; releasing
// one is always a misuse and fails before any native call is made.
var ErrBuiltinCode = errors.New("cannot release built-in error code")

// ErrorRecord is one decoded error-stack frame. The byte fields are owned
// copies of the native strings; the library guarantees no encoding for them,
// so they are kept as raw bytes. A record is immutable once constructed.
type ErrorRecord struct {
	ClassID int64 // error class the frame belongs to
	Major   Major
	Minor   Minor
	Line    uint   // source line inside the native library
	Func    []byte // originating function name
	File    []byte // originating file name
	Desc    []byte // human-readable description
}

// Error is a complete snapshot of the native error stack at the moment a
// call failed, ordered innermost (most specific) frame first. It is
// constructed once per failure and never modified.
type Error struct {
	records []ErrorRecord
}

// Records returns the decoded frames, innermost first.
func (e *Error) Records() []ErrorRecord {
	return slices.Clone(e.records)
}

// Error implements the error interface with a one-line summary of the
// innermost frame.
func (e *Error) Error() string {
	if len(e.records) == 0 {
		return "hdf5: native call failed with an empty error stack"
	}
	r := e.records[0]
	msg := fmt.Sprintf("hdf5: %s (%s / %s)", utils.CString(r.Desc), r.Major, r.Minor)
	if n := len(e.records) - 1; n > 0 {
		msg = fmt.Sprintf("%s; %d more frames", msg, n)
	}
	return msg
}

// Details renders the full stack in the style of the native library's own
// diagnostic printer, one frame per block, innermost first.
func (e *Error) Details() string {
	if len(e.records) == 0 {
		return "HDF5 error stack: empty\n"
	}
	var b strings.Builder
	b.WriteString("HDF5 error stack (innermost first):\n")
	for i, r := range e.records {
		fmt.Fprintf(&b, "  #%03d: %s line %d in %s(): %s\n",
			i, utils.CString(r.File), r.Line, utils.CString(r.Func), utils.CString(r.Desc))
		fmt.Fprintf(&b, "    major: %s\n", r.Major)
		fmt.Fprintf(&b, "    minor: %s\n", r.Minor)
	}
	return b.String()
}
