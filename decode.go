package hdf5c

import (
	"bytes"

	"github.com/scigolib/hdf5c/internal/native"
)

// decodeEntry converts one native stack frame into an owned ErrorRecord.
// The entry's byte fields alias native buffers that do not survive past the
// walk callback, so they are copied here. Major and minor numbers are mapped
// through the built-in code tables; an unmapped number is not an error, it
// simply yields the Unknown kind with the raw number preserved.
func decodeEntry(e *native.Entry, tabs codeTables) ErrorRecord {
	return ErrorRecord{
		ClassID: int64(e.ClassID),
		Major:   Major{Kind: tabs.majors[e.MajNum], Num: int64(e.MajNum)},
		Minor:   Minor{Kind: tabs.minors[e.MinNum], Num: int64(e.MinNum)},
		Line:    e.Line,
		Func:    bytes.Clone(e.FuncName),
		File:    bytes.Clone(e.FileName),
		Desc:    bytes.Clone(e.Desc),
	}
}
