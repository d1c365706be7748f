package hdf5c

import (
	"fmt"

	"github.com/scigolib/hdf5c/internal/native"
)

// MajorKind names a recognized built-in major error code: the kind of
// operation that failed. MajorUnknown covers caller-registered codes and any
// built-in code this bridge does not recognize.
type MajorKind uint8

// Recognized major error codes.
const (
	MajorUnknown MajorKind = iota
	MajorArgs
	MajorResource
	MajorIO
	MajorFile
	MajorDataset
	MajorDataspace
	MajorDatatype
	MajorAttribute
	MajorGroup
	MajorLink
	MajorSymbolTable
	MajorHeap
	MajorBtree
	MajorCache
	MajorPlist
	MajorStorage
	MajorInternal
)

// String returns the library's message text for the code.
func (k MajorKind) String() string {
	switch k {
	case MajorArgs:
		return "Invalid arguments to routine"
	case MajorResource:
		return "Resource unavailable"
	case MajorIO:
		return "Low-level I/O"
	case MajorFile:
		return "File accessibility"
	case MajorDataset:
		return "Dataset"
	case MajorDataspace:
		return "Dataspace"
	case MajorDatatype:
		return "Datatype"
	case MajorAttribute:
		return "Attribute"
	case MajorGroup:
		return "Symbol table"
	case MajorLink:
		return "Links"
	case MajorSymbolTable:
		return "Symbol table node"
	case MajorHeap:
		return "Heap"
	case MajorBtree:
		return "B-Tree node"
	case MajorCache:
		return "Object cache"
	case MajorPlist:
		return "Property lists"
	case MajorStorage:
		return "Data storage"
	case MajorInternal:
		return "Internal error"
	default:
		return "Unknown major code"
	}
}

// MinorKind names a recognized built-in minor error code: why the operation
// failed. MinorUnknown covers caller-registered and unrecognized codes.
type MinorKind uint8

// Recognized minor error codes.
const (
	MinorUnknown MinorKind = iota
	MinorCantOpen
	MinorCantClose
	MinorCantInit
	MinorCantAlloc
	MinorCantFree
	MinorCantGet
	MinorCantSet
	MinorCantRegister
	MinorReadError
	MinorWriteError
	MinorSeekError
	MinorBadValue
	MinorBadType
	MinorBadRange
	MinorBadID
	MinorNotFound
	MinorAlreadyExists
	MinorUnsupported
)

// String returns the library's message text for the code.
func (k MinorKind) String() string {
	switch k {
	case MinorCantOpen:
		return "Can't open object"
	case MinorCantClose:
		return "Can't close object"
	case MinorCantInit:
		return "Unable to initialize object"
	case MinorCantAlloc:
		return "Can't allocate space"
	case MinorCantFree:
		return "Unable to free object"
	case MinorCantGet:
		return "Can't get value"
	case MinorCantSet:
		return "Can't set value"
	case MinorCantRegister:
		return "Unable to register new ID"
	case MinorReadError:
		return "Read failed"
	case MinorWriteError:
		return "Write failed"
	case MinorSeekError:
		return "Seek failed"
	case MinorBadValue:
		return "Bad value"
	case MinorBadType:
		return "Inappropriate type"
	case MinorBadRange:
		return "Out of range"
	case MinorBadID:
		return "Unable to find ID information"
	case MinorNotFound:
		return "Object not found"
	case MinorAlreadyExists:
		return "Object already exists"
	case MinorUnsupported:
		return "Feature is unsupported"
	default:
		return "Unknown minor code"
	}
}

// Major is one major error code: either a recognized built-in kind or, for
// MajorUnknown, an opaque code identified only by its raw number. Num always
// carries the raw native identifier.
type Major struct {
	Kind MajorKind
	Num  int64
}

// String implements fmt.Stringer.
func (m Major) String() string {
	if m.Kind == MajorUnknown {
		return fmt.Sprintf("major code %d", m.Num)
	}
	return m.Kind.String()
}

// Minor is one minor error code, structured like Major.
type Minor struct {
	Kind MinorKind
	Num  int64
}

// String implements fmt.Stringer.
func (m Minor) String() string {
	if m.Kind == MinorUnknown {
		return fmt.Sprintf("minor code %d", m.Num)
	}
	return m.Kind.String()
}

// codeTables maps the library's runtime-assigned identifiers to recognized
// kinds. Built once per stack drain from the native built-in globals.
type codeTables struct {
	majors map[native.Hid]MajorKind
	minors map[native.Hid]MinorKind
}

func lookupTables(lib native.Lib) codeTables {
	b := lib.Builtins()
	return codeTables{
		majors: map[native.Hid]MajorKind{
			b.MajArgs:        MajorArgs,
			b.MajResource:    MajorResource,
			b.MajIO:          MajorIO,
			b.MajFile:        MajorFile,
			b.MajDataset:     MajorDataset,
			b.MajDataspace:   MajorDataspace,
			b.MajDatatype:    MajorDatatype,
			b.MajAttribute:   MajorAttribute,
			b.MajGroup:       MajorGroup,
			b.MajLink:        MajorLink,
			b.MajSymbolTable: MajorSymbolTable,
			b.MajHeap:        MajorHeap,
			b.MajBtree:       MajorBtree,
			b.MajCache:       MajorCache,
			b.MajPlist:       MajorPlist,
			b.MajStorage:     MajorStorage,
			b.MajInternal:    MajorInternal,
		},
		minors: map[native.Hid]MinorKind{
			b.MinCantOpen:      MinorCantOpen,
			b.MinCantClose:     MinorCantClose,
			b.MinCantInit:      MinorCantInit,
			b.MinCantAlloc:     MinorCantAlloc,
			b.MinCantFree:      MinorCantFree,
			b.MinCantGet:       MinorCantGet,
			b.MinCantSet:       MinorCantSet,
			b.MinCantRegister:  MinorCantRegister,
			b.MinReadError:     MinorReadError,
			b.MinWriteError:    MinorWriteError,
			b.MinSeekError:     MinorSeekError,
			b.MinBadValue:      MinorBadValue,
			b.MinBadType:       MinorBadType,
			b.MinBadRange:      MinorBadRange,
			b.MinBadID:         MinorBadID,
			b.MinNotFound:      MinorNotFound,
			b.MinAlreadyExists: MinorAlreadyExists,
			b.MinUnsupported:   MinorUnsupported,
		},
	}
}
