package hdf5c

import (
	"fmt"

	"github.com/scigolib/hdf5c/internal/native"
)

// ErrorClass identifies a named group of related error codes: either the
// library's built-in class or one registered by the caller. A registered
// class is owned by whoever registered it and is released with
// UnregisterClass.
type ErrorClass struct {
	id native.Hid
}

// IsError implements Result; an invalid handle marks a failed registration.
func (c ErrorClass) IsError() bool { return c.id < 0 }

// ID returns the raw native identifier of the class.
func (c ErrorClass) ID() int64 { return int64(c.id) }

// BuiltinClass returns the library's built-in error class.
func BuiltinClass() ErrorClass {
	return ErrorClass{id: native.Active().Builtins().ErrClass}
}

// RegisterClass registers a new error class. The name, owning library name,
// and version are opaque byte strings passed to the native library without
// validation.
func RegisterClass(name, libName, version []byte) (ErrorClass, error) {
	return Check(func() ErrorClass {
		return ErrorClass{id: native.Active().RegisterClass(name, libName, version)}
	})
}

// UnregisterClass removes a caller-registered error class. The caller must
// have released all major and minor codes created under the class first; the
// native library's lifecycle rules govern the ordering.
func UnregisterClass(cls ErrorClass) error {
	return Do(func() Status {
		return Status(native.Active().UnregisterClass(cls.id))
	})
}

// NewMajor registers a new major error code under cls. The returned code has
// the Unknown kind and carries the native identifier; it is caller-owned and
// released with ReleaseMajor.
func NewMajor(cls ErrorClass, msg []byte) (Major, error) {
	id, err := Check(func() msgID {
		return msgID(native.Active().CreateMessage(cls.id, native.SeverityMajor, msg))
	})
	if err != nil {
		return Major{}, err
	}
	return Major{Kind: MajorUnknown, Num: int64(id)}, nil
}

// NewMinor registers a new minor error code under cls, with the same
// ownership rules as NewMajor.
func NewMinor(cls ErrorClass, msg []byte) (Minor, error) {
	id, err := Check(func() msgID {
		return msgID(native.Active().CreateMessage(cls.id, native.SeverityMinor, msg))
	})
	if err != nil {
		return Minor{}, err
	}
	return Minor{Kind: MinorUnknown, Num: int64(id)}, nil
}

// ReleaseMajor releases a caller-created major code. Built-in codes are
// library constants: releasing one fails immediately with ErrBuiltinCode,
// without touching the native library. Releasing the same custom code twice
// is a caller error surfaced by the native double-release contract.
func ReleaseMajor(m Major) error {
	if m.Kind != MajorUnknown {
		return fmt.Errorf("%w: %q is library-owned", ErrBuiltinCode, m.Kind)
	}
	return Do(func() Status {
		return Status(native.Active().CloseMessage(native.Hid(m.Num)))
	})
}

// ReleaseMinor releases a caller-created minor code, with the same rules as
// ReleaseMajor.
func ReleaseMinor(m Minor) error {
	if m.Kind != MinorUnknown {
		return fmt.Errorf("%w: %q is library-owned", ErrBuiltinCode, m.Kind)
	}
	return Do(func() Status {
		return Status(native.Active().CloseMessage(native.Hid(m.Num)))
	})
}
