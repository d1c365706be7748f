// Package utils provides utility functions for the HDF5 error bridge.
package utils

import "bytes"

// CString interprets b as a NUL-terminated native string and returns its
// contents up to the terminator. The native library guarantees no particular
// encoding, so bytes pass through unmodified.
func CString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
