package hdf5c

// Result is implemented by every native result encoding the bridge can
// classify. The native library signals failure differently per return type:
// identifier-producing calls return an invalid-handle sentinel, status calls
// return a negative code, and tri-state calls reserve negative values for
// failure. Classification is an explicit per-type predicate, resolved
// statically at the call site.
type Result interface {
	IsError() bool
}

// Status is a native status code (herr_t). Negative values indicate failure.
type Status int32

// IsError implements Result.
func (s Status) IsError() bool { return s < 0 }

// Tri is a native tri-state result (htri_t): strictly positive is true, zero
// is false, and negative is failure. Failure is a distinct encoding, not
// merely falsy.
type Tri int32

// IsError implements Result.
func (t Tri) IsError() bool { return t < 0 }

// msgID classifies identifier-returning message-registration calls.
type msgID int64

// IsError implements Result.
func (m msgID) IsError() bool { return m < 0 }
