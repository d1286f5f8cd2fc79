package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Passwords are accepted by the session manager but never kept, so callers
// wipe them as soon as the call returns.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
