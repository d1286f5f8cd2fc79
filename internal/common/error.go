// Package common defines shared constants and sentinel errors used across
// the FleetCheck layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Storage errors: a key-value backend write (or a read on a mutation
	// path) failed.
	ErrStorage = errors.New("storage error")

	// Account registry errors.
	ErrDuplicateAccount = errors.New("account already exists")
	ErrAccountNotFound  = errors.New("account not found")
	ErrUnauthenticated  = errors.New("not signed in")

	// Session credential errors. ErrDecode never leaves the session
	// package: decoding reports failure with ok=false instead.
	ErrDecode = errors.New("malformed session credential")

	// Validation errors for user-supplied checklist data.
	ErrValidation = errors.New("validation error")
)
