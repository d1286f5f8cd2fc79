// Package models defines the inspection record, account and status types
// persisted by FleetCheck.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Status is the inspection verdict for a single checklist item.
// The zero value means the item has not been inspected yet.
type Status string

const (
	StatusUnset   Status = ""
	StatusOK      Status = "ok"
	StatusRegular Status = "regular"
	StatusBad     Status = "bad"
)

// legacyBad is the spelling older collections use for StatusBad.
const legacyBad = "ruim"

var ErrInvalidStatus = errors.New("invalid status")

// ParseStatus accepts "ok", "regular", "bad" (or "ruim"), and "", "-" or
// "null" for unset.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "", "-", "null":
		return StatusUnset, nil
	case string(StatusOK), string(StatusRegular), string(StatusBad):
		return Status(s), nil
	case legacyBad:
		return StatusBad, nil
	}
	return StatusUnset, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsSet reports whether the item has been inspected.
func (s Status) IsSet() bool { return s != StatusUnset }

func (s Status) Valid() bool {
	switch s {
	case StatusUnset, StatusOK, StatusRegular, StatusBad:
		return true
	}
	return false
}

func (s Status) String() string {
	if s == StatusUnset {
		return "unset"
	}
	return string(s)
}

// MarshalJSON encodes unset as null.
func (s Status) MarshalJSON() ([]byte, error) {
	if s == StatusUnset {
		return []byte("null"), nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return json.Marshal(string(s))
}

func (s *Status) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = StatusUnset
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	if raw == "" {
		return fmt.Errorf("%w: empty string", ErrInvalidStatus)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
