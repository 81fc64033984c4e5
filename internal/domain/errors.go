package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrDataIntegrity = errors.New("data integrity error")
	ErrIO            = errors.New("io error")
	ErrNotFound      = errors.New("not found")
)

// Violation describes one failed dataset check.
type Violation struct {
	Split Split
	Field string
	Want  string
	Got   string
}

func (v Violation) String() string {
	var b strings.Builder
	if v.Split != "" {
		b.WriteString(string(v.Split))
		b.WriteByte('.')
	}
	b.WriteString(v.Field)
	fmt.Fprintf(&b, ": want %s, got %s", v.Want, v.Got)
	return b.String()
}

// IntegrityError contains every violation found by a dataset check.
type IntegrityError struct {
	Violations []Violation
}

func (e *IntegrityError) Error() string {
	if len(e.Violations) == 1 {
		return "data integrity: " + e.Violations[0].String()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("data integrity: %d violations: %s", len(e.Violations), strings.Join(parts, "; "))
}

func (e *IntegrityError) Unwrap() error { return ErrDataIntegrity }

// NewIntegrityError creates an IntegrityError for a single violation.
func NewIntegrityError(split Split, field, want, got string) *IntegrityError {
	return &IntegrityError{
		Violations: []Violation{{Split: split, Field: field, Want: want, Got: got}},
	}
}
