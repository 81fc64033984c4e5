package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIntegrityError_SingleViolation(t *testing.T) {
	t.Parallel()

	err := NewIntegrityError(SplitTrain, "count", "85136", "85135")

	if got := err.Error(); got != "data integrity: train.count: want 85136, got 85135" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrDataIntegrity) {
		t.Fatal("errors.Is(err, ErrDataIntegrity) = false")
	}
}

func TestIntegrityError_MultipleViolations(t *testing.T) {
	t.Parallel()

	err := &IntegrityError{Violations: []Violation{
		{Split: SplitDev, Field: "last_word", Want: `"dissolve"`, Got: `"melt"`},
		{Field: "partition_total", Want: "10", Got: "9"},
	}}

	got := err.Error()
	if !strings.HasPrefix(got, "data integrity: 2 violations: ") {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !strings.Contains(got, `dev.last_word: want "dissolve", got "melt"`) {
		t.Errorf("missing split violation in %q", got)
	}
	if !strings.Contains(got, "partition_total: want 10, got 9") {
		t.Errorf("missing split-less violation in %q", got)
	}
}

func TestIntegrityError_WrappedStillMatches(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("check train: %w", NewIntegrityError(SplitTrain, "first_word", "a", "b"))

	if !errors.Is(wrapped, ErrDataIntegrity) {
		t.Fatal("wrapped error should match ErrDataIntegrity")
	}
	var ie *IntegrityError
	if !errors.As(wrapped, &ie) {
		t.Fatal("errors.As should find *IntegrityError")
	}
	if ie.Violations[0].Field != "first_word" {
		t.Errorf("field: got %q", ie.Violations[0].Field)
	}
	if errors.Is(wrapped, ErrIO) {
		t.Error("integrity error must not match ErrIO")
	}
}
