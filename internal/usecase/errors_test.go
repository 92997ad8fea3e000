package usecase

import (
	"errors"
	"testing"
)

func TestErrorHelpers(t *testing.T) {
	err := notFound("tournament", "osuwc")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "not found: tournament=osuwc" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	cause := errors.New("slug is required")
	err = invalid(cause)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err.Error() != "invalid input: slug is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
