package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound(t *testing.T) {
	for _, err := range []error{ErrTicketNotFound, ErrCategoryNotFound, ErrUserNotFound, ErrCommentNotFound, ErrFaqNotFound} {
		if !NotFound(err) {
			t.Fatalf("NotFound(%v) = false", err)
		}
		if !NotFound(fmt.Errorf("wrapped: %w", err)) {
			t.Fatalf("NotFound(wrapped %v) = false", err)
		}
	}
	if NotFound(ErrPermissionDenied) {
		t.Fatal("NotFound(ErrPermissionDenied) = true")
	}
}

func TestConflictError(t *testing.T) {
	err := &ConflictError{Resource: "category", Blocker: "tickets", Count: 3}
	if !IsConflict(err) {
		t.Fatal("IsConflict = false")
	}
	if !IsConflict(fmt.Errorf("delete: %w", err)) {
		t.Fatal("IsConflict(wrapped) = false")
	}
	if IsConflict(errors.New("plain")) {
		t.Fatal("IsConflict(plain) = true")
	}
	want := "category cannot be deleted: 3 referencing tickets"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}
