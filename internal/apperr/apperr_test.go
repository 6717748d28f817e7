package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew_StatusCategory(t *testing.T) {
	for code := 400; code <= 499; code++ {
		if got := New("x", code).Status; got != StatusFail {
			t.Fatalf("code %d: expected %q, got %q", code, StatusFail, got)
		}
	}
	for code := 500; code <= 599; code++ {
		if got := New("x", code).Status; got != StatusError {
			t.Fatalf("code %d: expected %q, got %q", code, StatusError, got)
		}
	}
}

func TestNew_Operational(t *testing.T) {
	e := New("conflict", http.StatusConflict)
	if !e.IsOperational {
		t.Fatal("New must produce operational errors")
	}
	if e.Error() != "conflict" {
		t.Fatalf("unexpected message %q", e.Error())
	}
}

func TestNewValidation(t *testing.T) {
	fields := []FieldError{{Path: "email", Message: "must be a valid email"}}
	e := NewValidation("validation failed", fields)
	if e.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", e.StatusCode)
	}
	if len(e.FieldErrors) != 1 || e.FieldErrors[0].Path != "email" {
		t.Fatalf("field errors not carried: %+v", e.FieldErrors)
	}
}

func TestInternal_NotOperational(t *testing.T) {
	cause := errors.New("driver exploded")
	e := Internal("operation failed", cause)
	if e.IsOperational {
		t.Fatal("Internal must not be operational")
	}
	if e.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", e.StatusCode)
	}
	if !errors.Is(e, cause) {
		t.Fatal("cause should be reachable via errors.Is")
	}
}

func TestFrom_PassThrough(t *testing.T) {
	orig := New("patient not found", http.StatusNotFound)
	got := From(orig)
	if got != orig {
		t.Fatal("From must not re-wrap an existing *Error")
	}
	if got.Message != "patient not found" || got.StatusCode != http.StatusNotFound {
		t.Fatalf("fields mutated: %+v", got)
	}
}

func TestFrom_WrapsUnknown(t *testing.T) {
	err := fmt.Errorf("no such column: foo")
	got := From(err)
	if got.IsOperational {
		t.Fatal("unknown errors must be non-operational")
	}
	if got.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", got.StatusCode)
	}
	if got.Message != "no such column: foo" {
		t.Fatalf("original message should be retained for logs, got %q", got.Message)
	}
}

func TestFrom_Nil(t *testing.T) {
	if From(nil) != nil {
		t.Fatal("From(nil) must be nil")
	}
}

func TestWithCause_CopiesVisibleFields(t *testing.T) {
	e := New("area already exists", http.StatusConflict)
	cause := errors.New("UNIQUE constraint failed: medical_areas.name")
	e2 := e.WithCause(cause)
	if e2 == e {
		t.Fatal("WithCause must return a copy")
	}
	if e2.Message != e.Message || e2.StatusCode != e.StatusCode || !e2.IsOperational {
		t.Fatalf("visible fields changed: %+v", e2)
	}
	if !errors.Is(e2, cause) {
		t.Fatal("cause not recorded")
	}
}
