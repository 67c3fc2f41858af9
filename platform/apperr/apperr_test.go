package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	if got := NotFound("x").HTTPStatus(); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
	if got := Validation("x").HTTPStatus(); got != http.StatusBadRequest {
		t.Fatalf("expected 400 for validation, got %d", got)
	}
	if got := Execution("x", nil).HTTPStatus(); got != http.StatusBadGateway {
		t.Fatalf("expected 502 for execution, got %d", got)
	}
	if got := New(KindUnknown, "x").HTTPStatus(); got != http.StatusBadRequest {
		t.Fatalf("expected 400 fallback, got %d", got)
	}
}

func TestExecutionWrapsOriginal(t *testing.T) {
	cause := errors.New("permission denied on field Industry")
	err := Execution("query execution failed", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if GetKind(err) != KindExecution {
		t.Fatalf("expected execution kind, got %v", GetKind(err))
	}
}

func TestErrorIncludesOp(t *testing.T) {
	err := Validation("entity type is required").WithOp("lookup.Search")
	if err.Error() != "lookup.Search: entity type is required" {
		t.Fatalf("unexpected error string: %q", err.Error())
	}
}
