package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	if meta := MetadataFor(CodeValidation); meta.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("validation should map to 400, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(CodeConflict); meta.HTTPStatus != http.StatusConflict {
		t.Fatalf("conflict should map to 409, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(Code("bogus")); meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes should fall back to internal, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("root cause")
	err := Wrap(CodeDependency, cause, "redis unavailable")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped error should expose its cause")
	}
	if As(err).Code() != CodeDependency {
		t.Fatalf("unexpected code %s", As(err).Code())
	}
}

func TestAsThroughWrappedChain(t *testing.T) {
	t.Parallel()

	inner := New(CodeNotFound, "order missing")
	outer := fmt.Errorf("loading order: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected typed error through chain, got %v", typed)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeInternal, stdErrors.New("disk full"), "persist failed")
	dump := Dump(err)

	if dump.Code != CodeInternal {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected full chain, got %v", dump.Chain)
	}
}
