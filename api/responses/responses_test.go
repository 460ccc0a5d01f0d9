package responses

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"github.com/minithai/minithai-backend/pkg/types"
)

func TestWriteSuccessWrapsDataEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if envelope.Data["hello"] != "world" {
		t.Fatalf("payload not wrapped in data envelope: %s", rec.Body.String())
	}
}

func TestWriteErrorUsesCodeMetadata(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code: %s", envelope.Error.Code)
	}
	if envelope.Error.Message != "order not found" {
		t.Fatalf("client-safe message should pass through, got %q", envelope.Error.Message)
	}
}

func TestWriteErrorHidesInternalMessages(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInternal, "db password wrong")
	WriteError(context.Background(), nil, rec, err)

	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if envelope.Error.Message == "db password wrong" {
		t.Fatal("internal messages must not leak to clients")
	}
}

func TestWriteErrorIncludesValidationDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"email": "is required"})
	WriteError(context.Background(), nil, rec, err)

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok || details["email"] != "is required" {
		t.Fatalf("expected details payload, got %v", envelope.Error.Details)
	}
}
