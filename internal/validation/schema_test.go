package validation

import (
	"errors"
	"strings"
	"testing"
)

var addressSchema = map[string]any{
	"type":                 "object",
	"required":             []any{"city"},
	"additionalProperties": false,
	"properties": map[string]any{
		"city": map[string]any{"type": "string"},
		"zip":  map[string]any{"type": "string"},
	},
}

func TestValidateSchema(t *testing.T) {
	if err := ValidateSchema(addressSchema); err != nil {
		t.Fatalf("ValidateSchema returned %v", err)
	}
	if err := ValidateSchema(nil); err != nil {
		t.Fatalf("empty schema should pass, got %v", err)
	}

	bad := map[string]any{"type": 12}
	err := ValidateSchema(bad)
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidateDocument(t *testing.T) {
	doc := map[string]any{"city": "Lisbon", "zip": "1100"}
	if err := ValidateDocument(addressSchema, doc); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
}

func TestValidateDocumentCollectsIssues(t *testing.T) {
	doc := map[string]any{"zip": 1100, "country": "PT"}
	err := ValidateDocument(addressSchema, doc)
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	var payloadErr *PayloadValidationError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected PayloadValidationError, got %T", err)
	}
	if len(payloadErr.Issues) == 0 {
		t.Fatal("expected at least one issue")
	}
	if msg := payloadErr.Error(); !strings.Contains(msg, "#") {
		t.Fatalf("expected issue locations in message, got %q", msg)
	}

	if got := Issues(err); len(got) != len(payloadErr.Issues) {
		t.Fatalf("Issues returned %d entries, want %d", len(got), len(payloadErr.Issues))
	}
}

func TestValidateDocumentRoundTripsTypedValues(t *testing.T) {
	type address struct {
		City string `json:"city"`
		Zip  string `json:"zip,omitempty"`
	}
	if err := ValidateDocument(addressSchema, address{City: "Porto"}); err != nil {
		t.Fatalf("typed document rejected: %v", err)
	}
}

func TestIssuesOnPlainError(t *testing.T) {
	got := Issues(errors.New("boom"))
	if len(got) != 1 || got[0].Message != "boom" {
		t.Fatalf("unexpected issues %v", got)
	}
	if Issues(nil) != nil {
		t.Fatal("nil error should yield nil issues")
	}
}
