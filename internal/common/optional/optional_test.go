package optional

import (
	"encoding/json"
	"testing"
)

func TestFieldAbsent(t *testing.T) {
	var payload struct {
		Description Field[string] `json:"description"`
	}
	if err := json.Unmarshal([]byte(`{}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Description.IsSet() {
		t.Error("expected absent field to report IsSet() == false")
	}
	if payload.Description.IsNull() {
		t.Error("expected absent field to report IsNull() == false")
	}
}

func TestFieldNull(t *testing.T) {
	var payload struct {
		Description Field[string] `json:"description"`
	}
	if err := json.Unmarshal([]byte(`{"description": null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.Description.IsSet() {
		t.Error("expected null field to report IsSet() == true")
	}
	if !payload.Description.IsNull() {
		t.Error("expected null field to report IsNull() == true")
	}
	if _, ok := payload.Description.Value(); ok {
		t.Error("expected null field to have no value")
	}
}

func TestFieldValue(t *testing.T) {
	var payload struct {
		Description Field[string]   `json:"description"`
		Tags        Field[[]string] `json:"tags"`
	}
	if err := json.Unmarshal([]byte(`{"description": "write tests", "tags": ["go", "api"]}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	v, ok := payload.Description.Value()
	if !ok || v != "write tests" {
		t.Errorf("expected value %q, got %q (present=%v)", "write tests", v, ok)
	}
	tags, ok := payload.Tags.Value()
	if !ok || len(tags) != 2 || tags[0] != "go" || tags[1] != "api" {
		t.Errorf("unexpected tags value: %v (present=%v)", tags, ok)
	}
}

func TestFieldInvalidValue(t *testing.T) {
	var payload struct {
		Count Field[int] `json:"count"`
	}
	if err := json.Unmarshal([]byte(`{"count": "nope"}`), &payload); err == nil {
		t.Error("expected type mismatch to return an error")
	}
}
