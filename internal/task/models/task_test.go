package models

import "testing"

func TestTagListRoundTrip(t *testing.T) {
	tags := TagList{"go", "backend", "deep-work"}
	decoded := DecodeTagList(tags.Encode())
	if len(decoded) != len(tags) {
		t.Fatalf("expected %d tags, got %d", len(tags), len(decoded))
	}
	for i := range tags {
		if decoded[i] != tags[i] {
			t.Errorf("tag %d: expected %q, got %q", i, tags[i], decoded[i])
		}
	}
}

func TestTagListEncodeNil(t *testing.T) {
	var tags TagList
	if got := tags.Encode(); got != "[]" {
		t.Errorf("expected nil list to encode as [], got %q", got)
	}
}

func TestDecodeTagListCorrupt(t *testing.T) {
	for _, raw := range []string{"", "not json", "{\"a\":1}", "null", "[1,2"} {
		decoded := DecodeTagList(raw)
		if decoded == nil {
			t.Errorf("DecodeTagList(%q) returned nil", raw)
		}
		if len(decoded) != 0 {
			t.Errorf("DecodeTagList(%q) = %v, expected empty list", raw, decoded)
		}
	}
}
