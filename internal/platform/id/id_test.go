package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewIDFormat(t *testing.T) {
	value, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(value) != 36 {
		t.Fatalf("expected 36-character id, got %d", len(value))
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("version = %d, want 4", parsed.Version())
	}
	if parsed.Variant() != uuid.RFC4122 {
		t.Fatalf("variant = %v, want %v", parsed.Variant(), uuid.RFC4122)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{}, 64)
	for i := 0; i < 64; i++ {
		value, err := NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if _, ok := seen[value]; ok {
			t.Fatalf("duplicate id %q", value)
		}
		seen[value] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "3f0c9a7e-8c1b-4f3e-9a51-2d3c4b5a6f70", want: true},
		{value: "3F0C9A7E-8C1B-4F3E-9A51-2D3C4B5A6F70", want: false},
		{value: "user-1", want: false},
		{value: "", want: false},
	}
	for _, tc := range tests {
		if got := Valid(tc.value); got != tc.want {
			t.Fatalf("Valid(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
