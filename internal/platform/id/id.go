// Package id generates identifiers for persisted identity records.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a random (version 4) UUID in canonical lower-case form.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return value.String(), nil
}

// Valid reports whether value is a canonical UUID.
func Valid(value string) bool {
	value = strings.TrimSpace(value)
	parsed, err := uuid.Parse(value)
	if err != nil {
		return false
	}
	return parsed.String() == value
}
