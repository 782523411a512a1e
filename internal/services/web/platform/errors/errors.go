// Package errors defines the typed failures web modules report through
// weberror, and the status each one maps to.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind names a failure class a module can report.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindMethodNotAllowed Kind = "method_not_allowed"
	KindUnavailable      Kind = "unavailable"
)

// Error carries a kind, the catalog key of its public message, and an
// internal message that is never shown to visitors.
type Error struct {
	Kind    Kind
	Key     string
	Message string
}

func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// EK builds an Error whose public message is the catalog entry for key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// LocalizationKey returns the catalog key attached to err, if any.
func LocalizationKey(err error) string {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return ""
	}
	return appErr.Key
}

// HTTPStatus maps err to a response status. Anything untyped is a 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
