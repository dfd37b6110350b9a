// Package common defines shared constants and sentinel errors used across
// client and shell layers of AgriLink. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Local state errors. ErrStorageCorruption never leaves the state store:
	// a table that fails to decode is read as empty.
	ErrStorageCorruption = errors.New("storage corruption")

	// Account errors.
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthRequired       = errors.New("authentication required")

	// Offline cache errors.
	ErrCacheInstall      = errors.New("cache install failed")
	ErrInvalidTransition = errors.New("invalid worker state transition")
)

// ValidationError lists the offending fields with a short message per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// RedirectError tells the caller to leave the current view for Location.
type RedirectError struct {
	Location string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("%s: redirect to %s", ErrAuthRequired, e.Location)
}

func (e *RedirectError) Unwrap() error { return ErrAuthRequired }
