// SPDX-License-Identifier: MPL-2.0

package filemode

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is the sentinel error wrapped by ParseError.
var ErrInvalidMode = errors.New("invalid mode")

// ParseError is returned when a mode expression cannot be parsed.
// It wraps ErrInvalidMode for errors.Is() compatibility.
type ParseError struct {
	// Spec is the full expression as given.
	Spec string
	// Offset is the byte offset in Spec where parsing stopped.
	Offset int
	// Reason is a short human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid mode %q: %s (offset %d)", e.Spec, e.Reason, e.Offset)
}

// Unwrap returns ErrInvalidMode so callers can use errors.Is.
func (e *ParseError) Unwrap() error { return ErrInvalidMode }
