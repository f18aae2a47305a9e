// SPDX-License-Identifier: MPL-2.0

package aliasfile

import (
	"errors"
	"fmt"
)

// Violation identifies which structural rule a value broke.
type Violation int

const (
	// ViolationBlank means the value was empty or whitespace-only after trimming.
	ViolationBlank Violation = iota + 1
	// ViolationNulByte means the value contained an embedded NUL byte.
	ViolationNulByte
	// ViolationContainsEquals means a map key contained an `=` character.
	ViolationContainsEquals
	// ViolationPathShape means a path-like value had a disallowed shape
	// (bare dot token, trailing separator, trailing dot component, or a
	// relative form with no real path segment).
	ViolationPathShape
	// ViolationDuplicateKey means two keys collided after trimming.
	ViolationDuplicateKey
	// ViolationUnknownPatchKey means a runtime patch carried a key outside
	// the closed set of recognized patch fields.
	ViolationUnknownPatchKey
	// ViolationNotTrimmed means a stored value carried surrounding
	// whitespace where only the trimmed form is valid.
	ViolationNotTrimmed
)

// ValidationError reports a single structural rule violation, identifying
// the offending field so front ends can produce an actionable message.
type ValidationError struct {
	// Field is the document field path, e.g. "exec" or "reconcile.script".
	Field string
	// Violation is the rule that was broken.
	Violation Violation
	// Detail optionally names the offending key or shape.
	Detail string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("field `%s` %s", e.Field, e.Violation.describe())
	if e.Detail != "" {
		msg += fmt.Sprintf(": `%s`", e.Detail)
	}
	return msg
}

func (v Violation) describe() string {
	switch v {
	case ViolationBlank:
		return "cannot be empty or whitespace-only"
	case ViolationNulByte:
		return "cannot contain NUL bytes"
	case ViolationContainsEquals:
		return "cannot contain `=`"
	case ViolationPathShape:
		return "has an invalid path shape"
	case ViolationDuplicateKey:
		return "contains duplicate keys after trimming"
	case ViolationUnknownPatchKey:
		return "is not a recognized patch key"
	case ViolationNotTrimmed:
		return "cannot include surrounding whitespace"
	default:
		return "is invalid"
	}
}

// ParseError reports a malformed alias document. It wraps the underlying
// decode error and identifies the source path.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid alias document %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
