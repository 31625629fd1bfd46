package upat

import (
	"errors"
	"fmt"
)

// Error kind tags reported by Kind methods.
const (
	KindSyntax     = "syntax-error"
	KindGroup      = "group-error"
	KindConversion = "conversion-error"
	KindInternal   = "internal-error"
)

// SyntaxError represents an invalid pattern.
type SyntaxError struct {
	Pattern string // Pattern source
	Offset  int    // 0-based byte offset of the offending construct
	Column  int    // 1-based rune column
	Message string // Error description
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in pattern %q at column %d: %s", e.Pattern, e.Column, e.Message)
}

// Kind returns "syntax-error".
func (e *SyntaxError) Kind() string { return KindSyntax }

// GroupAccessError represents a capture index out of range.
type GroupAccessError struct {
	Index int // Requested group
	Len   int // Number of captured groups
}

func (e *GroupAccessError) Error() string {
	return fmt.Sprintf("group %d out of range (%d captured)", e.Index, e.Len)
}

// Kind returns "group-error".
func (e *GroupAccessError) Kind() string { return KindGroup }

// ConversionError represents captured text that is not a number of the
// requested type.
type ConversionError struct {
	Index int    // Group index
	Text  string // Captured text
	Type  string // "integer" or "real"
	Err   error  // Underlying *strconv.NumError
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("group %d: cannot convert %q to %s", e.Index, e.Text, e.Type)
}

// Kind returns "conversion-error".
func (e *ConversionError) Kind() string { return KindConversion }

func (e *ConversionError) Unwrap() error { return e.Err }

// InternalError is the panic value raised when a compiled pattern is
// found to be inconsistent during matching. It signals a defect, never
// a property of the input.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return e.Message }

// Kind returns "internal-error".
func (e *InternalError) Kind() string { return KindInternal }

// ErrorKind returns the kind tag of err, or "" if err carries none.
func ErrorKind(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
