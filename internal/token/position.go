package token

import "fmt"

// Position represents a position in a pattern source.
// Patterns are single strings, so there is no line number.
type Position struct {
	// Offset is the byte offset from the start of the pattern (0-indexed).
	Offset int
	// Column is the rune column (1-indexed).
	Column int
}

// String returns "column N".
func (p Position) String() string {
	return fmt.Sprintf("column %d", p.Column)
}

// IsValid returns true if the position is valid (column > 0).
func (p Position) IsValid() bool {
	return p.Column > 0
}

// Before returns true if p is before other in the source.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span represents a range in the pattern from Start to End.
type Span struct {
	Start Position
	End   Position
}

// String returns a string representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("columns %d-%d", s.Start.Column, s.End.Column)
}

// Contains returns true if the span contains the given position.
func (s Span) Contains(p Position) bool {
	return !p.Before(s.Start) && !s.End.Before(p)
}

// NoPos is a zero Position used when position is unknown.
var NoPos = Position{}
