package vm

import "fmt"

// InternalError reports a broken invariant of the compiled tree, such
// as an unknown node kind. The matcher panics with it; it never
// describes a property of the input.
type InternalError struct {
	Node    string // Description of the offending node, if any
	Message string
}

func (e *InternalError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("internal error: %s (node %s)", e.Message, e.Node)
	}
	return "internal error: " + e.Message
}
