package upat

import (
	"github.com/kolkov/upat/internal/types"
	"github.com/kolkov/upat/internal/vm"
)

// Groups receives the capture groups of a match. Pass a *Groups to a
// match method to collect captures; the method resets it first. Groups
// are numbered from 0 in the order their closing parenthesis was
// reached, so a nested group precedes the group enclosing it.
//
// A Groups value must not be shared by concurrent match calls.
type Groups struct {
	caps vm.Captures
}

// captures resets g and returns its accumulator; nil if g is nil.
func (g *Groups) captures() *vm.Captures {
	if g == nil {
		return nil
	}
	g.caps.Reset()
	return &g.caps
}

// Len returns the number of captured groups.
func (g *Groups) Len() int {
	if g == nil {
		return 0
	}
	return g.caps.Len()
}

// Get returns the raw text of group i.
func (g *Groups) Get(i int) (string, error) {
	if i < 0 || i >= g.Len() {
		return "", &GroupAccessError{Index: i, Len: g.Len()}
	}
	return g.caps.Get(i), nil
}

// Text returns the text of group i, or "" if i is out of range.
func (g *Groups) Text(i int) string {
	s, _ := g.Get(i)
	return s
}

// Int parses group i as an integer.
func (g *Groups) Int(i int) (int64, error) {
	s, err := g.Get(i)
	if err != nil {
		return 0, err
	}
	n, err := types.ParseInt(s)
	if err != nil {
		return 0, &ConversionError{Index: i, Text: s, Type: "integer", Err: err}
	}
	return n, nil
}

// Float parses group i as a real number.
func (g *Groups) Float(i int) (float64, error) {
	s, err := g.Get(i)
	if err != nil {
		return 0, err
	}
	n, err := types.ParseReal(s)
	if err != nil {
		return 0, &ConversionError{Index: i, Text: s, Type: "real", Err: err}
	}
	return n, nil
}

// Slice returns a copy of all captured groups.
func (g *Groups) Slice() []string {
	if g == nil {
		return nil
	}
	return g.caps.Groups()
}
