package ast

import (
	"slices"
	"strings"
)

// ClassFunc reports whether r belongs to the meta-class named by letter.
type ClassFunc func(letter, r rune) bool

// CharSet is a chainable set of runes. Each link owns explicit members
// and at most one embedded meta-class; the chain is the union of its
// links. Negation always applies to the whole chain.
type CharSet struct {
	meta    rune // Class letter, 0 if none
	members []rune
	negated bool
	next    *CharSet
}

// NewCharSet returns an empty set.
func NewCharSet() *CharSet {
	return &CharSet{}
}

// Mark adds r as an explicit member.
func (s *CharSet) Mark(r rune) *CharSet {
	if !slices.Contains(s.members, r) {
		s.members = append(s.members, r)
	}
	return s
}

// Meta embeds the meta-class named by letter. A link holds one class,
// so further classes extend the chain.
func (s *CharSet) Meta(letter rune) *CharSet {
	link := s
	for link.meta != 0 && link.meta != letter {
		if link.next == nil {
			link.next = &CharSet{negated: s.negated}
		}
		link = link.next
	}
	link.meta = letter
	return s
}

// Chain appends other to the end of the chain. The chain's negation is
// imposed on the appended links.
func (s *CharSet) Chain(other *CharSet) *CharSet {
	link := s
	for link.next != nil {
		link = link.next
	}
	link.next = other
	s.Negate(s.negated)
	return s
}

// Negate sets the negation flag on every link of the chain.
func (s *CharSet) Negate(flag bool) {
	for link := s; link != nil; link = link.next {
		link.negated = flag
	}
}

// Negated reports whether the set is negated.
func (s *CharSet) Negated() bool {
	return s.negated
}

// Matches reports whether r is a member of the set. class evaluates
// embedded meta-classes and may be nil when the set has none.
func (s *CharSet) Matches(r rune, class ClassFunc) bool {
	for link := s; link != nil; link = link.next {
		if link.meta != 0 && class != nil && class(link.meta, r) {
			return !link.negated
		}
		if slices.Contains(link.members, r) {
			return !link.negated
		}
	}
	return s.negated
}

// Members returns the explicit members across the chain.
func (s *CharSet) Members() []rune {
	var out []rune
	for link := s; link != nil; link = link.next {
		out = append(out, link.members...)
	}
	return out
}

// Classes returns the embedded class letters across the chain.
func (s *CharSet) Classes() []rune {
	var out []rune
	for link := s; link != nil; link = link.next {
		if link.meta != 0 {
			out = append(out, link.meta)
		}
	}
	return out
}

// String renders the set in pattern syntax.
func (s *CharSet) String() string {
	if s == nil {
		return "<>"
	}
	var sb strings.Builder
	sb.WriteByte('<')
	if s.negated {
		sb.WriteByte('^')
	}
	for _, c := range s.Classes() {
		sb.WriteByte('$')
		sb.WriteRune(c)
	}
	for i, r := range s.Members() {
		switch {
		case r == '$' || r == '>':
			sb.WriteByte('$')
		case r == '^' && i == 0 && !s.negated && len(s.Classes()) == 0:
			sb.WriteByte('$')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('>')
	return sb.String()
}
