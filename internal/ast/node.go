// Package ast defines the compiled tree of a upat pattern.
//
// A pattern compiles to a chain of nodes linked through Next. Each node
// carries one Kind (what it matches) and one Quant tag (how it is
// applied):
//
//	Node
//	├── Literal, Meta, Set   - consume exactly one rune
//	├── Block                - nested sub-tree from [...]
//	├── GroupStart, GroupEnd - capture markers, always tagged Control
//	└── Operand              - alternation, tagged Alternation,
//	                           with Primary and Secondary branches
//
// The tree is immutable once the parser has verified it, so a single
// root may be shared by any number of concurrent matchers.
package ast

import (
	"fmt"
	"strings"

	"github.com/kolkov/upat/internal/token"
)

// Kind identifies what a node matches.
type Kind uint8

const (
	KindLiteral    Kind = iota // Single literal rune
	KindMeta                   // Meta-class reference ($c)
	KindSet                    // Character set (<...>)
	KindBlock                  // Nested sub-pattern ([...])
	KindGroupStart             // Capture start marker
	KindGroupEnd               // Capture end marker
	KindOperand                // Alternation operand holder
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindMeta:
		return "meta"
	case KindSet:
		return "set"
	case KindBlock:
		return "block"
	case KindGroupStart:
		return "group-start"
	case KindGroupEnd:
		return "group-end"
	case KindOperand:
		return "operand"
	default:
		return "unknown"
	}
}

// Quant is the quantifier or structural tag attached to a node.
// A node carries exactly one.
type Quant uint8

const (
	QuantNone        Quant = iota // Match once
	QuantPlus                     // One or more, greedy
	QuantStar                     // Zero or more, greedy
	QuantOptional                 // Zero or one
	QuantAlternation              // Primary or Secondary branch
	QuantControl                  // Group marker, consumes nothing
)

// String returns the pattern spelling of the tag.
func (q Quant) String() string {
	switch q {
	case QuantNone:
		return ""
	case QuantPlus:
		return "+"
	case QuantStar:
		return "*"
	case QuantOptional:
		return "?"
	case QuantAlternation:
		return "|"
	case QuantControl:
		return "control"
	default:
		return "unknown"
	}
}

// Node is one unit of a compiled pattern.
type Node struct {
	Kind  Kind
	Quant Quant

	Rune  rune     // Literal rune, or class letter for KindMeta
	Set   *CharSet // KindSet only
	Inner *Node    // KindBlock only; nil for an empty block

	// Next continues the sequence. On an alternation node it is the
	// continuation shared by both branches.
	Next *Node

	// Branches of an alternation node.
	Primary   *Node
	Secondary *Node

	Pos token.Position // Position of the construct in the pattern
}

// NewLiteral returns a literal node for r.
func NewLiteral(r rune, pos token.Position) *Node {
	return &Node{Kind: KindLiteral, Rune: r, Pos: pos}
}

// NewMeta returns a meta-class node for class letter c.
func NewMeta(c rune, pos token.Position) *Node {
	return &Node{Kind: KindMeta, Rune: c, Pos: pos}
}

// NewSet returns a character set node owning set.
func NewSet(set *CharSet, pos token.Position) *Node {
	return &Node{Kind: KindSet, Set: set, Pos: pos}
}

// NewBlock returns a block node owning the inner tree.
func NewBlock(inner *Node, pos token.Position) *Node {
	return &Node{Kind: KindBlock, Inner: inner, Pos: pos}
}

// NewGroupStart returns a capture start marker.
func NewGroupStart(pos token.Position) *Node {
	return &Node{Kind: KindGroupStart, Quant: QuantControl, Pos: pos}
}

// NewGroupEnd returns a capture end marker.
func NewGroupEnd(pos token.Position) *Node {
	return &Node{Kind: KindGroupEnd, Quant: QuantControl, Pos: pos}
}

// IsAlternation reports whether n is an alternation operand.
func (n *Node) IsAlternation() bool {
	return n != nil && n.Quant == QuantAlternation
}

// Tail returns the last node of the sequence starting at n.
func (n *Node) Tail() *Node {
	if n == nil {
		return nil
	}
	for n.Next != nil {
		n = n.Next
	}
	return n
}

// String returns a compact description of the node itself,
// without its links.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	switch n.Kind {
	case KindLiteral:
		fmt.Fprintf(&sb, "literal %q", n.Rune)
	case KindMeta:
		fmt.Fprintf(&sb, "meta $%c", n.Rune)
	case KindSet:
		fmt.Fprintf(&sb, "set %s", n.Set)
	default:
		sb.WriteString(n.Kind.String())
	}
	if n.Quant != QuantNone && n.Quant != QuantControl {
		sb.WriteString(" ")
		sb.WriteString(n.Quant.String())
	}
	return sb.String()
}

// Walk traverses the tree rooted at n in depth-first order, visiting
// Inner, Primary and Secondary before Next. If fn returns false, the
// children of that node are not visited; its Next chain still is.
func Walk(n *Node, fn func(*Node) bool) {
	for ; n != nil; n = n.Next {
		if !fn(n) {
			continue
		}
		Walk(n.Inner, fn)
		Walk(n.Primary, fn)
		Walk(n.Secondary, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n *Node) int {
	count := 0
	Walk(n, func(*Node) bool {
		count++
		return true
	})
	return count
}
