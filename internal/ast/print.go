package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer provides pretty-printing for compiled pattern trees.
// It outputs one node per line, indenting nested blocks and branches.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the tree rooted at root to the writer.
func (p *Printer) Print(root *Node) error {
	if root == nil {
		p.line("<empty>")
		return p.err
	}
	p.printChain(root)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, "  ")
	}
}

func (p *Printer) line(s string) {
	p.writeIndent()
	p.printf("%s\n", s)
}

func (p *Printer) printChain(n *Node) {
	for ; n != nil; n = n.Next {
		p.printNode(n)
	}
}

func (p *Printer) printNode(n *Node) {
	switch {
	case n.IsAlternation():
		p.line("alternation")
		p.indent++
		p.line("primary:")
		p.nested(n.Primary)
		p.line("secondary:")
		p.nested(n.Secondary)
		p.indent--
		if n.Next != nil {
			p.line("then:")
		}
	case n.Kind == KindBlock:
		p.line(n.String())
		p.nested(n.Inner)
	default:
		p.line(n.String())
	}
}

func (p *Printer) nested(n *Node) {
	p.indent++
	if n == nil {
		p.line("<empty>")
	} else {
		p.printChain(n)
	}
	p.indent--
}

// Sprint returns the printed form of the tree rooted at root.
func Sprint(root *Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb).Print(root)
	return sb.String()
}
