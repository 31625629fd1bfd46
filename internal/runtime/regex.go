package runtime

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregex"

	"github.com/kolkov/upat/internal/ast"
)

// RegexFilter is an automaton-based rejection filter. The pattern tree
// is translated to an RE2 expression and compiled with coregex. Every
// string the matcher accepts is in the language of the expression, so
// a negative answer from coregex means the matcher cannot succeed
// either.
//
// The filter is only built for trees within the subset coregex is
// trusted with, see regexSafe. Group markers consume nothing and
// translate to nothing.
type RegexFilter struct {
	expr   string
	search *coregex.Regexp // Unanchored
	exact  *coregex.Regexp // ^(?:expr)$
}

// NewRegexFilter translates root and compiles it. It returns nil if the
// tree is outside the trusted subset or coregex rejects the
// translation; callers then fall back to the other filters.
func NewRegexFilter(root *ast.Node) *RegexFilter {
	if root == nil || !regexSafe(root) {
		return nil
	}
	expr := Translate(root)
	search, err := coregex.Compile("(?s)" + expr)
	if err != nil {
		return nil
	}
	exact, err := coregex.Compile("(?s)^(?:" + expr + ")$")
	if err != nil {
		return nil
	}
	return &RegexFilter{expr: expr, search: search, exact: exact}
}

// Expr returns the translated expression.
func (f *RegexFilter) Expr() string {
	return f.expr
}

// CanReject reports whether s provably contains no match.
func (f *RegexFilter) CanReject(s string) bool {
	return !f.search.MatchString(s)
}

// CanRejectExact reports whether s provably does not match as a whole.
func (f *RegexFilter) CanRejectExact(s string) bool {
	return !f.exact.MatchString(s)
}

// regexSafe reports whether the chain at n uses only printable ASCII
// literals and non-empty, non-negated sets of them, joined by sequence,
// blocks, groups and alternation. Quantified nodes and Unicode classes
// are left out: coregex v0.10.3 reports no match for a?a on "a", for
// a*a*a on "a" and for [\p{L}\p{M}] on "é".
func regexSafe(n *ast.Node) bool {
	for ; n != nil; n = n.Next {
		switch n.Quant {
		case ast.QuantNone, ast.QuantControl:
		case ast.QuantAlternation:
			if !regexSafe(n.Primary) || !regexSafe(n.Secondary) {
				return false
			}
			continue
		default:
			return false
		}

		switch n.Kind {
		case ast.KindLiteral:
			if !printableASCII(n.Rune) {
				return false
			}
		case ast.KindSet:
			members := n.Set.Members()
			if n.Set.Negated() || len(n.Set.Classes()) > 0 || len(members) == 0 {
				return false
			}
			for _, r := range members {
				if !printableASCII(r) {
					return false
				}
			}
		case ast.KindBlock:
			if !regexSafe(n.Inner) {
				return false
			}
		case ast.KindGroupStart, ast.KindGroupEnd:
		default:
			return false
		}
	}
	return true
}

func printableASCII(r rune) bool {
	return r >= ' ' && r < utf8.RuneSelf-1
}

// Translate renders the tree rooted at root as an RE2 expression. The
// expression accepts every string the pattern accepts; it may accept
// more, since blocks are not atomic in RE2.
func Translate(root *ast.Node) string {
	var sb strings.Builder
	translateSeq(&sb, root)
	return sb.String()
}

func translateSeq(sb *strings.Builder, n *ast.Node) {
	for ; n != nil; n = n.Next {
		translateNode(sb, n)
	}
}

func translateNode(sb *strings.Builder, n *ast.Node) {
	switch n.Kind {
	case ast.KindLiteral:
		sb.WriteString(coregex.QuoteMeta(string(n.Rune)))
	case ast.KindMeta:
		sb.WriteByte('[')
		frag, _ := classRE2(n.Rune)
		sb.WriteString(frag)
		sb.WriteByte(']')
	case ast.KindSet:
		translateSet(sb, n.Set)
	case ast.KindBlock:
		sb.WriteString("(?:")
		translateSeq(sb, n.Inner)
		sb.WriteByte(')')
	case ast.KindGroupStart, ast.KindGroupEnd:
		return
	case ast.KindOperand:
		sb.WriteString("(?:")
		translateSeq(sb, n.Primary)
		sb.WriteByte('|')
		translateSeq(sb, n.Secondary)
		sb.WriteByte(')')
		return
	}
	sb.WriteString(n.Quant.String())
}

// anyRune is the RE2 class of every code point.
const anyRune = `\x00-\x{10FFFF}`

func translateSet(sb *strings.Builder, set *ast.CharSet) {
	var body strings.Builder
	for _, c := range set.Classes() {
		frag, _ := classRE2(c)
		body.WriteString(frag)
	}
	for _, r := range set.Members() {
		switch r {
		case '\\', ']', '[', '^', '-':
			body.WriteByte('\\')
		}
		body.WriteRune(r)
	}

	// RE2 has no empty class; an empty set matches nothing and its
	// negation matches everything.
	if body.Len() == 0 {
		if set.Negated() {
			sb.WriteString("[" + anyRune + "]")
		} else {
			sb.WriteString("[^" + anyRune + "]")
		}
		return
	}
	sb.WriteByte('[')
	if set.Negated() {
		sb.WriteByte('^')
	}
	sb.WriteString(body.String())
	sb.WriteByte(']')
}
