package runtime

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/kolkov/upat/internal/ast"
)

// LiteralFilter rejects inputs that lack a literal every match must
// contain. With several alternatives (from an alternation) the input
// must contain at least one of them, found with an Aho-Corasick
// automaton.
//
// IMPORTANT: extraction is conservative. It may miss literals but must
// never produce a literal some match does not contain.
type LiteralFilter struct {
	literals []string
	ac       *ahocorasick.Automaton // nil for a single literal
}

// NewLiteralFilter extracts the required literals of root. It returns
// nil if the pattern has none.
func NewLiteralFilter(root *ast.Node) *LiteralFilter {
	req := requiredLiterals(root)
	if len(req) == 0 {
		return nil
	}
	f := &LiteralFilter{literals: req}
	if len(req) > 1 {
		builder := ahocorasick.NewBuilder()
		for _, lit := range req {
			builder.AddPattern([]byte(lit))
		}
		ac, err := builder.Build()
		if err != nil {
			return nil
		}
		f.ac = ac
	}
	return f
}

// Literals returns the alternatives, one of which every match contains.
func (f *LiteralFilter) Literals() []string {
	return f.literals
}

// CanReject reports whether s contains none of the literals.
func (f *LiteralFilter) CanReject(s string) bool {
	if f.ac == nil {
		return !strings.Contains(s, f.literals[0])
	}
	return !f.ac.IsMatch([]byte(s))
}

// requiredLiterals returns the best requirement of a chain: a set of
// literals at least one of which every match of the chain contains.
// A single-element set is preferred when its literal is as long as the
// shortest alternative of a wider set.
func requiredLiterals(n *ast.Node) []string {
	var best []string
	var run []rune

	consider := func(cand []string) {
		if betterRequirement(cand, best) {
			best = cand
		}
	}
	flush := func() {
		if len(run) > 0 {
			consider([]string{string(run)})
			run = run[:0:0]
		}
	}

	for ; n != nil; n = n.Next {
		switch {
		case n.Quant == ast.QuantControl:
			// Consumes nothing; does not break a run.
		case n.Kind == ast.KindLiteral && n.Quant == ast.QuantNone:
			run = append(run, n.Rune)
		case n.Kind == ast.KindLiteral && n.Quant == ast.QuantPlus:
			// x+ ends one run and starts the next: "ab+c" contains
			// both "ab" and "bc".
			run = append(run, n.Rune)
			flush()
			run = append(run, n.Rune)
		case n.Kind == ast.KindBlock && (n.Quant == ast.QuantNone || n.Quant == ast.QuantPlus):
			flush()
			consider(requiredLiterals(n.Inner))
		case n.IsAlternation():
			flush()
			p := requiredLiterals(n.Primary)
			s := requiredLiterals(n.Secondary)
			if len(p) > 0 && len(s) > 0 {
				consider(union(p, s))
			}
		default:
			flush()
		}
	}
	flush()
	return best
}

// betterRequirement reports whether cand rejects more inputs than cur.
func betterRequirement(cand, cur []string) bool {
	if len(cand) == 0 {
		return false
	}
	if len(cur) == 0 {
		return true
	}
	cl, kl := shortest(cand), shortest(cur)
	if cl != kl {
		return cl > kl
	}
	return len(cand) < len(cur)
}

func shortest(lits []string) int {
	m := -1
	for _, l := range lits {
		if n := utf8.RuneCountInString(l); m < 0 || n < m {
			m = n
		}
	}
	return m
}

func union(a, b []string) []string {
	out := append([]string(nil), a...)
	for _, s := range b {
		dup := false
		for _, t := range out {
			if s == t {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}

// StartFilter tests whether a match can begin at a given rune. It is
// built only when the pattern starts with a mandatory single-rune
// node, so it is a necessary condition for a match starting there.
type StartFilter struct {
	node *ast.Node
}

// NewStartFilter returns the start filter of root, or nil.
func NewStartFilter(root *ast.Node) *StartFilter {
	n := root
	for n != nil && n.Quant == ast.QuantControl {
		n = n.Next
	}
	if n == nil || (n.Quant != ast.QuantNone && n.Quant != ast.QuantPlus) {
		return nil
	}
	switch n.Kind {
	case ast.KindLiteral, ast.KindMeta, ast.KindSet:
		return &StartFilter{node: n}
	}
	return nil
}

// CanStart reports whether a match may begin with r.
func (f *StartFilter) CanStart(r rune) bool {
	return MatchLeaf(f.node, r)
}

// MatchLeaf reports whether the single-rune node n accepts r.
// EOF is accepted by no node.
func MatchLeaf(n *ast.Node, r rune) bool {
	if r == EOF {
		return false
	}
	switch n.Kind {
	case ast.KindLiteral:
		return n.Rune == r
	case ast.KindMeta:
		return Classify(n.Rune, r)
	case ast.KindSet:
		return n.Set.Matches(r, Classify)
	}
	return false
}

// Prefilter combines the rejection filters of one pattern. All filters
// are sound: they reject only inputs the matcher would reject. The
// filters work on UTF-8 text and are skipped for invalid input, which
// the matcher decodes rune by rune.
type Prefilter struct {
	regex   *RegexFilter
	literal *LiteralFilter
	start   *StartFilter
}

// NewPrefilter builds every filter applicable to root.
func NewPrefilter(root *ast.Node) *Prefilter {
	return &Prefilter{
		regex:   NewRegexFilter(root),
		literal: NewLiteralFilter(root),
		start:   NewStartFilter(root),
	}
}

// CanReject reports whether s provably contains no match.
func (p *Prefilter) CanReject(s string) bool {
	if p == nil || !utf8.ValidString(s) {
		return false
	}
	if p.literal != nil && p.literal.CanReject(s) {
		return true
	}
	return p.regex != nil && p.regex.CanReject(s)
}

// CanRejectExact reports whether s provably does not match as a whole.
func (p *Prefilter) CanRejectExact(s string) bool {
	if p == nil || !utf8.ValidString(s) {
		return false
	}
	if p.literal != nil && p.literal.CanReject(s) {
		return true
	}
	return p.regex != nil && p.regex.CanRejectExact(s)
}

// Start returns the start filter, or nil.
func (p *Prefilter) Start() *StartFilter {
	if p == nil {
		return nil
	}
	return p.start
}

// Regex returns the regex filter, or nil.
func (p *Prefilter) Regex() *RegexFilter {
	if p == nil {
		return nil
	}
	return p.regex
}

// Literal returns the literal filter, or nil.
func (p *Prefilter) Literal() *LiteralFilter {
	if p == nil {
		return nil
	}
	return p.literal
}
