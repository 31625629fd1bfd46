package parser_test

import (
	"errors"
	"testing"

	"github.com/kolkov/upat/internal/ast"
	"github.com/kolkov/upat/internal/parser"
)

// FuzzParser tests the parser with random inputs to find crashes and
// malformed trees.
func FuzzParser(f *testing.F) {
	seeds := []string{
		"",
		"abc",
		`"quoted\n"`,
		"<^abc$d>",
		"[ab]+c",
		"(a+)(b+)",
		"ab|cd",
		"a|b|c",
		"x(a|b)*y",
		"[a|[b|c]+]?",
		"$d+.$d+",
		"<abc",
		"+ab",
		"a||b",
		"(()",
		"])",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		root, err := parser.Parse(src)
		if err != nil {
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q): error %T is not *ParseError", src, err)
			}
			return
		}
		ast.Walk(root, func(n *ast.Node) bool {
			if n.IsAlternation() && (n.Primary == nil || n.Secondary == nil) {
				t.Fatalf("Parse(%q): incomplete alternation", src)
			}
			return true
		})
	})
}
