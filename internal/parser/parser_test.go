package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/upat/internal/ast"
	"github.com/kolkov/upat/internal/parser"
)

// render writes a tree back in a compact pattern-like form: blocks in
// [], groups in (), alternations as {primary|secondary}.
func render(n *ast.Node) string {
	var sb strings.Builder
	for ; n != nil; n = n.Next {
		switch n.Kind {
		case ast.KindLiteral:
			sb.WriteRune(n.Rune)
		case ast.KindMeta:
			sb.WriteByte('$')
			sb.WriteRune(n.Rune)
		case ast.KindSet:
			sb.WriteString(n.Set.String())
		case ast.KindBlock:
			sb.WriteString("[" + render(n.Inner) + "]")
		case ast.KindGroupStart:
			sb.WriteByte('(')
		case ast.KindGroupEnd:
			sb.WriteByte(')')
		case ast.KindOperand:
			sb.WriteString("{" + render(n.Primary) + "|" + render(n.Secondary) + "}")
			continue
		}
		if n.Quant != ast.QuantControl {
			sb.WriteString(n.Quant.String())
		}
	}
	return sb.String()
}

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{``, ``},
		{`abc`, `abc`},
		{`"a\"b\\"`, `a"b\`},
		{`"a\qb"`, `aqb`},
		{`""x`, `x`},
		{`a+b*c?`, `a+b*c?`},
		{`"ab"+`, `ab+`},
		{`<abc>`, `<abc>`},
		{`<^a$d>`, `<^$da>`},
		{`<$>$$>`, `<$>$$>`},
		{`$d$q`, `$dq`},
		{`$L+`, `$L+`},
		{`[ab]+c`, `[ab]+c`},
		{`[ab]`, `ab`},
		{`[[a]b]`, `[a]b`},
		{`[]a`, `[]a`},
		{`(a+)(b+)`, `(a+)(b+)`},
		{`()`, `()`},
		{`ab|cd`, `{ab|cd}`},
		{`a|b|c`, `{{a|b}|c}`},
		{`x(a|b)y`, `x({a|b})y`},
		{`(a)|b`, `{(a)|b}`},
		{`a|b+`, `{a|b+}`},
		{`[a|b]*`, `[{a|b}]*`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			root, err := parser.Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.src, err)
			}
			if got := render(root); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseGroupAlternationContinuation(t *testing.T) {
	root, err := parser.Parse(`(a|b)c`)
	if err != nil {
		t.Fatal(err)
	}
	alt := root.Next
	if !alt.IsAlternation() {
		t.Fatalf("expected alternation after group start, got %s", alt)
	}
	if alt.Next == nil || alt.Next.Kind != ast.KindGroupEnd {
		t.Fatalf("alternation continuation = %s, want group-end", alt.Next)
	}
	if alt.Primary.Next != nil || alt.Secondary.Next != nil {
		t.Error("branches must not link to the continuation")
	}
	if got := alt.Next.Next; got == nil || got.Rune != 'c' {
		t.Errorf("node after group = %s, want literal 'c'", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src    string
		column int
		msg    string
	}{
		{`<abc`, 1, "unterminated character set"},
		{`a<$`, 2, "unterminated character set"},
		{`+ab`, 1, "has no preceding node"},
		{`a|+`, 3, "has no preceding node"},
		{`a++`, 3, "already tagged '+'"},
		{`a*?`, 3, "already tagged '*'"},
		{`(a)+`, 4, "already tagged 'control'"},
		{`[ab`, 1, "unbalanced '['"},
		{`x(ab`, 2, "unbalanced '('"},
		{`ab]`, 3, "unbalanced ']'"},
		{`ab)`, 3, "unbalanced ')'"},
		{`[a)`, 3, "unbalanced ')'"},
		{`|a`, 1, "alternation has no preceding node"},
		{`a||b`, 3, "double alternation"},
		{`a|`, 2, "missing its second operand"},
		{`(a|)`, 3, "missing its second operand"},
		{`"abc`, 1, "unterminated string"},
		{`"ab\`, 1, "unterminated string"},
		{`ab$`, 3, "dangling '$'"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := parser.Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.src)
			}
			var perr *parser.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not *ParseError", err)
			}
			if perr.Pos.Column != tt.column {
				t.Errorf("column = %d, want %d (%v)", perr.Pos.Column, tt.column, err)
			}
			if !strings.Contains(perr.Message, tt.msg) {
				t.Errorf("message = %q, want substring %q", perr.Message, tt.msg)
			}
		})
	}
}

func TestParseErrorString(t *testing.T) {
	_, err := parser.Parse(`ab]`)
	if got, want := err.Error(), "column 3: unbalanced ']'"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseSharedTreeIsIndependent(t *testing.T) {
	a, err := parser.Parse(`(a+)|b`)
	if err != nil {
		t.Fatal(err)
	}
	b, err := parser.Parse(`(a+)|b`)
	if err != nil {
		t.Fatal(err)
	}
	if a == b || render(a) != render(b) {
		t.Error("two compilations should build equal, distinct trees")
	}
	if ast.Count(a) != ast.Count(b) {
		t.Error("node counts differ")
	}
}
