package lexer

import (
	"testing"

	"github.com/kolkov/upat/internal/token"
)

// FuzzLexer tests that the lexer handles arbitrary input without panicking,
// always terminates and reports monotonically increasing positions.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		// Atoms
		`abc`,
		`"quoted run"`,
		`"esc\n\t\"\\"`,
		`<abc>`,
		`<^$d$u_>`,
		`$d$w`,

		// Structure
		`[ab]+`,
		`(a+)(b+)`,
		`ab|cd`,
		`[a|b]*c?`,

		// Edge cases
		``,
		`$`,
		`<abc`,
		`"unterminated`,
		`<$`,
		`"\`,

		// Unicode
		`"привет мир"`,
		`<äöü>+`,
		`🎉*`,
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		l := New(src)

		last := -1
		for n := 0; n <= len(src)+1; n++ {
			tok := l.Scan()
			if tok.Pos.Offset < 0 || tok.Pos.Offset > len(src) {
				t.Fatalf("invalid position: %+v", tok.Pos)
			}
			if tok.Type == token.EOF {
				return
			}
			if tok.Pos.Offset <= last {
				t.Fatalf("position did not advance: %d after %d", tok.Pos.Offset, last)
			}
			last = tok.Pos.Offset
		}
		t.Fatalf("lexer did not reach EOF for %q", src)
	})
}
