package upat_test

import (
	"testing"
	"unicode/utf8"

	"github.com/kolkov/upat"
)

// FuzzSearchExact checks that every substring found by search matches
// exactly, that the prefilters never change a result, and that Replace
// terminates and is the identity when nothing matches.
func FuzzSearchExact(f *testing.F) {
	seeds := []struct{ pattern, input string }{
		{`"ab"`, "xxabzz"},
		{`a+a`, "aaa"},
		{`ab|cd`, "zcd"},
		{`[ab]+`, "abab"},
		{`(a+)(b+)`, "aaabb"},
		{`x*`, "abc"},
		{`<^$d>+`, "12ab34"},
		{`$w+"@"$w+`, "mail me@host now"},
		{`a?a`, "a"},
		{`0*0*0`, "0"},
		{`$a`, "é"},
		{`[a|ab]c`, "abc"},
		{`x[a|ab]`, "xab"},
		{`<ab>c|"yz"`, "xyzbc"},
	}
	for _, s := range seeds {
		f.Add(s.pattern, s.input)
	}

	f.Fuzz(func(t *testing.T, src, input string) {
		// Keep backtracking bounded.
		if utf8.RuneCountInString(src) > 12 || utf8.RuneCountInString(input) > 24 {
			return
		}
		p, err := upat.Compile(src)
		if err != nil {
			return
		}
		plain, err := upat.CompileWithConfig(src, upat.Config{DisablePrefilter: true})
		if err != nil {
			t.Fatalf("Compile(%q) failed only without prefilter: %v", src, err)
		}

		if p.MatchExactly(input, nil) != plain.MatchExactly(input, nil) {
			t.Fatalf("%q on %q: prefilter changed exact result", src, input)
		}
		loc := p.FindIndex(input, nil)
		ploc := plain.FindIndex(input, nil)
		if (loc == nil) != (ploc == nil) || (loc != nil && (loc[0] != ploc[0] || loc[1] != ploc[1])) {
			t.Fatalf("%q on %q: prefilter changed search result %v vs %v", src, input, loc, ploc)
		}
		if loc != nil && !p.MatchExactly(input[loc[0]:loc[1]], nil) {
			t.Fatalf("%q: found %q in %q but exact match fails", src, input[loc[0]:loc[1]], input)
		}

		out := p.Replace(input, "")
		if loc == nil && out != input {
			t.Fatalf("%q: Replace without match changed %q to %q", src, input, out)
		}
	})
}
