// Package upat implements a compact pattern language with a recursive
// backtracking matcher.
//
// # Pattern Syntax
//
//	c         literal character
//	"..."     literal run; \n \t \" \\ are escapes
//	<abc>     character set; <^abc> negates; $c inside embeds a class
//	[...]     sub-pattern, so a quantifier applies to all of it
//	(...)     capture group
//	$c        meta-class, e.g. $d digit, $a alpha, $w word
//	+ * ?     one or more, zero or more, zero or one (greedy)
//	|         alternation; lowest precedence
//
// Meta-class letters: a alpha, L letter, d digit, u upper, l lower,
// x hex digit, s blank, n newline, w word, i identifier, c combining
// mark, b bracket. A $ before any other character makes it literal.
//
// # Backtracking
//
// Within one sequence a quantified node backs off one repetition at a
// time, and an alternation falls back to its secondary branch, until
// the rest of the sequence matches. The content of a [...] block is
// matched once: its first success stands, so [a|ab]c does not match
// "abc" and [a+]a does not match "aa".
//
// MatchExactly checks for the end of input once, on the first match
// found. Only an alternation at the root of the pattern is retried:
// a|ab matches "ab" exactly, x[a|ab] does not match "xab".
//
// # Quick Start
//
//	p := upat.MustCompile(`($d+)"."($d+)`)
//
//	var g upat.Groups
//	if p.MatchExactly("3.14", &g) {
//	    whole, _ := g.Int(0) // 3
//	    frac, _ := g.Int(1)  // 14
//	}
//
//	p.FindSubstring("pi is 3.14!", nil) // "3.14"
//	p.Replace("1.5 and 2.5", "N")      // "N and N"
//
// # Captures
//
// Every match method takes a *Groups, which may be nil. The method
// resets it and fills it with the captures of the match it reports.
// Groups are numbered by their closing parenthesis, inner groups first.
//
// # Streams
//
// [Pattern.MatchStream] matches against a [Stream], pulling runes on
// demand and pushing back whatever it read but did not consume.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [SyntaxError]: invalid pattern source
//   - [GroupAccessError]: capture index out of range
//   - [ConversionError]: capture is not a number
//
// [ErrorKind] returns the short kind tag of any of them. A pattern that
// does not match is not an error.
//
// # Thread Safety
//
// Compiled [Pattern] objects are safe for concurrent use. [Pattern.Clone]
// shares the compiled tree by reference count; [Pattern.Recompile]
// replaces it under exclusive access. Patterns can backtrack
// exponentially on adversarial input; callers needing bounded latency
// must bound input size themselves.
package upat
