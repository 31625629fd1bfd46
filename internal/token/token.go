// Package token defines lexical tokens of the upat pattern syntax.
package token

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF

	// Atoms
	atomStart
	LITERAL // literal character
	STRING  // "..."
	SET     // <...>
	META    // $c
	atomEnd

	// Operators and delimiters
	operatorStart
	PLUS     // +
	STAR     // *
	QUESTION // ?
	PIPE     // |
	LBRACKET // [
	RBRACKET // ]
	LPAREN   // (
	RPAREN   // )
	operatorEnd
)

var names = [...]string{
	ILLEGAL:  "illegal",
	EOF:      "end of pattern",
	LITERAL:  "literal",
	STRING:   "string",
	SET:      "set",
	META:     "meta-class",
	PLUS:     "+",
	STAR:     "*",
	QUESTION: "?",
	PIPE:     "|",
	LBRACKET: "[",
	RBRACKET: "]",
	LPAREN:   "(",
	RPAREN:   ")",
}

// String returns a human-readable name for the token.
func (t Token) String() string {
	if int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return "token(?)"
}

// IsAtom returns true if the token produces a matching node.
func (t Token) IsAtom() bool {
	return t > atomStart && t < atomEnd
}

// IsOperator returns true if the token is an operator or delimiter.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsQuantifier returns true for +, * and ?.
func (t Token) IsQuantifier() bool {
	return t == PLUS || t == STAR || t == QUESTION
}
