package token

import "testing"

func TestTokenClasses(t *testing.T) {
	tests := []struct {
		tok   Token
		atom  bool
		op    bool
		quant bool
		name  string
	}{
		{LITERAL, true, false, false, "literal"},
		{STRING, true, false, false, "string"},
		{SET, true, false, false, "set"},
		{META, true, false, false, "meta-class"},
		{PLUS, false, true, true, "+"},
		{STAR, false, true, true, "*"},
		{QUESTION, false, true, true, "?"},
		{PIPE, false, true, false, "|"},
		{LBRACKET, false, true, false, "["},
		{RPAREN, false, true, false, ")"},
		{EOF, false, false, false, "end of pattern"},
		{ILLEGAL, false, false, false, "illegal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.IsAtom(); got != tt.atom {
				t.Errorf("IsAtom() = %v, want %v", got, tt.atom)
			}
			if got := tt.tok.IsOperator(); got != tt.op {
				t.Errorf("IsOperator() = %v, want %v", got, tt.op)
			}
			if got := tt.tok.IsQuantifier(); got != tt.quant {
				t.Errorf("IsQuantifier() = %v, want %v", got, tt.quant)
			}
			if got := tt.tok.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	a := Position{Offset: 0, Column: 1}
	b := Position{Offset: 4, Column: 3}

	if !a.IsValid() || NoPos.IsValid() {
		t.Error("IsValid mismatch")
	}
	if !a.Before(b) || b.Before(a) {
		t.Error("Before mismatch")
	}
	if got := b.String(); got != "column 3" {
		t.Errorf("String() = %q", got)
	}

	span := Span{Start: a, End: b}
	if !span.Contains(Position{Offset: 2, Column: 2}) {
		t.Error("span should contain offset 2")
	}
	if span.Contains(Position{Offset: 5, Column: 4}) {
		t.Error("span should not contain offset 5")
	}
	if got := span.String(); got != "columns 1-3" {
		t.Errorf("Span.String() = %q", got)
	}
}
