package runtime

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		letter rune
		r      rune
		want   bool
	}{
		{'a', 'x', true},
		{'a', '́', true}, // combining acute
		{'a', '1', false},
		{'L', 'ж', true},
		{'L', '́', false},
		{'d', '7', true},
		{'d', '٣', true}, // Arabic-indic three
		{'d', 'x', false},
		{'u', 'Q', true},
		{'u', 'q', false},
		{'l', 'q', true},
		{'x', 'F', true},
		{'x', 'g', false},
		{'x', '９', false},
		{'s', ' ', true},
		{'s', '\t', true},
		{'s', '\n', false},
		{'n', '\n', true},
		{'n', '\r', true},
		{'w', '_', true},
		{'w', 'é', true},
		{'w', '-', false},
		{'i', '‿', true}, // undertie, connector punctuation
		{'i', '$', false},
		{'c', '̈', true},
		{'c', 'e', false},
		{'b', '<', true},
		{'b', '}', true},
		{'b', '"', false},
		{'q', 'q', false}, // unknown class
		{'a', EOF, false},
	}

	for _, tt := range tests {
		if got := Classify(tt.letter, tt.r); got != tt.want {
			t.Errorf("Classify(%q, %q) = %v, want %v", tt.letter, tt.r, got, tt.want)
		}
	}
}

func TestClassifyLatinTable(t *testing.T) {
	// The precomputed table must agree with the predicates.
	for letter, c := range classes {
		for r := rune(0); r < 256; r++ {
			if got, want := Classify(letter, r), c.pred(r); got != want {
				t.Fatalf("class %c rune %q: table %v, predicate %v", letter, r, got, want)
			}
		}
	}
}

func TestClassLetters(t *testing.T) {
	for _, c := range "aLdulxsnwicb" {
		if !IsClassLetter(c) {
			t.Errorf("IsClassLetter(%q) = false", c)
		}
		if ClassName(c) == "" {
			t.Errorf("ClassName(%q) is empty", c)
		}
		if _, ok := classRE2(c); !ok {
			t.Errorf("classRE2(%q) missing", c)
		}
	}
	for _, c := range "zZ9$" {
		if IsClassLetter(c) {
			t.Errorf("IsClassLetter(%q) = true", c)
		}
	}
	if got := ClassName('d'); got != "digit" {
		t.Errorf("ClassName('d') = %q", got)
	}
}
