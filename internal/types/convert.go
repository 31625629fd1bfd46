// Package types converts captured text to numbers.
//
// Conversions are strict: the whole capture, minus surrounding spaces,
// must be a number. Failures are *strconv.NumError values so callers
// can inspect ErrSyntax and ErrRange.
package types

import (
	"math"
	"strconv"
	"strings"
)

// ParseInt parses s as a signed 64-bit integer. Decimal is the default;
// 0x, 0o and 0b prefixes select other bases.
func ParseInt(s string) (int64, error) {
	t := strings.TrimSpace(s)
	if t == "" || strings.Contains(t, "_") {
		return 0, syntaxError("ParseInt", s)
	}
	base := 10
	if hasBasePrefix(t) {
		base = 0
	}
	n, err := strconv.ParseInt(t, base, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ParseReal parses s as a float64. It accepts decimal and exponent
// forms, hex with or without a binary exponent, and inf/nan spellings.
func ParseReal(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" || strings.Contains(t, "_") {
		return 0, syntaxError("ParseFloat", s)
	}

	// Handle special cases
	switch strings.ToLower(t) {
	case "nan", "+nan", "-nan":
		return math.NaN(), nil
	case "inf", "+inf", "infinity", "+infinity":
		return math.Inf(1), nil
	case "-inf", "-infinity":
		return math.Inf(-1), nil
	}

	// Hex without exponent ("0x1a"); Go requires "0x1ap0"
	if hasHexPrefix(t) && !strings.ContainsAny(t, "pP") {
		t += "p0"
	}

	n, err := strconv.ParseFloat(t, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			ne.Num = s
		}
		return 0, err
	}
	return n, nil
}

func hasBasePrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func hasHexPrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func syntaxError(fn, s string) error {
	return &strconv.NumError{Func: fn, Num: s, Err: strconv.ErrSyntax}
}
