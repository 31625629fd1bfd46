// Package lexer provides upat pattern tokenization.
package lexer

import (
	"unicode/utf8"

	"github.com/kolkov/upat/internal/token"
)

// eof is the sentinel held in ch once the source is exhausted.
// NUL is a valid pattern character, so it cannot be used.
const eof = -1

// Lexer tokenizes a pattern source.
type Lexer struct {
	src     string         // Pattern source
	ch      rune           // Current character (eof at end)
	offset  int            // Byte offset of the next character
	pos     token.Position // Position of the current character
	nextPos token.Position // Position of the next character
}

// New creates a new Lexer for the given pattern.
func New(src string) *Lexer {
	l := &Lexer{
		src:     src,
		nextPos: token.Position{Column: 1},
	}
	l.next() // Initialize first character
	return l
}

// Token represents a scanned token with its position and value.
//
// Value holds the character for LITERAL, the class letter for META,
// the decoded body for STRING, the raw body for SET and the error
// message for ILLEGAL.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	pos := l.pos

	if l.ch == eof {
		return Token{Type: token.EOF, Pos: pos}
	}

	switch l.ch {
	case '+':
		l.next()
		return Token{Type: token.PLUS, Pos: pos, Value: "+"}
	case '*':
		l.next()
		return Token{Type: token.STAR, Pos: pos, Value: "*"}
	case '?':
		l.next()
		return Token{Type: token.QUESTION, Pos: pos, Value: "?"}
	case '|':
		l.next()
		return Token{Type: token.PIPE, Pos: pos, Value: "|"}
	case '[':
		l.next()
		return Token{Type: token.LBRACKET, Pos: pos, Value: "["}
	case ']':
		l.next()
		return Token{Type: token.RBRACKET, Pos: pos, Value: "]"}
	case '(':
		l.next()
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}
	case '"':
		return l.scanString(pos)
	case '<':
		return l.scanSet(pos)
	case '$':
		l.next()
		if l.ch == eof {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "dangling '$' at end of pattern"}
		}
		c := l.ch
		l.next()
		return Token{Type: token.META, Pos: pos, Value: string(c)}
	}

	c := l.ch
	l.next()
	return Token{Type: token.LITERAL, Pos: pos, Value: string(c)}
}

// scanString scans a quoted literal run. Only \n, \t, \" and \\ are
// translated; any other escaped character stands for itself.
func (l *Lexer) scanString(pos token.Position) Token {
	l.next() // consume opening quote

	var sb []rune
	for l.ch != eof && l.ch != '"' {
		if l.ch == '\\' {
			l.next()
			switch l.ch {
			case eof:
				return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated string"}
			case 'n':
				sb = append(sb, '\n')
			case 't':
				sb = append(sb, '\t')
			default:
				sb = append(sb, l.ch)
			}
			l.next()
			continue
		}
		sb = append(sb, l.ch)
		l.next()
	}

	if l.ch != '"' {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated string"}
	}
	l.next() // consume closing quote

	return Token{Type: token.STRING, Pos: pos, Value: string(sb)}
}

// scanSet scans a <...> character set and returns its raw body.
// A '$' always takes the following character with it, so "$>"
// does not terminate the set.
func (l *Lexer) scanSet(pos token.Position) Token {
	l.next() // consume '<'

	start := l.pos.Offset
	for l.ch != eof && l.ch != '>' {
		if l.ch == '$' {
			l.next()
			if l.ch == eof {
				break
			}
		}
		l.next()
	}

	if l.ch != '>' {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated character set"}
	}
	body := l.src[start:l.pos.Offset]
	l.next() // consume '>'

	return Token{Type: token.SET, Pos: pos, Value: body}
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		l.pos = l.nextPos
		l.ch = eof
		return
	}

	l.pos = l.nextPos

	r, size := rune(l.src[l.offset]), 1
	if r >= utf8.RuneSelf {
		r, size = utf8.DecodeRuneInString(l.src[l.offset:])
	}
	l.offset += size
	l.nextPos.Column++
	l.nextPos.Offset = l.offset
	l.ch = r
}
