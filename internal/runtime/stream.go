package runtime

import (
	"bufio"
	"errors"
	"io"
)

// Stream is a pull source of runes with pushback. Runes pushed back are
// returned by Next in reverse order of pushing.
type Stream interface {
	// Next returns the next rune, or eof=true when the source is exhausted.
	Next() (r rune, eof bool)
	// PushBack returns r to the stream.
	PushBack(r rune)
}

// ReaderStream adapts an io.Reader to a Stream.
type ReaderStream struct {
	rd       *bufio.Reader
	pushback []rune
	err      error
}

// NewReaderStream returns a Stream reading UTF-8 text from r. Invalid
// encodings decode as U+FFFD.
func NewReaderStream(r io.Reader) *ReaderStream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &ReaderStream{rd: br}
}

// Next implements Stream.
func (s *ReaderStream) Next() (rune, bool) {
	if n := len(s.pushback); n > 0 {
		r := s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
		return r, false
	}
	if s.err != nil {
		return 0, true
	}
	r, _, err := s.rd.ReadRune()
	if err != nil {
		s.err = err
		return 0, true
	}
	return r, false
}

// PushBack implements Stream.
func (s *ReaderStream) PushBack(r rune) {
	s.pushback = append(s.pushback, r)
}

// Err returns the first read error other than io.EOF.
func (s *ReaderStream) Err() error {
	if errors.Is(s.err, io.EOF) {
		return nil
	}
	return s.err
}

// StringStream is a Stream over an in-memory string.
type StringStream struct {
	src      []rune
	pos      int
	pushback []rune
}

// NewStringStream returns a Stream over s.
func NewStringStream(s string) *StringStream {
	return &StringStream{src: []rune(s)}
}

// Next implements Stream.
func (s *StringStream) Next() (rune, bool) {
	if n := len(s.pushback); n > 0 {
		r := s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
		return r, false
	}
	if s.pos >= len(s.src) {
		return 0, true
	}
	r := s.src[s.pos]
	s.pos++
	return r, false
}

// PushBack implements Stream.
func (s *StringStream) PushBack(r rune) {
	s.pushback = append(s.pushback, r)
}

// Rest returns the unread remainder, pushed back runes included.
func (s *StringStream) Rest() string {
	out := make([]rune, 0, len(s.pushback)+len(s.src)-s.pos)
	for i := len(s.pushback) - 1; i >= 0; i-- {
		out = append(out, s.pushback[i])
	}
	out = append(out, s.src[s.pos:]...)
	return string(out)
}
