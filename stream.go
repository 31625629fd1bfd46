package upat

import (
	"io"

	"github.com/kolkov/upat/internal/runtime"
)

// Stream is a pull source of runes with pushback, consumed by
// [Pattern.MatchStream].
type Stream = runtime.Stream

// ReaderStream is a Stream over an io.Reader. Runes pushed back are
// kept in memory ahead of the reader.
type ReaderStream = runtime.ReaderStream

// StringStream is a Stream over a string.
type StringStream = runtime.StringStream

// NewReaderStream returns a Stream reading UTF-8 text from r.
func NewReaderStream(r io.Reader) *ReaderStream {
	return runtime.NewReaderStream(r)
}

// NewStringStream returns a Stream over s.
func NewStringStream(s string) *StringStream {
	return runtime.NewStringStream(s)
}
