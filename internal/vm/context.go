package vm

import "github.com/kolkov/upat/internal/runtime"

// source is the input shared by every snapshot of one invocation.
// In stream mode buf grows as runes are pulled from the stream; runes
// stay buffered while the matcher backtracks.
type source struct {
	buf       []rune
	stream    runtime.Stream // nil in string mode
	exhausted bool           // stream reported end of input
	prefixLen int            // runes of buf supplied by the caller, never pushed back
}

// at returns the rune at index i, pulling from the stream as needed.
func (s *source) at(i int) (rune, bool) {
	for i >= len(s.buf) {
		if s.stream == nil || s.exhausted {
			return runtime.EOF, false
		}
		r, eof := s.stream.Next()
		if eof {
			s.exhausted = true
			return runtime.EOF, false
		}
		s.buf = append(s.buf, r)
	}
	return s.buf[i], true
}

// Context is a cursor over the input of one match invocation. It is a
// small value: copying it takes a snapshot, and restoring a snapshot
// is simply using the old copy again.
type Context struct {
	src   *source
	start int   // Where the current attempt began
	pos   int   // Next rune to read
	marks []int // Open group start positions, innermost last
	caps  *Captures
}

// NewContext returns a context over a fixed input.
func NewContext(input []rune, caps *Captures) Context {
	return Context{src: &source{buf: input, prefixLen: len(input)}, caps: caps}
}

// NewStreamContext returns a context reading prefix first, then pulling
// runes from stream on demand.
func NewStreamContext(stream runtime.Stream, prefix string, caps *Captures) Context {
	buf := []rune(prefix)
	return Context{
		src:  &source{buf: buf, stream: stream, prefixLen: len(buf)},
		caps: caps,
	}
}

// At returns a fresh attempt starting at index i.
func (c Context) At(i int) Context {
	return Context{src: c.src, start: i, pos: i, caps: c.caps}
}

// Pos returns the index of the next rune.
func (c Context) Pos() int { return c.pos }

// Start returns the index where the attempt began.
func (c Context) Start() int { return c.start }

// Captures returns the capture accumulator.
func (c Context) Captures() *Captures { return c.caps }

// Next reads one rune. The returned context is advanced past it; c
// itself is unchanged. At end of input ok is false.
func (c Context) Next() (r rune, next Context, ok bool) {
	r, ok = c.src.at(c.pos)
	if !ok {
		return r, c, false
	}
	c.pos++
	return r, c, true
}

// AtEnd reports whether the input is exhausted at the cursor.
func (c Context) AtEnd() bool {
	_, ok := c.src.at(c.pos)
	return !ok
}

// Len returns the number of runes buffered so far. In string mode this
// is the input length.
func (c Context) Len() int { return len(c.src.buf) }

// Text returns the runes in [from, to).
func (c Context) Text(from, to int) string {
	return string(c.src.buf[from:to])
}

// Mark opens a group at the cursor.
func (c Context) Mark() Context {
	m := c.marks
	c.marks = append(m[:len(m):len(m)], c.pos)
	return c
}

// Commit closes the innermost open group and records its text.
func (c Context) Commit() Context {
	n := len(c.marks)
	if n == 0 {
		panic(&InternalError{Message: "group end without group start"})
	}
	from := c.marks[n-1]
	c.marks = c.marks[:n-1]
	c.caps.Append(c.Text(from, c.pos))
	return c
}

// Saved returns a checkpoint of the committed groups for Restore.
func (c Context) Saved() int { return c.caps.Len() }

// Restore drops every group committed since checkpoint n was taken.
func (c Context) Restore(n int) {
	c.caps.Truncate(n)
}

// Unread pushes every pulled rune at or beyond pos back onto the
// stream, newest first, so the stream continues at pos. Runes of the
// caller's prefix are never pushed back. It is a no-op in string mode.
func (c Context) Unread(pos int) {
	s := c.src
	if s.stream == nil {
		return
	}
	from := max(pos, s.prefixLen)
	for i := len(s.buf) - 1; i >= from; i-- {
		s.stream.PushBack(s.buf[i])
	}
	if from < len(s.buf) {
		s.buf = s.buf[:from]
		s.exhausted = false
	}
}
