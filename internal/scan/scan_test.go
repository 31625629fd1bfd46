package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
)

// grepWorker selects lines containing sub and prints them numbered.
type grepWorker struct {
	sub    string
	closed *atomic.Int32
}

func (w grepWorker) Line(out *bytes.Buffer, line string, num int) bool {
	if !strings.Contains(line, w.sub) {
		return false
	}
	fmt.Fprintf(out, "%d:%s\n", num, line)
	return true
}

func (w grepWorker) Close() {
	w.closed.Add(1)
}

func newGrep(sub string, closed *atomic.Int32) func() Worker {
	return func() Worker { return grepWorker{sub: sub, closed: closed} }
}

func TestExecutorOrdered(t *testing.T) {
	var sb, want strings.Builder
	for i := 1; i <= 500; i++ {
		line := fmt.Sprintf("line %d", i)
		if i%7 == 0 {
			line += " x"
			fmt.Fprintf(&want, "%d:%s\n", i, line)
		}
		sb.WriteString(line + "\n")
	}

	var closed atomic.Int32
	e := New(newGrep("x", &closed), Config{NumWorkers: 4, ChunkSize: 64})
	var out bytes.Buffer
	stats, err := e.Run(context.Background(), strings.NewReader(sb.String()), &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := out.String(); got != want.String() {
		t.Errorf("output mismatch:\n%s\nwant:\n%s", got, want.String())
	}
	if stats.Lines != 500 || stats.Selected != 71 {
		t.Errorf("stats = %+v, want 500 lines, 71 selected", stats)
	}
	if closed.Load() != 4 {
		t.Errorf("closed workers = %d, want 4", closed.Load())
	}
}

func TestExecutorLongLinesAndNoTrailingNewline(t *testing.T) {
	long := strings.Repeat("a", 100) + "x"
	input := "x1\n" + long + "\nno\nx-last"

	var closed atomic.Int32
	e := New(newGrep("x", &closed), Config{NumWorkers: 2, ChunkSize: 16})
	var out bytes.Buffer
	stats, err := e.Run(context.Background(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := "1:x1\n2:" + long + "\n4:x-last\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if stats.Lines != 4 || stats.Selected != 3 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestExecutorEmptyInput(t *testing.T) {
	var closed atomic.Int32
	e := New(newGrep("x", &closed), Config{})
	var out bytes.Buffer
	stats, err := e.Run(context.Background(), strings.NewReader(""), &out)
	if err != nil || out.Len() != 0 || stats.Lines != 0 {
		t.Errorf("Run() = %+v, %v, output %q", stats, err, out.String())
	}
}

func TestExecutorCancelContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var closed atomic.Int32
	e := New(newGrep("x", &closed), Config{NumWorkers: 2, ChunkSize: 16})
	_, err := e.Run(ctx, strings.NewReader(strings.Repeat("x\n", 1000)), &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestExecutorWriteError(t *testing.T) {
	var closed atomic.Int32
	e := New(newGrep("x", &closed), Config{NumWorkers: 2, ChunkSize: 16})
	_, err := e.Run(context.Background(), strings.NewReader(strings.Repeat("x\n", 100)), failWriter{})
	if !errors.Is(err, errWrite) {
		t.Errorf("Run() error = %v, want %v", err, errWrite)
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.NumWorkers <= 0 || c.ChunkSize <= 0 || c.MaxBufferedChunks != c.NumWorkers*2 {
		t.Errorf("DefaultConfig() = %+v", c)
	}
	var z Config
	z.applyDefaults()
	if z != c {
		t.Errorf("applyDefaults() = %+v, want %+v", z, c)
	}
}
