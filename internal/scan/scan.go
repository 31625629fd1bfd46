// Package scan runs a line-oriented job over large inputs in parallel
// while keeping the output in input order.
//
// Input is read in chunks split at newline boundaries. Each worker
// goroutine processes whole chunks with its own Worker; a collector
// writes chunk outputs in chunk order as soon as they are contiguous.
package scan

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
)

// Config holds configuration for parallel scanning.
type Config struct {
	// NumWorkers is the number of parallel worker goroutines.
	// Default: runtime.NumCPU()
	NumWorkers int

	// ChunkSize is the approximate size in bytes of each input chunk.
	// A line longer than ChunkSize gets a chunk of its own.
	// Default: 4MB (4 * 1024 * 1024)
	ChunkSize int

	// MaxBufferedChunks limits memory usage by blocking when too many
	// chunks are waiting to be processed.
	// Default: NumWorkers * 2
	MaxBufferedChunks int
}

// DefaultConfig returns sensible defaults for parallel scanning.
func DefaultConfig() Config {
	numCPU := runtime.NumCPU()
	return Config{
		NumWorkers:        numCPU,
		ChunkSize:         4 * 1024 * 1024, // 4MB chunks
		MaxBufferedChunks: numCPU * 2,
	}
}

func (c *Config) applyDefaults() {
	if c.NumWorkers <= 0 {
		c.NumWorkers = runtime.NumCPU()
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = 4 * 1024 * 1024
	}
	if c.MaxBufferedChunks <= 0 {
		c.MaxBufferedChunks = c.NumWorkers * 2
	}
}

// Worker processes lines for one goroutine. Line receives the line
// without its newline and its 1-based number in the whole input, and
// writes any output to out. It reports whether the line was selected.
type Worker interface {
	Line(out *bytes.Buffer, line string, num int) bool
	Close()
}

// Stats summarizes a run.
type Stats struct {
	Lines    int // Lines read
	Selected int // Lines for which Worker.Line returned true
}

// Executor coordinates parallel scanning.
type Executor struct {
	newWorker func() Worker
	config    Config
}

// New creates an executor. newWorker is called once per goroutine.
func New(newWorker func() Worker, config Config) *Executor {
	config.applyDefaults()
	return &Executor{newWorker: newWorker, config: config}
}

// chunk is a run of whole lines.
type chunk struct {
	ID        int    // Sequential chunk ID
	Data      []byte // Input data for this chunk
	StartLine int    // Number of the first line in this chunk
}

// result is the outcome of processing one chunk.
type result struct {
	ChunkID  int
	Output   []byte
	Lines    int
	Selected int
	Err      error
}

// Run reads input until EOF, processes it in parallel and writes the
// outputs to output in input order.
func (e *Executor) Run(ctx context.Context, input io.Reader, output io.Writer) (Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunks := make(chan chunk, e.config.MaxBufferedChunks)
	results := make(chan result, e.config.MaxBufferedChunks)
	var wg sync.WaitGroup

	// Start workers
	for range e.config.NumWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.worker(ctx, chunks, results)
		}()
	}

	// Start chunk reader
	readerDone := make(chan error, 1)
	go func() {
		readerDone <- e.readChunks(ctx, input, chunks)
		close(chunks)
	}()

	// Wait for workers to finish
	go func() {
		wg.Wait()
		close(results)
	}()

	stats, collectErr := e.collect(results, output, cancel)
	readErr := <-readerDone

	switch {
	case collectErr != nil:
		return stats, collectErr
	case readErr != nil:
		return stats, readErr
	}
	return stats, nil
}

// readChunks reads input and splits it into chunks at line boundaries.
func (e *Executor) readChunks(ctx context.Context, input io.Reader, chunks chan<- chunk) error {
	reader := bufio.NewReaderSize(input, e.config.ChunkSize)
	buffer := make([]byte, e.config.ChunkSize)
	var pending []byte // Partial line carried into the next chunk
	chunkID := 0
	line := 1

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := io.ReadFull(reader, buffer)
		eof := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
		if err != nil && !eof {
			return err
		}
		data := append(pending, buffer[:n]...)
		pending = nil

		if !eof {
			last := bytes.LastIndexByte(data, '\n')
			if last < 0 {
				pending = data // No line boundary yet; keep reading
				continue
			}
			pending = append(pending, data[last+1:]...)
			data = data[:last+1]
		}

		if len(data) > 0 {
			select {
			case chunks <- chunk{ID: chunkID, Data: data, StartLine: line}:
			case <-ctx.Done():
				return ctx.Err()
			}
			chunkID++
			line += bytes.Count(data, []byte{'\n'})
		}

		if eof {
			return nil
		}
	}
}

// worker processes input chunks with its own Worker.
func (e *Executor) worker(ctx context.Context, chunks <-chan chunk, results chan<- result) {
	w := e.newWorker()
	defer w.Close()

	for c := range chunks {
		select {
		case <-ctx.Done():
			results <- result{ChunkID: c.ID, Err: ctx.Err()}
			return
		default:
		}
		results <- processChunk(w, c)
	}
}

func processChunk(w Worker, c chunk) result {
	res := result{ChunkID: c.ID}

	var out bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(c.Data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(c.Data)+1)
	for scanner.Scan() {
		if w.Line(&out, scanner.Text(), c.StartLine+res.Lines) {
			res.Selected++
		}
		res.Lines++
	}
	if err := scanner.Err(); err != nil {
		res.Err = err
		return res
	}
	res.Output = out.Bytes()
	return res
}

// collect writes results in chunk order. Results arriving early wait
// in pending until their predecessors are written. On the first error
// the run is canceled; remaining results are drained but not written.
func (e *Executor) collect(results <-chan result, output io.Writer, cancel context.CancelFunc) (Stats, error) {
	var stats Stats
	var firstErr error
	pending := make(map[int]result)
	next := 0

	for res := range results {
		if firstErr != nil {
			continue
		}
		if res.Err != nil {
			firstErr = res.Err
			cancel()
			continue
		}
		pending[res.ChunkID] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			stats.Lines += r.Lines
			stats.Selected += r.Selected
			if len(r.Output) == 0 {
				continue
			}
			if _, err := output.Write(r.Output); err != nil {
				firstErr = err
				cancel()
				break
			}
		}
	}
	return stats, firstErr
}
