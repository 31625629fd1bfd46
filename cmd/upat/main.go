// upat - pattern search tool
//
// Filters lines of text with upat patterns, in the manner of grep.
// Uses manual argument parsing so that flags can carry their argument
// with no space, like -j4 or -r_.
package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kolkov/upat"
	"github.com/kolkov/upat/internal/runtime"
	"github.com/kolkov/upat/internal/scan"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: upat [-x] [-P] [-o] [-g] [-v] [-n] [-c] [-r repl] [-s] [-j N] [-d] pattern [file ...]"
	longUsage  = `Matching:
  -x                select lines the pattern matches exactly
  -v                select lines that do not match
  -P                disable literal and regex prefilters

Output:
  -o                print only the matched text of each selected line
  -g                print the capture groups of each selected line, tab separated
  -n                prefix output with the line number
  -c                print only the number of selected lines
  -r repl           print every line with each match replaced by repl
  -s                stream mode: print each match found in the input as a whole

Performance options:
  -j N              use N parallel workers (default: 1 = sequential)

Debugging arguments:
  -d                print the compiled pattern tree and its prefilters to stderr and exit

Other:
  -h, --help        show this help message
  -version          show upat version and exit
`
)

// options selects what a lineWorker does with each line.
type options struct {
	exact   bool
	only    bool
	groups  bool
	invert  bool
	number  bool
	count   bool
	replace *string
}

//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func main() {
	var opts options
	var config upat.Config
	stream := false
	debug := false
	parallelWorkers := 1

	var i int
	for i = 1; i < len(os.Args); i++ {
		// Stop on explicit end of args or first arg not prefixed with "-"
		arg := os.Args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-x":
			opts.exact = true
		case "-o":
			opts.only = true
		case "-g":
			opts.groups = true
		case "-v":
			opts.invert = true
		case "-n":
			opts.number = true
		case "-c":
			opts.count = true
		case "-s":
			stream = true
		case "-P":
			config.DisablePrefilter = true
		case "-d":
			debug = true
		case "-r":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -r")
			}
			i++
			repl := os.Args[i]
			opts.replace = &repl
		case "-j":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -j")
			}
			i++
			parallelWorkers = parseWorkers(os.Args[i])
		case "-h", "--help":
			fmt.Printf("upat %s - pattern search\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("upat version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			fmt.Println("  engine: backtracking, prefilter: coregex")
			fmt.Printf("  simd:   %s\n", runtime.FeatureString())
			os.Exit(0)
		default:
			// Handle flags with no space: -rrepl, -j4
			switch {
			case strings.HasPrefix(arg, "-r"):
				repl := arg[2:]
				opts.replace = &repl
			case strings.HasPrefix(arg, "-j"):
				parallelWorkers = parseWorkers(arg[2:])
			default:
				errorExitf("flag provided but not defined: %s", arg)
			}
		}
	}

	args := os.Args[i:]
	if len(args) == 0 {
		errorExitf(shortUsage)
	}
	source, inputFiles := args[0], args[1:]

	p, err := upat.CompileWithConfig(source, config)
	if err != nil {
		errorExit(err)
	}
	defer p.Release()

	if debug {
		if err := p.Dump(os.Stderr); err != nil {
			errorExit(err)
		}
		os.Exit(0)
	}

	// Determine input source
	var input io.Reader
	if len(inputFiles) == 0 {
		input = os.Stdin
	} else {
		readers := make([]io.Reader, 0, len(inputFiles))
		for _, f := range inputFiles {
			if f == "-" {
				readers = append(readers, os.Stdin)
				continue
			}
			file, err := os.Open(f)
			if err != nil {
				errorExitf("cannot open file %s: %v", f, err)
			}
			defer file.Close()
			readers = append(readers, file)
		}
		input = io.MultiReader(readers...)
	}

	stdout := bufio.NewWriter(os.Stdout)

	var selected int
	if stream {
		selected, err = runStream(p, input, stdout)
	} else {
		selected, err = runLines(p, opts, parallelWorkers, input, stdout)
	}
	if flushErr := stdout.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		errorExit(err)
	}
	if selected == 0 {
		os.Exit(1)
	}
}

func parseWorkers(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		errorExitf("invalid number of workers: %s", s)
	}
	return n
}

// runLines filters input line by line and returns the number of
// selected lines.
func runLines(p *upat.Pattern, opts options, workers int, input io.Reader, output io.Writer) (int, error) {
	config := scan.DefaultConfig()
	config.NumWorkers = workers
	config.MaxBufferedChunks = workers * 2

	exec := scan.New(func() scan.Worker {
		return &lineWorker{p: p.Clone(), opts: opts}
	}, config)

	stats, err := exec.Run(context.Background(), input, output)
	if err != nil {
		return stats.Selected, err
	}
	if opts.count {
		fmt.Fprintln(output, stats.Selected)
	}
	return stats.Selected, nil
}

// runStream treats the input as one rune stream and prints every
// non-empty match found by trying MatchStream at each position.
func runStream(p *upat.Pattern, input io.Reader, output io.Writer) (int, error) {
	s := upat.NewReaderStream(input)
	var g upat.Groups
	found := 0
	for {
		if m := p.MatchStream(s, "", &g); m != "" {
			found++
			fmt.Fprintf(output, "%s\n", m)
			continue
		}
		if _, eof := s.Next(); eof {
			break
		}
	}
	return found, s.Err()
}

// lineWorker owns a clone of the pattern for one scan goroutine.
type lineWorker struct {
	p    *upat.Pattern
	opts options
	g    upat.Groups
}

func (w *lineWorker) Line(out *bytes.Buffer, line string, num int) bool {
	var ok bool
	if w.opts.exact {
		ok = w.p.MatchExactly(line, &w.g)
	} else {
		ok = w.p.Search(line, &w.g)
	}
	if w.opts.invert {
		ok = !ok
	}

	if w.opts.count {
		return ok
	}
	if w.opts.replace != nil {
		w.prefix(out, num)
		out.WriteString(w.p.Replace(line, *w.opts.replace))
		out.WriteByte('\n')
		return ok
	}
	if !ok {
		return false
	}

	w.prefix(out, num)
	switch {
	case w.opts.invert:
		out.WriteString(line)
	case w.opts.groups:
		out.WriteString(strings.Join(w.g.Slice(), "\t"))
	case w.opts.only && w.opts.exact:
		out.WriteString(line)
	case w.opts.only:
		out.WriteString(w.p.FindSubstring(line, nil))
	default:
		out.WriteString(line)
	}
	out.WriteByte('\n')
	return true
}

func (w *lineWorker) prefix(out *bytes.Buffer, num int) {
	if w.opts.number {
		out.WriteString(strconv.Itoa(num))
		out.WriteByte(':')
	}
}

func (w *lineWorker) Close() {
	w.p.Release()
}

// errorExitf prints formatted error message and exits with code 2
func errorExitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "upat: "+format+"\n", args...)
	os.Exit(2)
}

// errorExit prints error and exits with code 2
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "upat: %v\n", err)
	os.Exit(2)
}
