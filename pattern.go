package upat

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kolkov/upat/internal/ast"
	"github.com/kolkov/upat/internal/parser"
	"github.com/kolkov/upat/internal/runtime"
	"github.com/kolkov/upat/internal/vm"
)

// Version is the upat version string.
const Version = "0.1.0"

// tree is a compiled pattern shared by a Pattern and its clones.
// Everything but refs is immutable until the last reference is
// released.
type tree struct {
	source  string
	root    *ast.Node
	matcher *vm.Matcher
	filter  *runtime.Prefilter // nil when disabled
	refs    atomic.Int32
}

func (t *tree) retain() *tree {
	t.refs.Add(1)
	return t
}

func (t *tree) release() {
	if t.refs.Add(-1) == 0 {
		t.root = nil
		t.matcher = nil
		t.filter = nil
	}
}

// Pattern is a compiled pattern.
//
// A Pattern is safe for concurrent use. Match methods share the
// compiled tree under a read lock; Recompile and Release take the
// write lock. Clone returns an independent Pattern sharing the same
// tree, so copies cost a reference count increment.
//
// A reset Pattern (after Release, or a failed Recompile) matches
// nothing.
type Pattern struct {
	mu     sync.RWMutex
	tree   *tree
	config Config
}

// Compile parses a pattern with the default configuration.
//
// Example:
//
//	p, err := upat.Compile(`($d+)"-"($d+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var g upat.Groups
//	if p.MatchExactly("10-20", &g) {
//	    lo, _ := g.Int(0)
//	    hi, _ := g.Int(1)
//	}
func Compile(src string) (*Pattern, error) {
	return CompileWithConfig(src, Config{})
}

// CompileWithConfig parses a pattern with the given configuration.
func CompileWithConfig(src string, config Config) (*Pattern, error) {
	config.applyDefaults()
	t, err := compileTree(src, config)
	if err != nil {
		return nil, err
	}
	return &Pattern{tree: t, config: config}, nil
}

// MustCompile is like Compile but panics if the pattern is invalid.
// It simplifies safe initialization of global variables.
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

func compileTree(src string, config Config) (*tree, error) {
	root, err := parser.Parse(src)
	if err != nil {
		// Convert parser error to public type
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			return nil, &SyntaxError{
				Pattern: src,
				Offset:  pe.Pos.Offset,
				Column:  pe.Pos.Column,
				Message: pe.Message,
			}
		}
		return nil, &SyntaxError{Pattern: src, Message: err.Error()}
	}

	t := &tree{source: src, root: root, matcher: vm.New(root)}
	if !config.DisablePrefilter {
		t.filter = runtime.NewPrefilter(root)
	}
	t.refs.Store(1)
	return t, nil
}

// Recompile replaces the compiled pattern with src. The previous tree
// is released; clones keep it alive for themselves. On error the
// Pattern is left reset.
func (p *Pattern) Recompile(src string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tree != nil {
		p.tree.release()
		p.tree = nil
	}
	t, err := compileTree(src, p.config)
	if err != nil {
		return err
	}
	p.tree = t
	return nil
}

// Clone returns a new Pattern sharing p's compiled tree.
func (p *Pattern) Clone() *Pattern {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c := &Pattern{config: p.config}
	if p.tree != nil {
		c.tree = p.tree.retain()
	}
	return c
}

// Release drops p's reference to the compiled tree and resets p.
// The tree is freed when its last holder releases it.
func (p *Pattern) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tree != nil {
		p.tree.release()
		p.tree = nil
	}
}

// Refs returns the number of Patterns sharing p's tree, or 0 if p is
// reset.
func (p *Pattern) Refs() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.tree == nil {
		return 0
	}
	return int(p.tree.refs.Load())
}

// String returns the source of the pattern, or "" if p is reset.
func (p *Pattern) String() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.tree == nil {
		return ""
	}
	return p.tree.source
}

// Dump writes the compiled tree to w, one node per line, followed by
// the prefilters built for it.
func (p *Pattern) Dump(w io.Writer) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.tree == nil {
		_, err := io.WriteString(w, "<reset>\n")
		return err
	}
	if err := ast.NewPrinter(w).Print(p.tree.root); err != nil {
		return err
	}
	if f := p.tree.filter.Regex(); f != nil {
		if _, err := fmt.Fprintf(w, "regex prefilter: %s\n", f.Expr()); err != nil {
			return err
		}
	}
	if f := p.tree.filter.Literal(); f != nil {
		if _, err := fmt.Fprintf(w, "literal prefilter: %q\n", f.Literals()); err != nil {
			return err
		}
	}
	return nil
}

// rethrow converts a matcher invariant panic into *InternalError.
func rethrow() {
	if r := recover(); r != nil {
		if ie, ok := r.(*vm.InternalError); ok {
			panic(&InternalError{Message: ie.Error()})
		}
		panic(r)
	}
}

// MatchExactly reports whether the whole input matches. Captures are
// stored in g, which may be nil.
func (p *Pattern) MatchExactly(input string, g *Groups) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	caps := g.captures()
	t := p.tree
	if t == nil || t.filter.CanRejectExact(input) {
		return false
	}

	defer rethrow()
	_, ok := t.matcher.Match(vm.NewContext([]rune(input), caps), true)
	return ok
}

// Search reports whether any substring of input matches. Captures of
// the leftmost match are stored in g, which may be nil.
func (p *Pattern) Search(input string, g *Groups) bool {
	return p.FindIndex(input, g) != nil
}

// FindSubstring returns the leftmost match in input, or "" if there is
// none. Captures are stored in g, which may be nil.
func (p *Pattern) FindSubstring(input string, g *Groups) string {
	loc := p.FindIndex(input, g)
	if loc == nil {
		return ""
	}
	return input[loc[0]:loc[1]]
}

// FindIndex returns the byte offsets [start, end) of the leftmost
// match in input, or nil if there is none. Captures are stored in g,
// which may be nil.
func (p *Pattern) FindIndex(input string, g *Groups) []int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	caps := g.captures()
	t := p.tree
	if t == nil || t.filter.CanReject(input) {
		return nil
	}

	defer rethrow()
	runes := []rune(input)
	start, end, ok := t.find(vm.NewContext(runes, caps))
	if !ok {
		return nil
	}
	offs := byteOffsets(input, len(runes))
	return []int{offs[start], offs[end]}
}

// find runs the matcher from ctx's position, using the start filter.
func (t *tree) find(ctx vm.Context) (start, end int, ok bool) {
	var canStart func(rune) bool
	if sf := t.filter.Start(); sf != nil {
		canStart = sf.CanStart
	}
	return t.matcher.Find(ctx, canStart)
}

// FindAll returns successive non-overlapping matches in input. If
// n >= 0, at most n matches are returned. An empty match advances the
// scan by one rune.
func (p *Pattern) FindAll(input string, n int) []string {
	locs := p.findAllIndex(input, n)
	if locs == nil {
		return nil
	}
	out := make([]string, len(locs))
	for i, loc := range locs {
		out[i] = input[loc[0]:loc[1]]
	}
	return out
}

func (p *Pattern) findAllIndex(input string, n int) [][2]int {
	if n == 0 {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	t := p.tree
	if t == nil || t.filter.CanReject(input) {
		return nil
	}

	defer rethrow()
	runes := []rune(input)
	offs := byteOffsets(input, len(runes))
	ctx := vm.NewContext(runes, nil)

	var locs [][2]int
	for pos := 0; pos <= len(runes) && (n < 0 || len(locs) < n); {
		start, end, ok := t.find(ctx.At(pos))
		if !ok {
			break
		}
		locs = append(locs, [2]int{offs[start], offs[end]})
		if end == start {
			pos = end + 1
		} else {
			pos = end
		}
	}
	return locs
}

// MatchStream matches a prefix of the text formed by prefix followed
// by the runes of s, and returns the matched text, prefix included.
// Runes are pulled from s on demand. After a match s is positioned
// right after the matched text; after a failure every rune pulled is
// pushed back. Runes buffered inside s beyond what it hands out, such
// as in a reader's buffer, are outside this guarantee.
func (p *Pattern) MatchStream(s Stream, prefix string, g *Groups) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	caps := g.captures()
	t := p.tree
	if t == nil {
		return ""
	}

	defer rethrow()
	ctx := vm.NewStreamContext(s, prefix, caps)
	end, ok := t.matcher.Match(ctx, false)
	if !ok {
		ctx.Unread(0)
		return ""
	}
	ctx.Unread(end)
	return ctx.Text(0, end)
}

// Replace returns a copy of input with every match replaced by repl.
// The scan tries each rune offset in turn: a match is replaced and
// the scan resumes at its end; an empty match inserts repl before the
// current rune; otherwise the rune is copied.
func (p *Pattern) Replace(input, repl string) string {
	return p.ReplaceFunc(input, func(string) string { return repl })
}

// ReplaceFunc is like Replace but calls repl with each matched text.
func (p *Pattern) ReplaceFunc(input string, repl func(string) string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	t := p.tree
	if t == nil || t.filter.CanReject(input) {
		return input
	}

	defer rethrow()
	runes := []rune(input)
	offs := byteOffsets(input, len(runes))
	ctx := vm.NewContext(runes, nil)
	sf := t.filter.Start()

	var sb strings.Builder
	sb.Grow(len(input))
	for i := 0; i < len(runes); {
		if sf == nil || sf.CanStart(runes[i]) {
			if end, ok := t.matcher.Match(ctx.At(i), false); ok {
				sb.WriteString(repl(input[offs[i]:offs[end]]))
				if end > i {
					i = end
					continue
				}
			}
		}
		sb.WriteString(input[offs[i]:offs[i+1]])
		i++
	}
	return sb.String()
}

// Split slices input into substrings separated by matches. If n >= 0,
// at most n substrings are returned; the last holds the unsplit
// remainder. The semantics follow regexp.Split.
func (p *Pattern) Split(input string, n int) []string {
	if n == 0 {
		return nil
	}
	if input == "" {
		return []string{""}
	}

	locs := p.findAllIndex(input, -1)
	out := make([]string, 0, len(locs)+1)

	beg, end := 0, 0
	for _, loc := range locs {
		if n > 0 && len(out) == n-1 {
			break
		}
		end = loc[0]
		if loc[1] != 0 {
			out = append(out, input[beg:end])
		}
		beg = loc[1]
	}
	if end != len(input) {
		out = append(out, input[beg:])
	}
	return out
}

// byteOffsets maps rune indices of input to byte offsets. The result
// has n+1 entries; the last is len(input). Invalid bytes count as one
// rune each, as in the []rune conversion.
func byteOffsets(input string, n int) []int {
	offs := make([]int, 0, n+1)
	for i := range input {
		offs = append(offs, i)
	}
	return append(offs, len(input))
}
