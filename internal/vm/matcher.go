// Package vm executes compiled upat patterns.
//
// The matcher is a recursive backtracker that works chain by chain.
// Within one chain a quantified node may back off and retry the rest of
// the chain, and an alternation falls back to its secondary branch when
// the primary one (with everything after it) fails. A nested chain, the
// content of a [...] block, is matched once: its first success is final
// and nothing after the block can make it try another way.
//
// Snapshots are plain Context values, so restoring the cursor is using
// an older value; committed captures are restored by checkpoint.
package vm

import (
	"github.com/kolkov/upat/internal/ast"
	"github.com/kolkov/upat/internal/runtime"
)

// frame is the rest of an enclosing chain, resumed when an alternation
// branch runs out of nodes.
type frame struct {
	next *ast.Node
	up   *frame
}

// Matcher runs one compiled tree. It holds no per-invocation state, so
// one Matcher may be used by any number of goroutines.
type Matcher struct {
	root *ast.Node
}

// New returns a matcher for the tree rooted at root.
func New(root *ast.Node) *Matcher {
	return &Matcher{root: root}
}

// Match attempts a match starting at ctx and returns the end index of
// the first match found. Quantifiers are greedy, so this is the
// leftmost-greedy match.
//
// If anchored, the match must consume the whole input. The check is
// made once, on the first match found; only a root alternation gets a
// second chance: when its primary branch stops short of the end, the
// secondary branch is tried.
func (m *Matcher) Match(ctx Context, anchored bool) (end int, ok bool) {
	saved := ctx.Saved()
	if anchored && m.root != nil && m.root.IsAlternation() {
		if end, ok := m.branches(m.root, ctx); ok {
			return end, true
		}
		ctx.Restore(saved)
		return -1, false
	}

	c, ok := m.seq(m.root, ctx, nil)
	if !ok || (anchored && !c.AtEnd()) {
		ctx.Restore(saved)
		return -1, false
	}
	return c.pos, true
}

// branches tries the two branches of the root alternation n, each
// required to reach the end of input.
func (m *Matcher) branches(n *ast.Node, ctx Context) (int, bool) {
	m.checkAlternation(n)
	saved := ctx.Saved()
	rest := &frame{next: n.Next}
	for _, branch := range [2]*ast.Node{n.Primary, n.Secondary} {
		if c, ok := m.seq(branch, ctx, rest); ok && c.AtEnd() {
			return c.pos, true
		}
		ctx.Restore(saved)
	}
	return -1, false
}

// Find tries start offsets from ctx's position to the end of the input
// and returns the first match. canStart, if not nil, filters start
// runes. Captures are reset before every attempt. Find is for fixed
// inputs only.
func (m *Matcher) Find(ctx Context, canStart func(rune) bool) (start, end int, ok bool) {
	for i := ctx.pos; i <= ctx.Len(); i++ {
		if canStart != nil {
			r, _, ok := ctx.At(i).Next()
			if !ok || !canStart(r) {
				continue
			}
		}
		ctx.caps.Reset()
		if end, ok := m.Match(ctx.At(i), false); ok {
			return i, end, true
		}
	}
	ctx.caps.Reset()
	return -1, -1, false
}

// seq matches the chain starting at n and then the enclosing chains in
// up. It returns the context after the first success. On failure the
// captures are restored to what they were on entry.
func (m *Matcher) seq(n *ast.Node, c Context, up *frame) (Context, bool) {
	for n == nil {
		if up == nil {
			return c, true
		}
		n, up = up.next, up.up
	}

	switch n.Quant {
	case ast.QuantNone:
		saved := c.Saved()
		next, ok := m.one(n, c)
		if !ok {
			return c, false
		}
		return m.rest(n, next, up, saved)
	case ast.QuantPlus:
		return m.repeat(n, c, up, 1)
	case ast.QuantStar:
		return m.repeat(n, c, up, 0)
	case ast.QuantOptional:
		return m.optional(n, c, up)
	case ast.QuantAlternation:
		return m.alternation(n, c, up)
	case ast.QuantControl:
		return m.control(n, c, up)
	}
	panic(&InternalError{Node: n.String(), Message: "unknown quantifier tag"})
}

// rest continues after n from c. If the rest fails, captures are
// restored to checkpoint saved.
func (m *Matcher) rest(n *ast.Node, c Context, up *frame, saved int) (Context, bool) {
	end, ok := m.seq(n.Next, c, up)
	if !ok {
		c.Restore(saved)
	}
	return end, ok
}

// repeat matches n greedily, at least least times, then backs off
// one whole repetition at a time until the rest of the chain succeeds.
// A repetition that consumes nothing ends the loop.
func (m *Matcher) repeat(n *ast.Node, c Context, up *frame, least int) (Context, bool) {
	type step struct {
		c     Context
		saved int
	}
	steps := []step{{c, c.Saved()}}

	for {
		last := steps[len(steps)-1].c
		next, ok := m.one(n, last)
		if !ok {
			break
		}
		if next.pos == last.pos {
			if len(steps) <= least {
				steps = append(steps, step{next, next.Saved()})
			}
			break
		}
		steps = append(steps, step{next, next.Saved()})
	}

	for i := len(steps) - 1; i >= least; i-- {
		s := steps[i]
		s.c.Restore(s.saved)
		if end, ok := m.seq(n.Next, s.c, up); ok {
			return end, true
		}
	}
	c.Restore(steps[0].saved)
	return c, false
}

// optional tries n once and the rest after it; if that fails, the rest
// is retried without n.
func (m *Matcher) optional(n *ast.Node, c Context, up *frame) (Context, bool) {
	saved := c.Saved()
	if next, ok := m.one(n, c); ok {
		if end, ok := m.seq(n.Next, next, up); ok {
			return end, true
		}
		c.Restore(saved)
	}
	return m.rest(n, c, up, saved)
}

// alternation tries the primary branch followed by everything after
// the alternation, then the secondary branch the same way.
func (m *Matcher) alternation(n *ast.Node, c Context, up *frame) (Context, bool) {
	m.checkAlternation(n)
	saved := c.Saved()
	rest := &frame{next: n.Next, up: up}
	if end, ok := m.seq(n.Primary, c, rest); ok {
		return end, true
	}
	c.Restore(saved)
	return m.seq(n.Secondary, c, rest)
}

func (m *Matcher) checkAlternation(n *ast.Node) {
	if n.Primary == nil || n.Secondary == nil {
		panic(&InternalError{Node: n.String(), Message: "alternation missing a branch"})
	}
}

// control handles group markers. A committed group is dropped again
// when the rest of the match fails, so abandoned paths leave no
// captures.
func (m *Matcher) control(n *ast.Node, c Context, up *frame) (Context, bool) {
	switch n.Kind {
	case ast.KindGroupStart:
		return m.seq(n.Next, c.Mark(), up)
	case ast.KindGroupEnd:
		saved := c.Saved()
		return m.rest(n, c.Commit(), up, saved)
	}
	panic(&InternalError{Node: n.String(), Message: "control tag on non-group node"})
}

// one matches the content of n exactly once. A block takes the first
// success of its inner chain.
func (m *Matcher) one(n *ast.Node, c Context) (Context, bool) {
	switch n.Kind {
	case ast.KindLiteral, ast.KindMeta, ast.KindSet:
		r, next, ok := c.Next()
		if !ok || !runtime.MatchLeaf(n, r) {
			return c, false
		}
		return next, true
	case ast.KindBlock:
		return m.seq(n.Inner, c, nil)
	}
	panic(&InternalError{Node: n.String(), Message: "unexpected node kind"})
}
