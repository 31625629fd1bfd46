// Package parser compiles upat pattern source into an ast tree.
//
// Each nesting level ([...] and (...)) is compiled by its own call with
// the closing token it expects. A level keeps its head, its tail and an
// alternation still waiting for its secondary branch:
//
//	a b | c d   =>   Operand(|)
//	                 ├── primary:   a -> b
//	                 └── secondary: c -> d
//
// Alternation therefore has the lowest precedence and nests to the left:
// a|b|c is (a|b)|c.
package parser

import (
	"unicode/utf8"

	"github.com/kolkov/upat/internal/ast"
	"github.com/kolkov/upat/internal/lexer"
	"github.com/kolkov/upat/internal/runtime"
	"github.com/kolkov/upat/internal/token"
)

// Parser holds the state of one compilation.
type Parser struct {
	lexer *lexer.Lexer // Lexer instance
	tok   lexer.Token  // Current token
}

// level is the tree under construction for one nesting level.
type level struct {
	root *ast.Node // Head of the level
	tail *ast.Node // Last appended node; quantifiers attach here
	open *ast.Node // Alternation waiting for its secondary branch
}

// Parse compiles a pattern. An empty pattern yields a nil tree, which
// matches the empty string.
func Parse(src string) (*ast.Node, error) {
	p := &Parser{
		lexer: lexer.New(src),
	}
	p.next() // Initialize first token

	root, err := p.parseLevel(token.EOF, token.NoPos)
	if err != nil {
		return nil, err
	}
	if err := verify(root); err != nil {
		return nil, err
	}
	return simplify(root), nil
}

// next advances to the next token.
func (p *Parser) next() {
	p.tok = p.lexer.Scan()
}

// parseLevel compiles tokens until closer. openPos is the position of
// the opening delimiter, used for unbalanced errors.
func (p *Parser) parseLevel(closer token.Token, openPos token.Position) (*ast.Node, *ParseError) {
	var lv level

	for {
		tok := p.tok
		switch tok.Type {
		case token.EOF:
			if closer != token.EOF {
				return nil, errorf(openPos, "unbalanced '%s'", opener(closer))
			}
			return lv.finish()

		case token.RBRACKET, token.RPAREN:
			if tok.Type != closer {
				return nil, errorf(tok.Pos, "unbalanced '%s'", tok.Type)
			}
			p.next()
			return lv.finish()

		case token.ILLEGAL:
			return nil, errorf(tok.Pos, "%s", tok.Value)

		case token.LITERAL:
			r, _ := utf8.DecodeRuneInString(tok.Value)
			lv.append(ast.NewLiteral(r, tok.Pos))

		case token.STRING:
			for _, r := range tok.Value {
				lv.append(ast.NewLiteral(r, tok.Pos))
			}

		case token.SET:
			lv.append(ast.NewSet(parseSet(tok.Value), tok.Pos))

		case token.META:
			r, _ := utf8.DecodeRuneInString(tok.Value)
			if runtime.IsClassLetter(r) {
				lv.append(ast.NewMeta(r, tok.Pos))
			} else {
				lv.append(ast.NewLiteral(r, tok.Pos))
			}

		case token.LBRACKET:
			p.next()
			inner, err := p.parseLevel(token.RBRACKET, tok.Pos)
			if err != nil {
				return nil, err
			}
			lv.append(ast.NewBlock(inner, tok.Pos))
			continue // parseLevel consumed the ']'

		case token.LPAREN:
			p.next()
			inner, err := p.parseLevel(token.RPAREN, tok.Pos)
			if err != nil {
				return nil, err
			}
			lv.append(group(inner, tok.Pos, p.lastPos()))
			continue // parseLevel consumed the ')'

		case token.PLUS, token.STAR, token.QUESTION:
			if err := lv.quantify(tok); err != nil {
				return nil, err
			}

		case token.PIPE:
			if err := lv.alternate(tok.Pos); err != nil {
				return nil, err
			}

		default:
			return nil, errorf(tok.Pos, "unexpected %s", tok.Type)
		}
		p.next()
	}
}

// lastPos returns the position just before the current token, which
// after a nested level is the position of its closing delimiter.
func (p *Parser) lastPos() token.Position {
	pos := p.tok.Pos
	if pos.Column > 1 {
		pos.Column--
		pos.Offset--
	}
	return pos
}

func opener(closer token.Token) string {
	if closer == token.RBRACKET {
		return "["
	}
	return "("
}

// group splices inner between capture markers. When inner is an
// alternation, the end marker becomes the continuation shared by both
// branches.
func group(inner *ast.Node, start, end token.Position) *ast.Node {
	gs := ast.NewGroupStart(start)
	ge := ast.NewGroupEnd(end)
	switch {
	case inner == nil:
		gs.Next = ge
	case inner.IsAlternation():
		gs.Next = inner
		inner.Next = ge
	default:
		gs.Next = inner
		inner.Tail().Next = ge
	}
	return gs
}

// append adds the chain starting at n to the level.
func (lv *level) append(n *ast.Node) {
	switch {
	case lv.root == nil:
		lv.root = n
	case lv.open != nil:
		lv.open.Secondary = n
		lv.open = nil
	default:
		lv.tail.Next = n
	}
	lv.tail = n.Tail()
}

// quantify attaches a quantifier to the level's tail.
func (lv *level) quantify(tok lexer.Token) *ParseError {
	if lv.tail == nil || lv.open != nil {
		return errorf(tok.Pos, "quantifier '%s' has no preceding node", tok.Type)
	}
	if lv.tail.Quant != ast.QuantNone {
		return errorf(tok.Pos, "quantifier '%s' applied to node already tagged '%s'", tok.Type, lv.tail.Quant)
	}
	switch tok.Type {
	case token.PLUS:
		lv.tail.Quant = ast.QuantPlus
	case token.STAR:
		lv.tail.Quant = ast.QuantStar
	case token.QUESTION:
		lv.tail.Quant = ast.QuantOptional
	}
	return nil
}

// alternate restructures the level's head into an alternation whose
// primary branch is everything compiled so far.
func (lv *level) alternate(pos token.Position) *ParseError {
	if lv.root == nil {
		return errorf(pos, "alternation has no preceding node")
	}
	if lv.open != nil {
		return errorf(pos, "double alternation")
	}
	primary := *lv.root
	if lv.tail == lv.root {
		lv.tail = &primary
	}
	*lv.root = ast.Node{
		Kind:    ast.KindOperand,
		Quant:   ast.QuantAlternation,
		Primary: &primary,
		Pos:     pos,
	}
	lv.open = lv.root
	return nil
}

func (lv *level) finish() (*ast.Node, *ParseError) {
	if lv.open != nil {
		return nil, errorf(lv.open.Pos, "alternation is missing its second operand")
	}
	return lv.root, nil
}

// parseSet builds a character set from the raw body of <...>.
func parseSet(body string) *ast.CharSet {
	set := ast.NewCharSet()
	negated := false
	if len(body) > 0 && body[0] == '^' {
		negated = true
		body = body[1:]
	}

	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '$' && i+1 < len(runes) {
			i++
			if c := runes[i]; runtime.IsClassLetter(c) {
				set.Meta(c)
			} else {
				set.Mark(c)
			}
			continue
		}
		set.Mark(r)
	}
	set.Negate(negated)
	return set
}

// verify checks the structure of a compiled tree: every alternation
// needs both operands.
func verify(root *ast.Node) *ParseError {
	var err *ParseError
	ast.Walk(root, func(n *ast.Node) bool {
		if err != nil {
			return false
		}
		if n.IsAlternation() && (n.Primary == nil || n.Secondary == nil) {
			err = errorf(n.Pos, "alternation is missing an operand")
			return false
		}
		return true
	})
	return err
}

// simplify unwraps a root that is a single plain block.
func simplify(root *ast.Node) *ast.Node {
	if root != nil && root.Kind == ast.KindBlock && root.Quant == ast.QuantNone && root.Next == nil {
		return root.Inner
	}
	return root
}
