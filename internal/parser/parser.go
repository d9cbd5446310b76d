// Package parser implements a recursive-descent parser over a three-
// production grammar: abstractions, sums, and applications of an
// abstraction to exactly as many arguments as it binds names. Variables are
// resolved against a lexical Scope into De Bruijn indices as they're parsed,
// so the AST parser produces is already closed — no separate resolution
// pass runs afterward.
//
// Concrete syntax, rendered over the LBRACK/RBRACK/LAMBDA/PLUS/VAR/NUM token
// set of internal/token:
//
//	expr  ::= '(' 'lambda' '(' VAR+ ')' expr ')'          -- abstraction
//	        | '(' '+' expr expr expr* ')'                 -- sum, n >= 2 operands
//	        | '(' '(' 'lambda' '(' VAR+ ')' expr ')' expr{n} ')'
//	                                                       -- application of an
//	                                                       --   n-ary abstraction
//	                                                       --   to exactly n args
//	        | VAR
//	        | NUM
//
// The application operator must be syntactically an abstraction: `(f 5)`
// where `f` is a variable is a syntax error, not a call through a bound
// name.
package parser

import (
	"math"
	"math/big"
	"strconv"

	"github.com/camwell/cam/internal/ast"
	"github.com/camwell/cam/internal/config"
	"github.com/camwell/cam/internal/diagnostics"
	"github.com/camwell/cam/internal/lexer"
	"github.com/camwell/cam/internal/token"
)

// Parser consumes a lexer.TokenStream and produces a closed AST (the
// combinators of internal/ast) with every variable resolved to a De Bruijn
// index. A single malformed or unbound-variable input panics with a
// *diagnostics.DiagnosticError, which Parse recovers into an error return:
// the first diagnostic raised anywhere in the call tree wins, and parsing
// stops there rather than collecting further errors.
type Parser struct {
	stream *lexer.TokenStream
	cur    token.Token
	scope  Scope
	cfg    config.Config
}

// New constructs a Parser over stream, applying cfg's integer-overflow
// policy to numeric literals.
func New(stream *lexer.TokenStream, cfg config.Config) *Parser {
	p := &Parser{stream: stream, cfg: cfg}
	p.advance()
	return p
}

// Parse consumes the entire stream as a single expr and returns its AST.
// Trailing tokens past the expression are a parse error, same as any other
// unexpected token.
func (p *Parser) Parse() (root ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(*diagnostics.DiagnosticError); ok {
				err = de
				return
			}
			panic(r)
		}
	}()

	root = p.parseExpr()
	if p.cur.Kind != token.EOF {
		panic(diagnostics.UnexpectedToken(p.cur))
	}
	return root, nil
}

func (p *Parser) advance() {
	p.cur = p.stream.Next()
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.cur.Kind == token.EOF {
		panic(diagnostics.UnexpectedEOF(p.cur))
	}
	if p.cur.Kind == token.ILLEGAL {
		panic(diagnostics.IllegalToken(p.cur))
	}
	if p.cur.Kind != k {
		panic(diagnostics.UnexpectedToken(p.cur))
	}
	tok := p.cur
	p.advance()
	return tok
}

func (p *Parser) parseExpr() ast.Node {
	switch p.cur.Kind {
	case token.EOF:
		panic(diagnostics.UnexpectedEOF(p.cur))
	case token.ILLEGAL:
		panic(diagnostics.IllegalToken(p.cur))
	case token.VAR:
		tok := p.cur
		p.advance()
		return p.resolveVar(tok)
	case token.NUM:
		tok := p.cur
		p.advance()
		return p.parseNum(tok)
	case token.LBRACK:
		p.advance()
		return p.parseParen()
	default:
		panic(diagnostics.UnexpectedToken(p.cur))
	}
}

func (p *Parser) parseParen() ast.Node {
	switch p.cur.Kind {
	case token.EOF:
		panic(diagnostics.UnexpectedEOF(p.cur))
	case token.LAMBDA:
		p.advance()
		return p.parseAbstraction()
	case token.PLUS:
		p.advance()
		return p.parseSum()
	default:
		return p.parseApplication()
	}
}

// parseAbstraction parses '(' VAR+ ')' expr ')' (the opening '(' of the
// abstraction and the 'lambda' keyword are already consumed) and emits one
// ast.Cur per bound name, outermost-bound first. Used where only the
// resulting AST matters, not the arity (a bare, unapplied abstraction
// expression).
func (p *Parser) parseAbstraction() ast.Node {
	node, _ := p.parseAbstractionWithArity()
	return node
}

// parseAbstractionWithArity is parseAbstraction plus the bound-name count,
// needed by parseApplication to know exactly how many operands to read:
// parse the abstraction, learn its arity n, then read exactly n further
// expressions.
func (p *Parser) parseAbstractionWithArity() (ast.Node, int) {
	p.expect(token.LBRACK)

	var names []string
	for p.cur.Kind == token.VAR {
		names = append(names, p.cur.Literal)
		p.advance()
	}
	if len(names) == 0 {
		panic(diagnostics.UnexpectedToken(p.cur))
	}
	p.expect(token.RBRACK)

	for _, n := range names {
		p.scope.Push(n)
	}
	body := p.parseExpr()
	for range names {
		p.scope.Pop()
	}
	p.expect(token.RBRACK)

	node := body
	for i := len(names) - 1; i >= 0; i-- {
		node = &ast.Cur{Body: node}
	}
	return node, len(names)
}

// parseSum parses '+' expr expr expr* ')' (n >= 2 operands) into a
// left-associative accumulator: each additional operand folds in via
// Comp(App, Pair(Cur(Comp(Plus, Snd)), Pair(running, next))), applying a sum
// function to the running total and the next operand rather than growing an
// n-ary Plus node.
func (p *Parser) parseSum() ast.Node {
	first := p.parseExpr()
	second := p.parseExpr()
	r := foldSum(first, second)

	for p.cur.Kind != token.RBRACK {
		if p.cur.Kind == token.EOF {
			panic(diagnostics.UnexpectedEOF(p.cur))
		}
		next := p.parseExpr()
		r = foldSum(r, next)
	}
	p.expect(token.RBRACK)
	return r
}

func foldSum(running, next ast.Node) ast.Node {
	return &ast.Comp{Children: []ast.Node{
		&ast.App{},
		&ast.Pair{
			Left: &ast.Cur{Body: &ast.Comp{Children: []ast.Node{&ast.Plus{}, &ast.Snd{}}}},
			Right: &ast.Pair{
				Left:  running,
				Right: next,
			},
		},
	}}
}

// parseApplication parses 'abs' expr{n} ')', where 'abs' is itself a
// parenthesized abstraction — not an arbitrary expr. `(f 5)` is a syntax
// error, not an application of the variable f, since f doesn't open a
// nested '(lambda ...)'. Learns the abstraction's arity n, then requires
// exactly n further operands before the closing ')'; too few or too many is
// a syntax error.
func (p *Parser) parseApplication() ast.Node {
	p.expect(token.LBRACK)
	p.expect(token.LAMBDA)
	head, arity := p.parseAbstractionWithArity()

	args := make([]ast.Node, 0, arity)
	for i := 0; i < arity; i++ {
		if p.cur.Kind == token.EOF {
			panic(diagnostics.UnexpectedEOF(p.cur))
		}
		if p.cur.Kind == token.RBRACK {
			panic(diagnostics.UnexpectedToken(p.cur))
		}
		args = append(args, p.parseExpr())
	}
	p.expect(token.RBRACK)

	a := head
	for _, arg := range args {
		a = &ast.Comp{Children: []ast.Node{
			&ast.App{},
			&ast.Pair{Left: a, Right: arg},
		}}
	}
	return a
}

// resolveVar emits Comp(Snd, Fst, …, Fst) with exactly k copies of Fst,
// where k is tok's De Bruijn index.
func (p *Parser) resolveVar(tok token.Token) ast.Node {
	k, ok := p.scope.Resolve(tok.Literal)
	if !ok {
		panic(diagnostics.UnboundVariable(tok, tok.Literal))
	}
	children := make([]ast.Node, 0, k+1)
	children = append(children, &ast.Snd{})
	for i := 0; i < k; i++ {
		children = append(children, &ast.Fst{})
	}
	return &ast.Comp{Children: children}
}

// parseNum parses a non-negative integer literal into ast.Quote, applying
// cfg.IntegerOverflowPolicy when the literal does not fit an int64.
func (p *Parser) parseNum(tok token.Token) ast.Node {
	n, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err == nil {
		return &ast.Quote{N: n}
	}

	switch p.cfg.IntegerOverflowPolicy {
	case config.OverflowSaturate:
		return &ast.Quote{N: math.MaxInt64}
	case config.OverflowWrap:
		bi, ok := new(big.Int).SetString(tok.Literal, 10)
		if !ok {
			panic(diagnostics.NewError(diagnostics.ErrInternal, tok, "malformed integer literal: %s", tok.Literal))
		}
		mod := new(big.Int).Lsh(big.NewInt(1), 64)
		bi.Mod(bi, mod)
		return &ast.Quote{N: int64(bi.Uint64())}
	default:
		panic(diagnostics.NewError(diagnostics.ErrIntegerOverflow, tok, "integer literal out of range: %s", tok.Literal))
	}
}
