// Package cam implements the categorical abstract machine: a tree-walking
// evaluator that runs an ast.Node against an initial environment by driving
// the ast.Visitor traversal protocol directly. Unlike internal/optimizer,
// which rewrites a tree via plain recursion, the CAM's Comp evaluation
// order IS the traversal order ast.Comp.Accept already implements, so there
// is nothing to reimplement — the visitor hooks are the machine.
package cam

import (
	"fmt"

	"github.com/camwell/cam/internal/ast"
	"github.com/camwell/cam/internal/config"
	"github.com/camwell/cam/internal/value"
)

// Error reports a runtime type violation: an instruction ran against an
// environment shape it doesn't accept (e.g. Fst against a non-pair). These
// are the machine's "stuck" cases — programs that parsed and optimized
// cleanly but reach an instruction whose precondition the current value
// doesn't satisfy.
type Error struct {
	Instruction string
	Got         value.Value
}

func (e *Error) Error() string {
	return fmt.Sprintf("cam: %s: unexpected environment shape %s (%s)", e.Instruction, e.Got.Kind(), e.Got.Inspect())
}

// CAM is a single evaluation run. It implements ast.Visitor, threading the
// current value through reg the way the machine's single environment
// register does; Pair's two branches share an explicit save/restore stack
// since both must run against the same incoming environment: Pair(f,g)(Γ)
// = (f(Γ), g(Γ)).
type CAM struct {
	ast.BaseVisitor

	cfg config.Config
	reg value.Value
	err error

	envStack  []value.Value
	leftStack []value.Value
}

// New builds a CAM ready to Run against an AST rooted at a node produced by
// internal/parser and (typically) rewritten by internal/optimizer.
func New(cfg config.Config) *CAM {
	return &CAM{cfg: cfg}
}

// Run evaluates root against the initial environment env. A top-level
// program starts from value.ENil{}; internal/rpcserver and tests may supply
// another environment directly.
func (c *CAM) Run(root ast.Node, env value.Value) (value.Value, error) {
	c.reg = env
	c.err = nil
	c.envStack = c.envStack[:0]
	c.leftStack = c.leftStack[:0]

	if r := root.Accept(c); r == ast.Abort && c.err == nil {
		c.err = fmt.Errorf("cam: aborted with no recorded error")
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.reg, nil
}

func (c *CAM) fail(instr string) ast.Result {
	c.err = &Error{Instruction: instr, Got: c.reg}
	return ast.Abort
}

// VisitId leaves reg unchanged: Id(Γ) = Γ.
func (c *CAM) VisitId(*ast.Id) ast.Result { return ast.Continue }

// VisitQuote ignores the incoming environment: Quote(n)(Γ) = n.
func (c *CAM) VisitQuote(n *ast.Quote) ast.Result {
	c.reg = value.EInt{N: n.N}
	return ast.Continue
}

// VisitFst projects the left component: Fst(Γ) = Γ.left, requiring Γ to be
// a pair.
func (c *CAM) VisitFst(*ast.Fst) ast.Result {
	p, ok := c.reg.(value.EPair)
	if !ok {
		return c.fail("Fst")
	}
	c.reg = p.Left
	return ast.Continue
}

// VisitSnd projects the right component: Snd(Γ) = Γ.right.
func (c *CAM) VisitSnd(*ast.Snd) ast.Result {
	p, ok := c.reg.(value.EPair)
	if !ok {
		return c.fail("Snd")
	}
	c.reg = p.Right
	return ast.Continue
}

// VisitPlus requires Γ = (EInt, EInt) and sums them, honoring
// cfg.IntegerOverflowPolicy the same way internal/parser's numeral literal
// does, so both integer-producing instructions agree on overflow behavior.
func (c *CAM) VisitPlus(*ast.Plus) ast.Result {
	p, ok := c.reg.(value.EPair)
	if !ok {
		return c.fail("Plus")
	}
	l, lok := p.Left.(value.EInt)
	r, rok := p.Right.(value.EInt)
	if !lok || !rok {
		return c.fail("Plus")
	}
	sum, overflowed := addOverflow(l.N, r.N)
	if overflowed {
		switch c.cfg.IntegerOverflowPolicy {
		case config.OverflowWrap:
			// sum already holds the wrapped value.
		case config.OverflowSaturate:
			sum = maxInt64
		default:
			c.err = fmt.Errorf("cam: Plus: %d + %d overflows int64", l.N, r.N)
			return ast.Abort
		}
	}
	c.reg = value.EInt{N: sum}
	return ast.Continue
}

const maxInt64 = 1<<63 - 1

// addOverflow sums two non-negative int64s. EInt values are always
// non-negative, so the only way this can overflow int64 is by wrapping into
// a negative sum — that's the whole check.
func addOverflow(a, b int64) (int64, bool) {
	sum := a + b
	return sum, sum < 0
}

// VisitApp requires Γ = (EClosure, v) and evaluates the closure's captured
// code against (closure.Env, v), run by recursively driving the same
// visitor over closure.Code.
func (c *CAM) VisitApp(*ast.App) ast.Result {
	p, ok := c.reg.(value.EPair)
	if !ok {
		return c.fail("App")
	}
	closure, ok := p.Left.(value.EClosure)
	if !ok {
		return c.fail("App")
	}
	c.reg = value.EPair{Left: closure.Env, Right: p.Right}
	return closure.Code.Accept(c)
}

// PreCur captures the incoming environment into a closure without
// descending into the body: Cur(f)(Γ) is the value "v ↦ f((Γ,v))", not f
// itself run against anything yet. Returning ast.Skip stops ast.Cur.Accept
// from visiting Body until App later drives it explicitly.
func (c *CAM) PreCur(n *ast.Cur) ast.Result {
	c.reg = value.EClosure{Env: c.reg, Code: n.Body}
	return ast.Skip
}

// PrePair saves the incoming environment so both Left and Right can each
// run against it (Pair(f,g)(Γ) = (f(Γ), g(Γ))); ast.Pair's generic
// traversal alone would let Right see Left's result instead of Γ.
func (c *CAM) PrePair(*ast.Pair) ast.Result {
	c.envStack = append(c.envStack, c.reg)
	return ast.Continue
}

// InPair runs between Left and Right: it stashes Left's result and resets
// reg to the saved incoming environment before Right is visited.
func (c *CAM) InPair(*ast.Pair) ast.Result {
	c.leftStack = append(c.leftStack, c.reg)
	c.reg = c.envStack[len(c.envStack)-1]
	return ast.Continue
}

// PostPair combines the two branch results into the pair value and pops
// both save stacks.
func (c *CAM) PostPair(*ast.Pair) ast.Result {
	left := c.leftStack[len(c.leftStack)-1]
	c.leftStack = c.leftStack[:len(c.leftStack)-1]
	c.envStack = c.envStack[:len(c.envStack)-1]
	c.reg = value.EPair{Left: left, Right: c.reg}
	return ast.Continue
}

// PreComp and PostComp need no bookkeeping: ast.Comp.Accept already visits
// children last-index-first, threading reg through them in exactly the
// order Comp(f1,...,fk)(Γ) = f1(f2(...fk(Γ))) requires.
