// Package value implements the runtime value algebra: the four value kinds
// the CAM evaluator's environment register and operand stack hold. Every
// kind exposes Kind() and Inspect() so the evaluator and the CLI driver can
// report a result without a type switch at the call site.
package value

import (
	"fmt"
	"strings"

	"github.com/camwell/cam/internal/ast"
)

// Kind discriminates the four runtime value shapes.
type Kind string

const (
	IntKind     Kind = "Int"
	PairKind    Kind = "Pair"
	ClosureKind Kind = "Closure"
	NilKind     Kind = "Nil"
)

// Value is any of EInt, EPair, EClosure, ENil.
type Value interface {
	Kind() Kind
	Inspect() string
}

// EInt is a non-negative machine integer, the result of Quote and Plus.
type EInt struct{ N int64 }

func (EInt) Kind() Kind           { return IntKind }
func (v EInt) Inspect() string    { return fmt.Sprintf("%d", v.N) }

// EPair is an ordered pair of values, the environment shape Pair/Cur build
// and Fst/Snd/App consume.
type EPair struct{ Left, Right Value }

func (EPair) Kind() Kind { return PairKind }
func (v EPair) Inspect() string {
	return fmt.Sprintf("(%s, %s)", v.Left.Inspect(), v.Right.Inspect())
}

// EClosure pairs a captured environment with a Cur's body. Code is a
// non-owning reference into the program AST: the CAM never copies or
// mutates AST nodes at runtime, only the env chain.
type EClosure struct {
	Env  Value
	Code ast.Node
}

func (EClosure) Kind() Kind        { return ClosureKind }
func (v EClosure) Inspect() string { return fmt.Sprintf("<closure %s>", ast.String(v.Code)) }

// ENil is the initial environment a top-level program evaluates against.
type ENil struct{}

func (ENil) Kind() Kind        { return NilKind }
func (ENil) Inspect() string   { return "nil" }

// Equal reports whether a and b denote the same value tree. EClosure
// equality compares the captured environment and the AST node identity of
// Code (closures over structurally identical but distinct code are not
// equal) — used by tests, not by the evaluator itself.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case EInt:
		y, ok := b.(EInt)
		return ok && x.N == y.N
	case EPair:
		y, ok := b.(EPair)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case ENil:
		_, ok := b.(ENil)
		return ok
	case EClosure:
		y, ok := b.(EClosure)
		return ok && Equal(x.Env, y.Env) && ast.Equal(x.Code, y.Code)
	default:
		return false
	}
}

// Inspect renders a value the way cmd/cam prints an evaluation result:
// EInt and ENil inline, EPair parenthesized and comma-joined recursively.
// Kept as a package-level wrapper so callers needn't hold a Value to format
// one.
func Inspect(v Value) string {
	var b strings.Builder
	b.WriteString(v.Inspect())
	return b.String()
}
