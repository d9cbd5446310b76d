// Package ast defines the nine closed combinators the rest of the toolchain
// builds, rewrites, and evaluates, plus a generic pre/in/post traversal
// protocol that the optimizer and the CAM evaluator both walk.
//
// Every node is a tagged struct implementing Node via Accept, dispatching to
// one hook of Visitor.
package ast

// Node is any of the nine combinator nodes. There is no TokenLiteral:
// combinator nodes carry no surface-syntax position; internal/diagnostics
// attaches the token.Token that produced them instead.
type Node interface {
	Accept(v Visitor) Result
}

// Result is returned by every Visitor hook and by Walk, controlling how the
// traversal proceeds past the current node.
type Result int

const (
	// Continue walks the node's children (or, for a leaf, simply continues).
	Continue Result = iota
	// Skip, returned from a pre-visit hook, skips the subtree: its children
	// and its post-visit are not walked. Returned from any other hook it is
	// treated as Continue. The CAM's Cur pre-visit hook uses this to avoid
	// descending into a closure body before it is applied.
	Skip
	// Abort halts the walk immediately; Walk returns Abort to every enclosing
	// frame without visiting anything else.
	Abort
)

// Visitor is the traversal protocol: one hook per leaf kind, and pre/post
// (or pre/in/post) hooks for each of the three compound kinds. Thirteen
// hooks in total.
type Visitor interface {
	VisitId(n *Id) Result
	VisitFst(n *Fst) Result
	VisitSnd(n *Snd) Result
	VisitQuote(n *Quote) Result
	VisitPlus(n *Plus) Result
	VisitApp(n *App) Result

	PreComp(n *Comp) Result
	PostComp(n *Comp) Result

	PrePair(n *Pair) Result
	InPair(n *Pair) Result
	PostPair(n *Pair) Result

	PreCur(n *Cur) Result
	PostCur(n *Cur) Result
}

// BaseVisitor answers Continue from every hook. Embed it to implement only
// the hooks a particular visitor cares about.
type BaseVisitor struct{}

func (BaseVisitor) VisitId(*Id) Result       { return Continue }
func (BaseVisitor) VisitFst(*Fst) Result     { return Continue }
func (BaseVisitor) VisitSnd(*Snd) Result     { return Continue }
func (BaseVisitor) VisitQuote(*Quote) Result { return Continue }
func (BaseVisitor) VisitPlus(*Plus) Result   { return Continue }
func (BaseVisitor) VisitApp(*App) Result     { return Continue }

func (BaseVisitor) PreComp(*Comp) Result  { return Continue }
func (BaseVisitor) PostComp(*Comp) Result { return Continue }

func (BaseVisitor) PrePair(*Pair) Result  { return Continue }
func (BaseVisitor) InPair(*Pair) Result   { return Continue }
func (BaseVisitor) PostPair(*Pair) Result { return Continue }

func (BaseVisitor) PreCur(*Cur) Result  { return Continue }
func (BaseVisitor) PostCur(*Cur) Result { return Continue }

// Id is the identity combinator.
type Id struct{}

// Fst projects the first component of a pair.
type Fst struct{}

// Snd projects the second component of a pair.
type Snd struct{}

// Quote is the constant combinator for a non-negative integer literal.
type Quote struct{ N int64 }

// Plus requires the environment to be a pair of integers and sums them.
type Plus struct{}

// App applies the closure in the first component to the value in the
// second.
type App struct{}

// Cur curries its body: Cur(f)(Γ) = v ↦ f((Γ, v)).
type Cur struct{ Body Node }

// Pair runs Left and Right against the same environment and pairs the
// results.
type Pair struct{ Left, Right Node }

// Comp is a k-ary composition. Children are stored in the order the parser
// writes them; the last child runs against the incoming environment first
// and the first child's result is the Comp's result: Comp(f1,...,fk)(Γ) =
// f1(f2(...fk(Γ))).
type Comp struct{ Children []Node }

func (n *Id) Accept(v Visitor) Result    { return v.VisitId(n) }
func (n *Fst) Accept(v Visitor) Result   { return v.VisitFst(n) }
func (n *Snd) Accept(v Visitor) Result   { return v.VisitSnd(n) }
func (n *Quote) Accept(v Visitor) Result { return v.VisitQuote(n) }
func (n *Plus) Accept(v Visitor) Result  { return v.VisitPlus(n) }
func (n *App) Accept(v Visitor) Result   { return v.VisitApp(n) }

func (n *Cur) Accept(v Visitor) Result {
	r := v.PreCur(n)
	if r == Abort {
		return Abort
	}
	if r == Skip {
		return Continue
	}
	if r := n.Body.Accept(v); r == Abort {
		return Abort
	}
	return v.PostCur(n)
}

func (n *Pair) Accept(v Visitor) Result {
	r := v.PrePair(n)
	if r == Abort {
		return Abort
	}
	if r == Skip {
		return Continue
	}
	if r := n.Left.Accept(v); r == Abort {
		return Abort
	}
	if r := v.InPair(n); r == Abort {
		return Abort
	}
	if r := n.Right.Accept(v); r == Abort {
		return Abort
	}
	return v.PostPair(n)
}

func (n *Comp) Accept(v Visitor) Result {
	r := v.PreComp(n)
	if r == Abort {
		return Abort
	}
	if r == Skip {
		return Continue
	}
	// Last child first: see the Comp doc comment.
	for i := len(n.Children) - 1; i >= 0; i-- {
		if r := n.Children[i].Accept(v); r == Abort {
			return Abort
		}
	}
	return v.PostComp(n)
}

// Walk drives v over n. It is equivalent to n.Accept(v); callers that only
// have a Node (not a concrete pointer type) use this form.
func Walk(n Node, v Visitor) Result {
	return n.Accept(v)
}
