// Package optimizer implements a rewrite-based optimizer: six categorical
// identities applied to a Comp's children, iterated to a fixpoint.
//
// Implemented as a plain recursive bottom-up rewrite: every child is
// optimized first, then the six rules are applied to the resulting
// children slice, pattern-matching adjacent elements directly rather than
// threading a marked stack through the traversal.
package optimizer

import (
	"fmt"

	"github.com/camwell/cam/internal/ast"
	"github.com/camwell/cam/internal/config"
)

// ErrFixpointNotReached is returned by Optimize when the fixpoint loop
// exceeds its configured pass bound.
type ErrFixpointNotReached struct {
	Passes int
}

func (e *ErrFixpointNotReached) Error() string {
	return fmt.Sprintf("optimizer: fixpoint not reached after %d passes", e.Passes)
}

// Optimize rewrites root to a fixpoint of the six rules below, bounded by
// cfg.MaxOptimizerPassMultiplier * node-count passes. It returns the
// optimized tree and the total number of rewrites applied across every
// pass, which internal/trace records alongside each run.
func Optimize(root ast.Node, cfg config.Config) (ast.Node, int, error) {
	maxPasses := cfg.MaxOptimizerPassMultiplier * ast.Count(root)
	if maxPasses <= 0 {
		maxPasses = config.DefaultMaxOptimizerPassMultiplier
	}

	total := 0
	node := root
	for pass := 0; ; pass++ {
		if pass >= maxPasses {
			return node, total, &ErrFixpointNotReached{Passes: pass}
		}
		next, count := optimizeOnce(node)
		total += count
		node = next
		if count == 0 {
			return node, total, nil
		}
	}
}

// optimizeOnce performs a single post-order rewrite pass: every child is
// optimized first, then the six rules are applied to the resulting children
// slice. Returns the rewritten node and the number of rewrites this single
// pass applied.
func optimizeOnce(n ast.Node) (ast.Node, int) {
	switch t := n.(type) {
	case *ast.Id, *ast.Fst, *ast.Snd, *ast.Quote, *ast.Plus, *ast.App:
		return n, 0
	case *ast.Cur:
		body, c := optimizeOnce(t.Body)
		return &ast.Cur{Body: body}, c
	case *ast.Pair:
		l, c1 := optimizeOnce(t.Left)
		r, c2 := optimizeOnce(t.Right)
		return &ast.Pair{Left: l, Right: r}, c1 + c2
	case *ast.Comp:
		return optimizeComp(t)
	default:
		panic(fmt.Sprintf("optimizer: unknown node type %T", n))
	}
}

func optimizeComp(c *ast.Comp) (ast.Node, int) {
	count := 0
	kids := make([]ast.Node, 0, len(c.Children))
	for _, child := range c.Children {
		ck, cc := optimizeOnce(child)
		count += cc
		kids = append(kids, ck)
	}

	// Rule 4: composition associativity. A Comp child that is itself a Comp
	// splices its children in place.
	kids, c4 := spliceNestedComps(kids)
	count += c4

	// Rule 5: composition identity. Id drops out of a multi-element Comp.
	kids, c5 := dropIdentities(kids)
	count += c5

	// Rules 1–3: adjacent-pair fusion (Fst-of-Pair, Snd-of-Pair, Beta).
	kids, c123 := fuseAdjacent(kids)
	count += c123

	// Rule 6: the empty composition canonicalizes to Id.
	if len(kids) == 0 {
		return &ast.Id{}, count
	}
	// Not one of the six named rules above, but Comp{children: [x]} and x
	// denote the same function for any x (a one-element composition just
	// runs that one element against the incoming environment), so
	// unwrapping it is sound and keeps the fixpoint's canonical forms flat
	// instead of nested in pointless singleton Comps.
	if len(kids) == 1 {
		return kids[0], count + 1
	}
	return &ast.Comp{Children: kids}, count
}

func spliceNestedComps(kids []ast.Node) ([]ast.Node, int) {
	count := 0
	out := make([]ast.Node, 0, len(kids))
	for _, k := range kids {
		if nested, ok := k.(*ast.Comp); ok {
			out = append(out, nested.Children...)
			count++
			continue
		}
		out = append(out, k)
	}
	return out, count
}

func dropIdentities(kids []ast.Node) ([]ast.Node, int) {
	count := 0
	out := make([]ast.Node, 0, len(kids))
	for _, k := range kids {
		if _, ok := k.(*ast.Id); ok {
			count++
			continue
		}
		out = append(out, k)
	}
	return out, count
}

// fuseAdjacent repeatedly scans kids for the three adjacent patterns rules
// 1–3 rewrite, applying each match and rescanning from the start until no
// more apply within this Comp.
func fuseAdjacent(kids []ast.Node) ([]ast.Node, int) {
	count := 0
	for {
		next, matched := fuseOnePass(kids)
		if !matched {
			return kids, count
		}
		kids = next
		count++
	}
}

func fuseOnePass(kids []ast.Node) ([]ast.Node, bool) {
	for i := 0; i+1 < len(kids); i++ {
		a, b := kids[i], kids[i+1]

		if _, ok := a.(*ast.Fst); ok {
			if pair, ok := b.(*ast.Pair); ok {
				return replace2(kids, i, pair.Left), true
			}
		}
		if _, ok := a.(*ast.Snd); ok {
			if pair, ok := b.(*ast.Pair); ok {
				return replace2(kids, i, pair.Right), true
			}
		}
		if _, ok := a.(*ast.App); ok {
			if pair, ok := b.(*ast.Pair); ok {
				if cur, ok := pair.Left.(*ast.Cur); ok {
					replacement := []ast.Node{cur.Body, &ast.Pair{Left: &ast.Id{}, Right: pair.Right}}
					return replaceN(kids, i, replacement), true
				}
			}
		}
	}
	return kids, false
}

func replace2(kids []ast.Node, i int, with ast.Node) []ast.Node {
	return replaceN(kids, i, []ast.Node{with})
}

func replaceN(kids []ast.Node, i int, with []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(kids)-2+len(with))
	out = append(out, kids[:i]...)
	out = append(out, with...)
	out = append(out, kids[i+2:]...)
	return out
}
