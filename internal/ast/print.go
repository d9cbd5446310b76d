package ast

import (
	"fmt"
	"strings"
)

// String renders n as an S-expression, e.g. "(Comp (App) (Pair (Id) (Fst)))".
// Used by internal/trace and cmd/cam for diagnostics; evaluated results are
// rendered separately by internal/value.Inspect.
func String(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch t := n.(type) {
	case *Id:
		b.WriteString("(Id)")
	case *Fst:
		b.WriteString("(Fst)")
	case *Snd:
		b.WriteString("(Snd)")
	case *Quote:
		fmt.Fprintf(b, "(Quote %d)", t.N)
	case *Plus:
		b.WriteString("(Plus)")
	case *App:
		b.WriteString("(App)")
	case *Cur:
		b.WriteString("(Cur ")
		writeNode(b, t.Body)
		b.WriteString(")")
	case *Pair:
		b.WriteString("(Pair ")
		writeNode(b, t.Left)
		b.WriteString(" ")
		writeNode(b, t.Right)
		b.WriteString(")")
	case *Comp:
		b.WriteString("(Comp")
		for _, c := range t.Children {
			b.WriteString(" ")
			writeNode(b, c)
		}
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "(unknown %T)", n)
	}
}

// Count returns the total node count of the tree rooted at n, used by
// internal/optimizer to size the fixpoint pass bound.
func Count(n Node) int {
	switch t := n.(type) {
	case *Cur:
		return 1 + Count(t.Body)
	case *Pair:
		return 1 + Count(t.Left) + Count(t.Right)
	case *Comp:
		total := 1
		for _, c := range t.Children {
			total += Count(c)
		}
		return total
	default:
		return 1
	}
}

// Equal reports whether a and b are structurally identical trees — used by
// tests asserting optimizer/parser output, not by the pipeline itself.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Id:
		_, ok := b.(*Id)
		return ok
	case *Fst:
		_, ok := b.(*Fst)
		return ok
	case *Snd:
		_, ok := b.(*Snd)
		return ok
	case *Plus:
		_, ok := b.(*Plus)
		return ok
	case *App:
		_, ok := b.(*App)
		return ok
	case *Quote:
		y, ok := b.(*Quote)
		return ok && x.N == y.N
	case *Cur:
		y, ok := b.(*Cur)
		return ok && Equal(x.Body, y.Body)
	case *Pair:
		y, ok := b.(*Pair)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Comp:
		y, ok := b.(*Comp)
		if !ok || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
