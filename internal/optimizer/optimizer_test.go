package optimizer_test

import (
	"testing"

	"github.com/camwell/cam/internal/ast"
	"github.com/camwell/cam/internal/config"
	"github.com/camwell/cam/internal/optimizer"
)

func TestFstOfPairRewrite(t *testing.T) {
	in := &ast.Comp{Children: []ast.Node{
		&ast.Fst{},
		&ast.Pair{Left: &ast.Quote{N: 1}, Right: &ast.Quote{N: 2}},
	}}
	out, count, err := optimizer.Optimize(in, config.Default())
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if count == 0 {
		t.Fatalf("expected at least one rewrite")
	}
	if !ast.Equal(out, &ast.Quote{N: 1}) {
		t.Fatalf("got %s, want (Quote 1)", ast.String(out))
	}
}

func TestSndOfPairRewrite(t *testing.T) {
	in := &ast.Comp{Children: []ast.Node{
		&ast.Snd{},
		&ast.Pair{Left: &ast.Quote{N: 1}, Right: &ast.Quote{N: 2}},
	}}
	out, _, err := optimizer.Optimize(in, config.Default())
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if !ast.Equal(out, &ast.Quote{N: 2}) {
		t.Fatalf("got %s, want (Quote 2)", ast.String(out))
	}
}

func TestBetaRewrite(t *testing.T) {
	// Comp(App, Pair(Cur(f), g)) -> Comp(f, Pair(Id, g)); f = Fst here (not
	// Snd) so the fixpoint stops after beta instead of a further Fst-of-Pair
	// fusion eating the Id too.
	in := &ast.Comp{Children: []ast.Node{
		&ast.App{},
		&ast.Pair{Left: &ast.Cur{Body: &ast.Fst{}}, Right: &ast.Quote{N: 9}},
	}}
	out, count, err := optimizer.Optimize(in, config.Default())
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if count == 0 {
		t.Fatalf("expected at least one rewrite")
	}
	// Cur(Fst)(Γ) = v ↦ Fst((Γ,v)) = Γ: applying it to anything just
	// returns the captured environment, which at the top level is ENil, so
	// the fixpoint normalizes all the way to Id.
	want := &ast.Id{}
	if !ast.Equal(out, want) {
		t.Fatalf("got %s, want %s", ast.String(out), ast.String(want))
	}
}

func TestEmptyCompCanonicalizesToId(t *testing.T) {
	in := &ast.Comp{Children: []ast.Node{&ast.Id{}}}
	out, _, err := optimizer.Optimize(in, config.Default())
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if !ast.Equal(out, &ast.Id{}) {
		t.Fatalf("got %s, want (Id)", ast.String(out))
	}
}

func TestFixpointReachesZero(t *testing.T) {
	in := &ast.Comp{Children: []ast.Node{
		&ast.Fst{},
		&ast.Pair{
			Left: &ast.Comp{Children: []ast.Node{
				&ast.Snd{},
				&ast.Pair{Left: &ast.Quote{N: 5}, Right: &ast.Quote{N: 6}},
			}},
			Right: &ast.Quote{N: 7},
		},
	}}
	out, _, err := optimizer.Optimize(in, config.Default())
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if !ast.Equal(out, &ast.Quote{N: 6}) {
		t.Fatalf("got %s, want (Quote 6)", ast.String(out))
	}
}
