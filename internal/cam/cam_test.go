package cam_test

import (
	"testing"

	"github.com/camwell/cam/internal/ast"
	"github.com/camwell/cam/internal/cam"
	"github.com/camwell/cam/internal/config"
	"github.com/camwell/cam/internal/value"
)

func run(t *testing.T, root ast.Node, env value.Value) value.Value {
	t.Helper()
	m := cam.New(config.Default())
	out, err := m.Run(root, env)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out
}

func TestQuoteIgnoresEnvironment(t *testing.T) {
	got := run(t, &ast.Quote{N: 42}, value.ENil{})
	want := value.EInt{N: 42}
	if !value.Equal(got, want) {
		t.Fatalf("got %s, want %s", got.Inspect(), want.Inspect())
	}
}

func TestIdReturnsEnvironment(t *testing.T) {
	env := value.EInt{N: 9}
	got := run(t, &ast.Id{}, env)
	if !value.Equal(got, env) {
		t.Fatalf("got %s, want %s", got.Inspect(), env.Inspect())
	}
}

func TestFstSndProjectPair(t *testing.T) {
	env := value.EPair{Left: value.EInt{N: 1}, Right: value.EInt{N: 2}}
	if got := run(t, &ast.Fst{}, env); !value.Equal(got, value.EInt{N: 1}) {
		t.Fatalf("Fst: got %s", got.Inspect())
	}
	if got := run(t, &ast.Snd{}, env); !value.Equal(got, value.EInt{N: 2}) {
		t.Fatalf("Snd: got %s", got.Inspect())
	}
}

func TestFstAgainstNonPairErrors(t *testing.T) {
	m := cam.New(config.Default())
	_, err := m.Run(&ast.Fst{}, value.EInt{N: 1})
	if err == nil {
		t.Fatalf("expected an error")
	}
}

func TestPairRunsBothBranchesAgainstSameEnvironment(t *testing.T) {
	root := &ast.Pair{Left: &ast.Id{}, Right: &ast.Id{}}
	env := value.EInt{N: 5}
	got := run(t, root, env)
	want := value.EPair{Left: env, Right: env}
	if !value.Equal(got, want) {
		t.Fatalf("got %s, want %s", got.Inspect(), want.Inspect())
	}
}

func TestPlusSumsPairOfInts(t *testing.T) {
	env := value.EPair{Left: value.EInt{N: 3}, Right: value.EInt{N: 4}}
	got := run(t, &ast.Plus{}, env)
	want := value.EInt{N: 7}
	if !value.Equal(got, want) {
		t.Fatalf("got %s, want %s", got.Inspect(), want.Inspect())
	}
}

func TestCompRunsLastChildFirst(t *testing.T) {
	// Comp(Snd, Fst) applied to ((a,b),c): Fst runs first -> (a,b), then Snd
	// -> b.
	root := &ast.Comp{Children: []ast.Node{&ast.Snd{}, &ast.Fst{}}}
	env := value.EPair{
		Left:  value.EPair{Left: value.EInt{N: 1}, Right: value.EInt{N: 2}},
		Right: value.EInt{N: 3},
	}
	got := run(t, root, env)
	want := value.EInt{N: 2}
	if !value.Equal(got, want) {
		t.Fatalf("got %s, want %s", got.Inspect(), want.Inspect())
	}
}

func TestCurDoesNotEvaluateBodyUntilApplied(t *testing.T) {
	// Cur(Plus) applied against ENil should just produce a closure, never
	// touching Plus's pair-shape requirement.
	root := &ast.Cur{Body: &ast.Plus{}}
	got := run(t, root, value.ENil{})
	closure, ok := got.(value.EClosure)
	if !ok {
		t.Fatalf("got %T, want value.EClosure", got)
	}
	if !value.Equal(closure.Env, value.ENil{}) {
		t.Fatalf("closure captured %s, want nil", closure.Env.Inspect())
	}
}

func TestAppAppliesClosureToArgument(t *testing.T) {
	// ((lambda (x) x) 7): Comp(App, Pair(Cur(Comp(Snd)), Quote(7))).
	root := &ast.Comp{Children: []ast.Node{
		&ast.App{},
		&ast.Pair{
			Left:  &ast.Cur{Body: &ast.Comp{Children: []ast.Node{&ast.Snd{}}}},
			Right: &ast.Quote{N: 7},
		},
	}}
	got := run(t, root, value.ENil{})
	want := value.EInt{N: 7}
	if !value.Equal(got, want) {
		t.Fatalf("got %s, want %s", got.Inspect(), want.Inspect())
	}
}

func TestSumEndToEnd(t *testing.T) {
	// (+ 1 2): Comp(App, Pair(Cur(Comp(Plus, Snd)), Pair(Quote1, Quote2))).
	root := &ast.Comp{Children: []ast.Node{
		&ast.App{},
		&ast.Pair{
			Left: &ast.Cur{Body: &ast.Comp{Children: []ast.Node{&ast.Plus{}, &ast.Snd{}}}},
			Right: &ast.Pair{
				Left:  &ast.Quote{N: 1},
				Right: &ast.Quote{N: 2},
			},
		},
	}}
	got := run(t, root, value.ENil{})
	want := value.EInt{N: 3}
	if !value.Equal(got, want) {
		t.Fatalf("got %s, want %s", got.Inspect(), want.Inspect())
	}
}

func TestPlusOverflowErrorsByDefault(t *testing.T) {
	env := value.EPair{Left: value.EInt{N: 1<<62 - 1}, Right: value.EInt{N: 1 << 62}}
	m := cam.New(config.Default())
	_, err := m.Run(&ast.Plus{}, env)
	if err == nil {
		t.Fatalf("expected an overflow error")
	}
}

func TestPlusOverflowSaturates(t *testing.T) {
	cfg := config.Default()
	cfg.IntegerOverflowPolicy = config.OverflowSaturate
	env := value.EPair{Left: value.EInt{N: 1<<62 - 1}, Right: value.EInt{N: 1 << 62}}
	m := cam.New(cfg)
	got, err := m.Run(&ast.Plus{}, env)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := value.EInt{N: 1<<63 - 1}
	if !value.Equal(got, want) {
		t.Fatalf("got %s, want %s", got.Inspect(), want.Inspect())
	}
}
