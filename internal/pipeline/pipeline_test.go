package pipeline_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/camwell/cam/internal/ast"
	"github.com/camwell/cam/internal/cam"
	"github.com/camwell/cam/internal/config"
	"github.com/camwell/cam/internal/lexer"
	"github.com/camwell/cam/internal/optimizer"
	"github.com/camwell/cam/internal/parser"
	"github.com/camwell/cam/internal/pipeline"
	"github.com/camwell/cam/internal/value"
)

// TestScenarios runs a table of end-to-end scenarios from a single txtar
// archive (testdata/scenarios.txtar): each .cam source is compared against
// its expected printed result, or against a substring expected in the
// diagnostic message for inputs that should fail to parse.
func TestScenarios(t *testing.T) {
	archive, err := txtar.ParseFile("testdata/scenarios.txtar")
	require.NoError(t, err)

	files := make(map[string]string, len(archive.Files))
	for _, f := range archive.Files {
		files[f.Name] = strings.TrimRight(string(f.Data), "\n")
	}

	cases := map[string]string{} // .cam name -> .want or .parse_error name
	for name := range files {
		switch {
		case strings.HasSuffix(name, ".want"):
			cases[strings.TrimSuffix(name, ".want")+".cam"] = name
		case strings.HasSuffix(name, ".parse_error"):
			cases[strings.TrimSuffix(name, ".parse_error")+".cam"] = name
		}
	}
	require.NotEmpty(t, cases)

	cfg := config.Default()
	for camFile, expectFile := range cases {
		camFile, expectFile := camFile, expectFile
		t.Run(camFile, func(t *testing.T) {
			source := files[camFile]
			p := pipeline.New(&lexer.Processor{}, &parser.Processor{}, &optimizer.Processor{}, &cam.Processor{})
			ctx := p.Run(&pipeline.PipelineContext{Source: source, Config: cfg})

			if strings.HasSuffix(expectFile, ".parse_error") {
				require.Error(t, ctx.Err)
				require.Contains(t, ctx.Err.Error(), files[expectFile])
				return
			}

			require.NoError(t, ctx.Err)
			require.Equal(t, files[expectFile], ctx.Result.Inspect())
		})
	}
}

// TestOptimizerEliminatesAppAndCur checks that after fixpoint, an
// application's AST contains no App and no Cur, and that evaluating the
// optimized tree still yields the same result in strictly fewer nodes than
// the un-optimized form.
func TestOptimizerEliminatesAppAndCur(t *testing.T) {
	cfg := config.Default()
	source := "((lambda (x) (+ x 2)) 1)"

	stream := lexer.NewStream(lexer.New(source))
	root, err := parser.New(stream, cfg).Parse()
	require.NoError(t, err)

	optimized, rewrites, err := optimizer.Optimize(root, cfg)
	require.NoError(t, err)
	require.Greater(t, rewrites, 0)
	require.False(t, containsAppOrCur(optimized), "optimized AST %s still contains App or Cur", ast.String(optimized))

	m := cam.New(cfg)
	got, err := m.Run(optimized, value.ENil{})
	require.NoError(t, err)
	require.Equal(t, "3", got.Inspect())

	require.Less(t, ast.Count(optimized), ast.Count(root))
}

func containsAppOrCur(n ast.Node) bool {
	switch t := n.(type) {
	case *ast.App:
		return true
	case *ast.Cur:
		return true
	case *ast.Pair:
		return containsAppOrCur(t.Left) || containsAppOrCur(t.Right)
	case *ast.Comp:
		for _, c := range t.Children {
			if containsAppOrCur(c) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
