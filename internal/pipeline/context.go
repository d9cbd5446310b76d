package pipeline

import (
	"github.com/camwell/cam/internal/ast"
	"github.com/camwell/cam/internal/config"
	"github.com/camwell/cam/internal/lexer"
	"github.com/camwell/cam/internal/value"
)

// PipelineContext threads one compile-and-evaluate run through the
// lex/parse/optimize/evaluate stages. It carries a single Err rather than
// an accumulating list: the first stage to fail stops the pipeline there.
type PipelineContext struct {
	// RunID correlates this run across cmd/cam, internal/rpcserver and
	// internal/trace.
	RunID string

	FilePath string
	Source   string
	Config   config.Config

	TokenStream *lexer.TokenStream
	AstRoot     ast.Node

	Optimized    ast.Node
	RewriteCount int

	Result value.Value

	// Err holds the single diagnostic a stage raised, if any. A later
	// Processor must not run once Err is set; Pipeline.Run enforces this.
	Err error
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}
