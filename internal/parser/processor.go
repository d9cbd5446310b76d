package parser

import (
	"github.com/camwell/cam/internal/diagnostics"
	"github.com/camwell/cam/internal/pipeline"
	"github.com/camwell/cam/internal/token"
)

// Processor is the pipeline.Processor wrapping Parser: it parses the token
// stream the lexer stage left in ctx and stores the resulting AST, or
// aborts the pipeline with the single diagnostic the parser raised.
type Processor struct{}

func (pp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		ctx.Err = diagnostics.NewError(diagnostics.ErrInternal, token.Token{}, "parser: token stream is nil")
		return ctx
	}

	p := New(ctx.TokenStream, ctx.Config)
	root, err := p.Parse()
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.AstRoot = root
	return ctx
}
