package optimizer

import (
	"github.com/camwell/cam/internal/diagnostics"
	"github.com/camwell/cam/internal/pipeline"
	"github.com/camwell/cam/internal/token"
)

// Processor is the pipeline.Processor stage wrapping Optimize.
type Processor struct{}

func (op *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		ctx.Err = diagnostics.NewError(diagnostics.ErrInternal, token.Token{}, "optimizer: ast root is nil")
		return ctx
	}

	optimized, count, err := Optimize(ctx.AstRoot, ctx.Config)
	if err != nil {
		ctx.Err = diagnostics.NewError(diagnostics.ErrInternal, token.Token{}, "%s", err.Error())
		return ctx
	}
	ctx.Optimized = optimized
	ctx.RewriteCount = count
	return ctx
}
