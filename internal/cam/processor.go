package cam

import (
	"github.com/camwell/cam/internal/diagnostics"
	"github.com/camwell/cam/internal/pipeline"
	"github.com/camwell/cam/internal/token"
	"github.com/camwell/cam/internal/value"
)

// Processor is the pipeline.Processor stage running the CAM over
// ctx.Optimized against the initial environment value.ENil{}.
type Processor struct{}

func (cp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	root := ctx.Optimized
	if root == nil {
		root = ctx.AstRoot
	}
	if root == nil {
		ctx.Err = diagnostics.NewError(diagnostics.ErrInternal, token.Token{}, "cam: ast root is nil")
		return ctx
	}

	m := New(ctx.Config)
	result, err := m.Run(root, value.ENil{})
	if err != nil {
		ctx.Err = diagnostics.NewError(diagnostics.ErrInternal, token.Token{}, "%s", err.Error())
		return ctx
	}
	ctx.Result = result
	return ctx
}
