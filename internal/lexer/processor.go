package lexer

import (
	"github.com/camwell/cam/internal/pipeline"
)

// Processor is the pipeline.Processor stage turning ctx.Source into
// ctx.TokenStream, honoring ctx.Config.MaxToken.
type Processor struct{}

func (lp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	maxToken := ctx.Config.MaxToken
	if maxToken <= 0 {
		maxToken = DefaultMaxToken
	}
	ctx.TokenStream = NewStream(NewWithLimit(ctx.Source, maxToken))
	return ctx
}
