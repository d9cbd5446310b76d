// Command cam is the toolchain's entry point: read a source file, run the
// lex→parse→optimize→evaluate pipeline, print the result or a single-line
// diagnostic, optionally recording the run to a sqlite trace store or
// serving the pipeline over gRPC.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/mattn/go-isatty"
	"google.golang.org/grpc"

	"github.com/camwell/cam/internal/ast"
	"github.com/camwell/cam/internal/cam"
	"github.com/camwell/cam/internal/config"
	"github.com/camwell/cam/internal/lexer"
	"github.com/camwell/cam/internal/optimizer"
	"github.com/camwell/cam/internal/parser"
	"github.com/camwell/cam/internal/pipeline"
	"github.com/camwell/cam/internal/rpcserver"
	"github.com/camwell/cam/internal/trace"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("cam", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file (default: built-in defaults)")
	tracePath := fs.String("trace", "", "sqlite database path to record this run's metrics")
	printAST := fs.Bool("print-ast", false, "print the optimized AST instead of evaluating it")
	serveAddr := fs.String("serve", "", "if set, run a CompileService gRPC server on this address instead of compiling a file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			printErr(err)
			return 1
		}
		cfg = loaded
	}

	if *serveAddr != "" {
		return serve(*serveAddr, cfg)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cam [flags] <source-file>")
		return 2
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		printErr(err)
		return 1
	}

	runID := trace.NewRunID()
	p := pipeline.New(&lexer.Processor{}, &parser.Processor{}, &optimizer.Processor{}, &cam.Processor{})
	ctx := p.Run(&pipeline.PipelineContext{RunID: runID, Source: string(source), Config: cfg})
	if ctx.Err != nil {
		printErr(ctx.Err)
		return 1
	}

	if *printAST {
		fmt.Println(ast.String(ctx.Optimized))
		return 0
	}

	fmt.Println(ctx.Result.Inspect())

	if *tracePath != "" {
		if err := recordTrace(*tracePath, runID, ctx.Source, ctx.Result.Inspect(), ctx.RewriteCount, ast.Count(ctx.Optimized)); err != nil {
			printErr(err)
			return 1
		}
	}
	return 0
}

func serve(addr string, cfg config.Config) int {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		printErr(err)
		return 1
	}
	server := grpc.NewServer()
	rpcserver.Register(server, &rpcserver.CompileService{Config: cfg})
	fmt.Fprintf(os.Stderr, "cam: serving CompileService on %s\n", addr)
	if err := server.Serve(lis); err != nil {
		printErr(err)
		return 1
	}
	return 0
}

func recordTrace(path, runID, source, resultInspect string, rewrites, instructions int) error {
	ctx := context.Background()
	store, err := trace.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(ctx, trace.Run{
		ID:               runID,
		Source:           source,
		ResultInspect:    resultInspect,
		RewriteCount:     rewrites,
		InstructionCount: instructions,
	})
}

// printErr colors the single-line diagnostic red when stderr is a terminal.
func printErr(err error) {
	const red, reset = "\x1b[31m", "\x1b[0m"
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", red, err.Error(), reset)
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}
