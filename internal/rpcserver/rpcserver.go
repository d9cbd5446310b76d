// Package rpcserver exposes the toolchain's three public operations —
// parse, optimize, evaluate — as a minimal gRPC service, registered by hand
// instead of via protoc-generated stubs. The request and response messages
// are the well-known types from google.golang.org/protobuf/types/known
// (wrapperspb.StringValue, structpb.Value), which already satisfy
// proto.Message, so there is no .proto file to compile.
package rpcserver

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/camwell/cam/internal/ast"
	"github.com/camwell/cam/internal/cam"
	"github.com/camwell/cam/internal/config"
	"github.com/camwell/cam/internal/lexer"
	"github.com/camwell/cam/internal/optimizer"
	"github.com/camwell/cam/internal/parser"
	"github.com/camwell/cam/internal/value"
)

// CompileService implements parse, optimize, and evaluate as unary gRPC
// methods over a single Config.
type CompileService struct {
	Config config.Config
}

// ServiceName is the name registered with grpc.Server.RegisterService.
const ServiceName = "cam.CompileService"

// ServiceDesc is the hand-built grpc.ServiceDesc standing in for a
// protoc-generated one.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CompileService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Parse", Handler: parseHandler},
		{MethodName: "Optimize", Handler: optimizeHandler},
		{MethodName: "Evaluate", Handler: evaluateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cam/rpcserver.go",
}

// Register attaches CompileService to a live grpc.Server.
func Register(s *grpc.Server, svc *CompileService) {
	s.RegisterService(&ServiceDesc, svc)
}

func decodeSource(dec func(any) error) (string, error) {
	req := new(wrapperspb.StringValue)
	if err := dec(req); err != nil {
		return "", err
	}
	return req.GetValue(), nil
}

func parseHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	source, err := decodeSource(dec)
	if err != nil {
		return nil, err
	}
	svc := srv.(*CompileService)
	if interceptor == nil {
		return svc.parse(ctx, source)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Parse"}
	handler := func(ctx context.Context, req any) (any, error) {
		return svc.parse(ctx, req.(string))
	}
	return interceptor(ctx, source, info, handler)
}

func optimizeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	source, err := decodeSource(dec)
	if err != nil {
		return nil, err
	}
	svc := srv.(*CompileService)
	if interceptor == nil {
		return svc.optimize(ctx, source)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Optimize"}
	handler := func(ctx context.Context, req any) (any, error) {
		return svc.optimize(ctx, req.(string))
	}
	return interceptor(ctx, source, info, handler)
}

func evaluateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	source, err := decodeSource(dec)
	if err != nil {
		return nil, err
	}
	svc := srv.(*CompileService)
	if interceptor == nil {
		return svc.evaluate(ctx, source)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Evaluate"}
	handler := func(ctx context.Context, req any) (any, error) {
		return svc.evaluate(ctx, req.(string))
	}
	return interceptor(ctx, source, info, handler)
}

func (s *CompileService) compile(source string) (ast.Node, error) {
	stream := lexer.NewStream(lexer.New(source))
	p := parser.New(stream, s.Config)
	root, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (s *CompileService) parse(_ context.Context, source string) (*wrapperspb.StringValue, error) {
	root, err := s.compile(source)
	if err != nil {
		return nil, err
	}
	return wrapperspb.String(ast.String(root)), nil
}

func (s *CompileService) optimize(_ context.Context, source string) (*wrapperspb.StringValue, error) {
	root, err := s.compile(source)
	if err != nil {
		return nil, err
	}
	optimized, _, err := optimizer.Optimize(root, s.Config)
	if err != nil {
		return nil, err
	}
	return wrapperspb.String(ast.String(optimized)), nil
}

func (s *CompileService) evaluate(_ context.Context, source string) (*structpb.Value, error) {
	root, err := s.compile(source)
	if err != nil {
		return nil, err
	}
	optimized, _, err := optimizer.Optimize(root, s.Config)
	if err != nil {
		return nil, err
	}
	m := cam.New(s.Config)
	result, err := m.Run(optimized, value.ENil{})
	if err != nil {
		return nil, err
	}
	return valueToStruct(result)
}

// valueToStruct converts a runtime Value to its wire representation: EInt
// maps to structpb's NumberValue, EPair to a two-element ListValue, ENil to
// NullValue. EClosure borrows into the program AST and has no
// serialization — reported as an error instead of silently dropping the
// captured environment or code reference.
func valueToStruct(v value.Value) (*structpb.Value, error) {
	switch x := v.(type) {
	case value.EInt:
		return structpb.NewNumberValue(float64(x.N)), nil
	case value.ENil:
		return structpb.NewNullValue(), nil
	case value.EPair:
		left, err := valueToStruct(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := valueToStruct(x.Right)
		if err != nil {
			return nil, err
		}
		return structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{left, right}}), nil
	case value.EClosure:
		return nil, fmt.Errorf("rpcserver: cannot serialize a closure over the wire: %s", x.Inspect())
	default:
		return nil, fmt.Errorf("rpcserver: unknown value kind %T", v)
	}
}
