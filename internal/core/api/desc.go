package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

/*
 * Wire contract for graphfilter.v1.FilterService.
 *
 * Requests and responses are google.protobuf.Struct messages, so the service
 * needs no generated code: the descriptor below is what protoc-gen-go-grpc
 * would emit for
 *
 *   service FilterService {
 *     rpc Match(google.protobuf.Struct) returns (google.protobuf.Struct);
 *     rpc Explain(google.protobuf.Struct) returns (google.protobuf.Struct);
 *   }
 *
 * Match request:    {filter: <expr tree>, limit: <number>, node: <id>}
 * Match response:   {ids, refs, count, truncated, constant, plan, tree}
 * Explain request:  {filter: <expr tree>}
 * Explain response: {input, plan, tree, constant, indexed, cost}
 */

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "graphfilter.v1.FilterService"

	MatchMethod   = "/" + ServiceName + "/Match"
	ExplainMethod = "/" + ServiceName + "/Explain"
)

// FilterServiceServer is the server API for FilterService.
type FilterServiceServer interface {
	Match(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Explain(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterFilterServiceServer registers srv on s.
func RegisterFilterServiceServer(s grpc.ServiceRegistrar, srv FilterServiceServer) {
	s.RegisterService(&FilterServiceDesc, srv)
}

// FilterServiceDesc is the grpc.ServiceDesc for FilterService.
var FilterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FilterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Match", Handler: matchHandler},
		{MethodName: "Explain", Handler: explainHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "graphfilter/v1/filter.proto",
}

func matchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FilterServiceServer).Match(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MatchMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FilterServiceServer).Match(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func explainHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FilterServiceServer).Explain(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ExplainMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FilterServiceServer).Explain(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// FilterServiceClient is the client API for FilterService.
type FilterServiceClient interface {
	Match(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Explain(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type filterServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewFilterServiceClient returns a client for FilterService over cc.
func NewFilterServiceClient(cc grpc.ClientConnInterface) FilterServiceClient {
	return &filterServiceClient{cc: cc}
}

func (c *filterServiceClient) Match(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MatchMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *filterServiceClient) Explain(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ExplainMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
