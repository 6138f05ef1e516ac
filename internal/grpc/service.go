package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified name of the resolver service
const ServiceName = "gogoresolver.v1.ResolverService"

// Every method takes a single string: the search query, the series id or the
// episode reference.
const (
	SearchMethod       = "/" + ServiceName + "/Search"
	ListEpisodesMethod = "/" + ServiceName + "/ListEpisodes"
	EpisodeRangeMethod = "/" + ServiceName + "/EpisodeRange"
	ResolveVideoMethod = "/" + ServiceName + "/ResolveVideo"
)

// ResolverServiceServer is the server API for the resolver service.
// Messages are protobuf well-known types so no generated code is needed.
type ResolverServiceServer interface {
	// Search returns a list of {id, name} structs.
	Search(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	// ListEpisodes returns a list of episode references.
	ListEpisodes(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	// EpisodeRange returns a {start, end} struct.
	EpisodeRange(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// ResolveVideo returns a list of {url, origin} structs.
	ResolveVideo(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
}

// RegisterResolverServiceServer registers srv on s
func RegisterResolverServiceServer(s grpc.ServiceRegistrar, srv ResolverServiceServer) {
	s.RegisterService(&ResolverServiceDesc, srv)
}

// ResolverServiceDesc describes the resolver service for grpc.Server
var ResolverServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ResolverServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Search", Handler: unaryHandler(SearchMethod, ResolverServiceServer.Search)},
		{MethodName: "ListEpisodes", Handler: unaryHandler(ListEpisodesMethod, ResolverServiceServer.ListEpisodes)},
		{MethodName: "EpisodeRange", Handler: unaryHandler(EpisodeRangeMethod, ResolverServiceServer.EpisodeRange)},
		{MethodName: "ResolveVideo", Handler: unaryHandler(ResolveVideoMethod, ResolverServiceServer.ResolveVideo)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gogoresolver/v1/resolver.proto",
}

func unaryHandler[Resp any](fullMethod string, call func(ResolverServiceServer, context.Context, *wrapperspb.StringValue) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ResolverServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ResolverServiceServer), ctx, req.(*wrapperspb.StringValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ResolverServiceClient is the client API for the resolver service.
type ResolverServiceClient interface {
	Search(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
	ListEpisodes(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
	EpisodeRange(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	ResolveVideo(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type resolverServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewResolverServiceClient creates a client calling the resolver service over cc
func NewResolverServiceClient(cc grpc.ClientConnInterface) ResolverServiceClient {
	return &resolverServiceClient{cc: cc}
}

func (c *resolverServiceClient) Search(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, SearchMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *resolverServiceClient) ListEpisodes(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListEpisodesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *resolverServiceClient) EpisodeRange(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EpisodeRangeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *resolverServiceClient) ResolveVideo(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ResolveVideoMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
