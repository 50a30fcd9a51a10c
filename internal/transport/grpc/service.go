// Package grpc exposes the stateless flight operations over gRPC. The
// service is described by hand; requests and responses are
// google.protobuf.Struct values carrying the same JSON shapes as the
// HTTP API.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "skywings.v1.FlightsService"

const (
	methodGenerateFlights = "/" + ServiceName + "/GenerateFlights"
	methodLookupStatus    = "/" + ServiceName + "/LookupStatus"
	methodConvertPrice    = "/" + ServiceName + "/ConvertPrice"
)

type FlightsServer interface {
	GenerateFlights(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	LookupStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ConvertPrice(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FlightsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateFlights", Handler: unaryHandler(methodGenerateFlights, FlightsServer.GenerateFlights)},
		{MethodName: "LookupStatus", Handler: unaryHandler(methodLookupStatus, FlightsServer.LookupStatus)},
		{MethodName: "ConvertPrice", Handler: unaryHandler(methodConvertPrice, FlightsServer.ConvertPrice)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}

func RegisterFlightsServer(s grpc.ServiceRegistrar, srv FlightsServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type structMethod func(FlightsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call structMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FlightsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FlightsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FlightsClient calls FlightsService over any client connection.
type FlightsClient struct {
	cc grpc.ClientConnInterface
}

func NewFlightsClient(cc grpc.ClientConnInterface) *FlightsClient {
	return &FlightsClient{cc: cc}
}

func (c *FlightsClient) GenerateFlights(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodGenerateFlights, in, opts)
}

func (c *FlightsClient) LookupStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodLookupStatus, in, opts)
}

func (c *FlightsClient) ConvertPrice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodConvertPrice, in, opts)
}

func (c *FlightsClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
