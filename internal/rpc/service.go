// Package rpc serves the decision engine over gRPC. Requests and decisions
// travel as google.protobuf.Struct so collaborators need no generated stubs;
// the field names match the JSON surface exactly.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// #region descriptor
const (
	ServiceName  = "sumero.v1.DecisionService"
	decideMethod = "/" + ServiceName + "/Decide"

	// Metadata keys. subjectKey travels with the request, decisionIDKey
	// comes back in the response header when the decision was journaled.
	subjectKey    = "x-subject"
	decisionIDKey = "x-decision-id"
)

// DecisionServiceServer is the server API for sumero.v1.DecisionService.
type DecisionServiceServer interface {
	Decide(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func decideHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DecisionServiceServer).Decide(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: decideMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DecisionServiceServer).Decide(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DecisionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Decide",
			Handler:    decideHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sumero/v1/decision.proto",
}

// Register attaches s to a gRPC server.
func Register(gs grpc.ServiceRegistrar, s DecisionServiceServer) {
	gs.RegisterService(&serviceDesc, s)
}

// #endregion descriptor
