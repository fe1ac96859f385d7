package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "advisordesk.v1.AdvisorDeskService"

// AdvisorDeskServer is the server API of the AdvisorDesk service.
// Requests and responses are google.protobuf.Struct documents.
type AdvisorDeskServer interface {
	GetMonthlyRealized(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ComputeCommissionMonth(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveCommissionMonth(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ComputeOfferCommission(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateLedgerEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateLedgerEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteLedgerEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetClientCustody(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(AdvisorDeskServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// ServiceDesc describes the AdvisorDesk service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdvisorDeskServer)(nil),
	Methods: []grpc.MethodDesc{
		method("GetMonthlyRealized", AdvisorDeskServer.GetMonthlyRealized),
		method("ComputeCommissionMonth", AdvisorDeskServer.ComputeCommissionMonth),
		method("SaveCommissionMonth", AdvisorDeskServer.SaveCommissionMonth),
		method("ComputeOfferCommission", AdvisorDeskServer.ComputeOfferCommission),
		method("CreateLedgerEntry", AdvisorDeskServer.CreateLedgerEntry),
		method("UpdateLedgerEntry", AdvisorDeskServer.UpdateLedgerEntry),
		method("DeleteLedgerEntry", AdvisorDeskServer.DeleteLedgerEntry),
		method("GetClientCustody", AdvisorDeskServer.GetClientCustody),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "advisordesk/v1/advisordesk.proto",
}

// RegisterAdvisorDeskServer registers srv on s
func RegisterAdvisorDeskServer(s grpc.ServiceRegistrar, srv AdvisorDeskServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// method adapts fn to the generic handler signature, running the server's interceptor chain
func method(name string, fn unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}

			handler := func(ctx context.Context, req any) (any, error) {
				return fn(srv.(AdvisorDeskServer), ctx, req.(*structpb.Struct))
			}
			if interceptor == nil {
				return handler(ctx, in)
			}

			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, handler)
		},
	}
}
