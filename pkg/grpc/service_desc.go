package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	OrderQueryService     = "marketplace.orders.v1.OrderQuery"
	vendorOrdersMethod    = "/" + OrderQueryService + "/VendorOrders"
	vendorDashboardMethod = "/" + OrderQueryService + "/VendorDashboard"
)

const authorizationKey = "authorization"

// OrderQueryServer is the internal read API used by the support assistant and
// other in-cluster consumers. Payloads are free-form structs so no generated
// code has to be shared between services.
type OrderQueryServer interface {
	VendorOrders(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	VendorDashboard(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var OrderQueryServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderQueryService,
	HandlerType: (*OrderQueryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "VendorOrders", Handler: vendorOrdersHandler},
		{MethodName: "VendorDashboard", Handler: vendorDashboardHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "marketplace/orders/v1/order_query.proto",
}

func RegisterOrderQueryServer(s grpc.ServiceRegistrar, srv OrderQueryServer) {
	s.RegisterService(&OrderQueryServiceDesc, srv)
}

func vendorOrdersHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderQueryServer).VendorOrders(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: vendorOrdersMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderQueryServer).VendorOrders(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func vendorDashboardHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderQueryServer).VendorDashboard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: vendorDashboardMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderQueryServer).VendorDashboard(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
