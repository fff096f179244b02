package grpc

import (
	"context"
	"fmt"
	"math"
	"net"
	"strings"
	"time"

	"github.com/example/marketplace/pkg/apperrors"
	"github.com/example/marketplace/pkg/auth"
	"github.com/example/marketplace/pkg/config"
	"github.com/example/marketplace/pkg/metrics"
	"github.com/example/marketplace/pkg/order"
	"github.com/example/marketplace/pkg/reporting"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type VendorOrderLister interface {
	ListOrdersForVendor(ctx context.Context, vendorID uint) ([]order.VendorOrder, error)
}

type DashboardBuilder interface {
	Dashboard(ctx context.Context, requester auth.Identity) (reporting.Dashboard, error)
}

type Authenticator interface {
	CurrentUser(header string) (auth.Identity, error)
}

type OrderServer struct {
	orders  VendorOrderLister
	reports DashboardBuilder
	auth    Authenticator
	metrics *metrics.ServerMetrics
	logger  *zap.Logger
	config  *config.ServerConfig

	server *grpc.Server
	health *health.Server
}

func NewOrderServer(cfg *config.ServerConfig, orders VendorOrderLister, reports DashboardBuilder, authn Authenticator, m *metrics.ServerMetrics, logger *zap.Logger) *OrderServer {
	s := &OrderServer{
		orders:  orders,
		reports: reports,
		auth:    authn,
		metrics: m,
		logger:  logger,
		config:  cfg,
		health:  health.NewServer(),
	}

	s.server = grpc.NewServer(grpc.ChainUnaryInterceptor(s.observe, s.authenticate))
	RegisterOrderQueryServer(s.server, s)
	healthpb.RegisterHealthServer(s.server, s.health)
	s.health.SetServingStatus(OrderQueryService, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(s.server)

	return s
}

func (s *OrderServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.logger.Info("Order query service started", zap.String("address", addr))
	return s.Serve(lis)
}

func (s *OrderServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// Stop flips health to NOT_SERVING and drains in-flight calls.
func (s *OrderServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

// VendorOrders lists the caller's vendor projections. Admins may pass
// vendor_id to look at another vendor.
func (s *OrderServer) VendorOrders(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}

	vendorID := id.UserID
	if v, ok := in.GetFields()["vendor_id"]; ok {
		requested, err := vendorIDValue(v)
		if err != nil {
			return nil, err
		}
		if requested != id.UserID && !id.IsAdmin() {
			return nil, s.toStatus(apperrors.PermissionDenied("admin access required"))
		}
		vendorID = requested
	}

	list, err := s.orders.ListOrdersForVendor(ctx, vendorID)
	if err != nil {
		return nil, s.toStatus(err)
	}

	orders := make([]interface{}, 0, len(list))
	for _, vo := range list {
		orders = append(orders, vendorOrderValue(vo))
	}
	return s.encode(map[string]interface{}{
		"vendor_id": vendorID,
		"orders":    orders,
	})
}

// vendorIDValue accepts whole numbers from 1 up; JSON numbers arrive as float64.
func vendorIDValue(v *structpb.Value) (uint, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || math.IsNaN(n.NumberValue) || n.NumberValue < 1 ||
		n.NumberValue > math.MaxUint32 || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, status.Error(codes.InvalidArgument, "vendor_id must be a positive integer")
	}
	return uint(n.NumberValue), nil
}

func (s *OrderServer) VendorDashboard(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	id, err := IdentityFrom(ctx)
	if err != nil {
		return nil, err
	}

	d, err := s.reports.Dashboard(ctx, id)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return s.encode(dashboardValue(d))
}

func (s *OrderServer) encode(v map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(v)
	if err != nil {
		return nil, s.toStatus(apperrors.Internal("failed to encode response", err))
	}
	return out, nil
}

func (s *OrderServer) toStatus(err error) error {
	if apperrors.KindOf(err) == apperrors.KindInternal {
		s.logger.Error("Order query failed", zap.Error(err))
	}
	return status.Error(apperrors.GRPCCode(err), apperrors.PublicMessage(err))
}

type identityKey struct{}

// IdentityFrom returns the caller attached by the auth interceptor.
func IdentityFrom(ctx context.Context) (auth.Identity, error) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	if !ok {
		return auth.Identity{}, status.Error(codes.Unauthenticated, "authentication required")
	}
	return id, nil
}

func (s *OrderServer) authenticate(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if !strings.HasPrefix(info.FullMethod, "/"+OrderQueryService+"/") {
		return handler(ctx, req)
	}

	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get(authorizationKey)
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	id, err := s.auth.CurrentUser(values[0])
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(context.WithValue(ctx, identityKey{}, id), req)
}

func (s *OrderServer) observe(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)

	if s.metrics != nil {
		s.metrics.RPCRequests.WithLabelValues(info.FullMethod, code.String()).Inc()
	}
	s.logger.Info("gRPC call",
		zap.String("method", info.FullMethod),
		zap.String("code", code.String()),
		zap.Duration("latency", time.Since(start)))

	return resp, err
}
