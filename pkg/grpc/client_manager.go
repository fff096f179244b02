package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/example/marketplace/pkg/config"
	"github.com/example/marketplace/pkg/discovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// QueryClient calls the order query service on behalf of a token holder.
type QueryClient struct {
	conn grpc.ClientConnInterface
}

func NewQueryClient(conn grpc.ClientConnInterface) *QueryClient {
	return &QueryClient{conn: conn}
}

// VendorOrders lists vendorID's projections; 0 means the token holder's own.
func (c *QueryClient) VendorOrders(ctx context.Context, token string, vendorID uint) (*structpb.Struct, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if vendorID != 0 {
		in.Fields["vendor_id"] = structpb.NewNumberValue(float64(vendorID))
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(withToken(ctx, token), vendorOrdersMethod, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *QueryClient) VendorDashboard(ctx context.Context, token string) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(withToken(ctx, token), vendorDashboardMethod, &structpb.Struct{}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, authorizationKey, "Bearer "+token)
}

// ClientManager owns the connection to the order query service, found through
// etcd when discovery is available and through static config otherwise.
type ClientManager struct {
	config    *config.Config
	discovery *discovery.ServiceDiscovery
	logger    *zap.Logger

	conn  *grpc.ClientConn
	query *QueryClient
}

func NewClientManager(cfg *config.Config, logger *zap.Logger, disc *discovery.ServiceDiscovery) *ClientManager {
	return &ClientManager{
		config:    cfg,
		discovery: disc,
		logger:    logger,
	}
}

func (m *ClientManager) Connect() error {
	target := m.resolve()
	m.logger.Info("Connecting to order query service", zap.String("target", target))

	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to order query service: %w", err)
	}

	m.conn = conn
	m.query = NewQueryClient(conn)
	return nil
}

func (m *ClientManager) resolve() string {
	target := fmt.Sprintf("%s:%d", m.config.Server.Host, m.config.Server.Port)
	if m.discovery == nil {
		return target
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	instances, err := m.discovery.Discover(ctx, m.config.Server.Name)
	if err != nil || len(instances) == 0 {
		m.logger.Info("Using configured address for order query service", zap.String("address", target), zap.Error(err))
		return target
	}
	m.logger.Info("Discovered order query service", zap.String("address", instances[0].Address()))
	return instances[0].Address()
}

func (m *ClientManager) Query() *QueryClient {
	return m.query
}

func (m *ClientManager) Close() error {
	if m.conn == nil {
		return nil
	}
	if err := m.conn.Close(); err != nil {
		return fmt.Errorf("order query connection close error: %w", err)
	}
	return nil
}
