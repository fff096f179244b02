// Package gateway is the HTTP edge of the marketplace order backend.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/example/marketplace/docs"
	"github.com/example/marketplace/pkg/auth"
	"github.com/example/marketplace/pkg/config"
	"github.com/example/marketplace/pkg/metrics"
	"github.com/example/marketplace/pkg/models"
	"github.com/example/marketplace/pkg/order"
	"github.com/example/marketplace/pkg/reporting"
	"github.com/example/marketplace/pkg/waybill"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Authenticator interface {
	CurrentUser(header string) (auth.Identity, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, buyer auth.Identity, in order.CreateOrderInput) (*models.Order, error)
	ListOrdersForBuyer(ctx context.Context, buyerID uint) ([]models.Order, error)
	ListAllOrders(ctx context.Context, requester auth.Identity) ([]models.Order, error)
	ListOrdersForVendor(ctx context.Context, vendorID uint) ([]order.VendorOrder, error)
	UpdateItemStatus(ctx context.Context, orderID uint, actor auth.Identity, status string) (int64, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, requester auth.Identity, status, waybillNumber string) error
	DeleteOrder(ctx context.Context, orderID uint, requester auth.Identity) error
	Waybill(ctx context.Context, orderID uint) (waybill.Snapshot, error)
}

type ReportService interface {
	Dashboard(ctx context.Context, requester auth.Identity) (reporting.Dashboard, error)
}

type WaybillRenderer interface {
	Render(s waybill.Snapshot) ([]byte, error)
}

// IdempotencyStore is optional; without it Idempotency-Key headers are ignored.
type IdempotencyStore interface {
	Reserve(ctx context.Context, scope, key string) (result string, reserved bool, err error)
	Complete(ctx context.Context, scope, key, result string) error
	Release(ctx context.Context, scope, key string) error
}

type Deps struct {
	Auth        Authenticator
	Orders      OrderService
	Reports     ReportService
	Waybills    WaybillRenderer
	Idempotency IdempotencyStore
	Metrics     *metrics.ServerMetrics
}

type Gateway struct {
	config      *config.Config
	logger      *zap.Logger
	router      *gin.Engine
	server      *http.Server
	auth        Authenticator
	orders      OrderService
	reports     ReportService
	waybills    WaybillRenderer
	idempotency IdempotencyStore
	metrics     *metrics.ServerMetrics
}

func NewGateway(cfg *config.Config, logger *zap.Logger, deps Deps) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(logger))
	router.Use(cors.New(corsConfig(cfg.Gateway.CORSOrigins)))

	m := deps.Metrics
	if m == nil {
		m = metrics.NewServerMetrics("gateway")
	}
	router.Use(metricsMiddleware(m))

	return &Gateway{
		config: cfg,
		logger: logger,
		router: router,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Gateway.Host, cfg.Gateway.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		auth:        deps.Auth,
		orders:      deps.Orders,
		reports:     deps.Reports,
		waybills:    deps.Waybills,
		idempotency: deps.Idempotency,
		metrics:     m,
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	g.router.GET("/metrics", gin.WrapH(g.metrics.Handler()))

	v1 := g.router.Group("/api/v1")
	v1.Use(authRequired(g.auth))
	{
		orders := v1.Group("/orders")
		{
			orders.POST("", g.createOrder)
			orders.GET("", g.listOrders)
			orders.GET("/all", g.listAllOrders)
			orders.GET("/vendor", g.listVendorOrders)
			orders.GET("/vendor-stats", g.vendorStats)
			orders.GET("/vendor-stats/export", g.exportVendorStats)
			orders.PATCH("/:id/items/status", g.updateItemStatus)
			orders.PATCH("/:id/status", g.updateOrderStatus)
			orders.DELETE("/:id", g.deleteOrder)
			orders.GET("/:id/waybill", g.printWaybill)
		}
	}

	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (g *Gateway) Handler() http.Handler {
	return g.router
}

func (g *Gateway) Start() error {
	g.logger.Info("Gateway starting", zap.String("address", g.server.Addr))

	if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}
