// Package app assembles the order backend from configuration. Both binaries
// build one App and hang their transport off it.
package app

import (
	"context"
	"time"

	"github.com/example/marketplace/gateway"
	"github.com/example/marketplace/pkg/auth"
	"github.com/example/marketplace/pkg/config"
	"github.com/example/marketplace/pkg/events"
	"github.com/example/marketplace/pkg/metrics"
	"github.com/example/marketplace/pkg/order"
	"github.com/example/marketplace/pkg/reporting"
	"github.com/example/marketplace/pkg/repository"
	"github.com/example/marketplace/pkg/waybill"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const eventWriteTimeout = 5 * time.Second

type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Service string

	DB          *gorm.DB
	Redis       *repository.RedisRepository
	Idempotency *repository.IdempotencyStore

	Auth     *auth.Provider
	Orders   *order.Service
	Reports  *reporting.Service
	Waybills *waybill.Renderer

	bus     *events.Bus
	closers []func()
}

// New opens the database (migrating it) and connects the optional backends.
// Redis, MongoDB and Kafka are skipped when unconfigured; an unreachable Redis
// or MongoDB is logged and the app runs without it. service names the binary
// in audit entries.
func New(cfg *config.Config, service string, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger, Service: service}

	db, err := repository.OpenDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.onClose(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repository.Migrate(db); err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Redis.Enabled() {
		a.connectRedis()
	}

	a.bus = events.NewBus(logger.Named("events"), eventWriteTimeout, a.sinks()...)

	orders := repository.NewOrderRepository(db)
	a.Auth = auth.NewProvider(&cfg.Auth)
	a.Orders = order.NewService(
		orders,
		repository.NewProductRepository(db),
		repository.NewUserRepository(db, a.Redis),
		a.bus,
		logger.Named("order"),
	)
	a.Reports = reporting.NewService(orders, logger.Named("reporting"))
	a.Waybills = waybill.NewRenderer(cfg.Waybill)

	return a, nil
}

func (a *App) connectRedis() {
	r := repository.NewRedisRepository(&a.Config.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := r.Ping(ctx); err != nil {
		a.Logger.Warn("Redis connection failed, continuing without cache", zap.Error(err))
		_ = r.Close()
		return
	}
	a.Logger.Info("Redis connected successfully", zap.String("addr", a.Config.Redis.Addr))

	a.Redis = r
	a.Idempotency = repository.NewIdempotencyStore(r)
	a.onClose(func() { _ = r.Close() })
}

func (a *App) sinks() []events.Sink {
	var sinks []events.Sink

	if a.Config.MongoDB.Enabled() {
		m, err := repository.NewMongoRepository(&a.Config.MongoDB, a.Service)
		if err != nil {
			a.Logger.Warn("MongoDB unavailable, audit log disabled", zap.Error(err))
		} else {
			sinks = append(sinks, m)
			a.onClose(func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = m.Close(ctx)
			})
		}
	}

	if a.Config.Kafka.Enabled() {
		k := events.NewKafkaSink(a.Config.Kafka.Brokers, a.Config.Kafka.Topic)
		sinks = append(sinks, k)
		a.onClose(func() { _ = k.Close() })
	}

	return sinks
}

// GatewayDeps hands the HTTP edge its collaborators.
func (a *App) GatewayDeps(m *metrics.ServerMetrics) gateway.Deps {
	deps := gateway.Deps{
		Auth:     a.Auth,
		Orders:   a.Orders,
		Reports:  a.Reports,
		Waybills: a.Waybills,
		Metrics:  m,
	}
	if a.Idempotency != nil {
		deps.Idempotency = a.Idempotency
	}
	return deps
}

func (a *App) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// Close drains pending events, then releases backends in reverse order of opening.
func (a *App) Close() {
	if a.bus != nil {
		a.bus.Close()
		a.bus = nil
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
