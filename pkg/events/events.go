// Package events fans domain events out to audit and streaming sinks through a
// single actor, so publishing never blocks or fails the request that caused it.
package events

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const (
	OrderCreated       = "order.created"
	OrderStatusUpdated = "order.status_updated"
	OrderDeleted       = "order.deleted"
	ItemStatusUpdated  = "order_item.status_updated"
)

type Event struct {
	Action     string         `json:"action"`
	EntityID   string         `json:"entity_id"`
	ActorID    uint           `json:"actor_id"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Sink receives every published event. Implementations must be safe to call
// from the dispatcher goroutine only; they are never called concurrently.
type Sink interface {
	Name() string
	Write(ctx context.Context, ev Event) error
}

// Publisher is what services depend on.
type Publisher interface {
	Publish(ev Event)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(Event) {}

type Bus struct {
	system *actor.ActorSystem
	pid    *actor.PID
	logger *zap.Logger
}

func NewBus(logger *zap.Logger, timeout time.Duration, sinks ...Sink) *Bus {
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return &dispatcher{logger: logger, sinks: sinks, timeout: timeout}
	})
	pid := system.Root.Spawn(props)

	return &Bus{system: system, pid: pid, logger: logger}
}

func (b *Bus) Publish(ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	b.system.Root.Send(b.pid, &ev)
}

// Close drains the mailbox before stopping the actor system.
func (b *Bus) Close() {
	if err := b.system.Root.PoisonFuture(b.pid).Wait(); err != nil {
		b.logger.Warn("Event bus did not drain cleanly", zap.Error(err))
	}
	b.system.Shutdown()
}

type dispatcher struct {
	logger  *zap.Logger
	sinks   []Sink
	timeout time.Duration
}

func (d *dispatcher) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *Event:
		for _, s := range d.sinks {
			d.write(s, *msg)
		}

	case *actor.Started:
		d.logger.Info("Event dispatcher started", zap.Int("sinks", len(d.sinks)))

	case *actor.Stopped:
		d.logger.Info("Event dispatcher stopped")
	}
}

func (d *dispatcher) write(s Sink, ev Event) {
	timeout := d.timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Write(ctx, ev); err != nil {
		d.logger.Error("Failed to write event",
			zap.String("sink", s.Name()),
			zap.String("action", ev.Action),
			zap.String("entity_id", ev.EntityID),
			zap.Error(err))
	}
}
