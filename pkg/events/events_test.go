package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu     sync.Mutex
	name   string
	events []Event
	err    error
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Write(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestBusDeliversToEverySinkInOrder(t *testing.T) {
	failing := &recordingSink{name: "failing", err: errors.New("unavailable")}
	ok := &recordingSink{name: "ok"}
	bus := NewBus(zap.NewNop(), time.Second, failing, ok)

	bus.Publish(Event{Action: OrderCreated, EntityID: "1", ActorID: 7})
	bus.Publish(Event{Action: ItemStatusUpdated, EntityID: "1", ActorID: 9, Data: map[string]any{"updated": 2}})
	bus.Close()

	for _, s := range []*recordingSink{failing, ok} {
		got := s.snapshot()
		require.Len(t, got, 2, s.name)
		assert.Equal(t, OrderCreated, got[0].Action)
		assert.Equal(t, ItemStatusUpdated, got[1].Action)
		assert.False(t, got[0].OccurredAt.IsZero())
	}
}

func TestKafkaMessageShape(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	msg, err := message(Event{Action: OrderCreated, EntityID: "42", ActorID: 3, OccurredAt: at})
	require.NoError(t, err)

	assert.Equal(t, []byte("42"), msg.Key)
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte(OrderCreated), msg.Headers[0].Value)

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, uint(3), decoded.ActorID)
	assert.Equal(t, "42", decoded.EntityID)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	p.Publish(Event{Action: OrderDeleted})
}
