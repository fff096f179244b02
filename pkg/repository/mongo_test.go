package repository

import (
	"testing"
	"time"

	"github.com/example/marketplace/pkg/events"
	"github.com/stretchr/testify/assert"
)

func TestNewAuditLog(t *testing.T) {
	at := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	log := NewAuditLog("gateway", events.Event{
		Action:     events.ItemStatusUpdated,
		EntityID:   "42",
		ActorID:    10,
		Data:       map[string]any{"status": "SHIPPED", "updated": int64(2)},
		OccurredAt: at,
	})

	assert.Equal(t, "gateway", log.Source)
	assert.Equal(t, events.ItemStatusUpdated, log.Action)
	assert.Equal(t, "42", log.EntityID)
	assert.Equal(t, uint(10), log.ActorID)
	assert.Equal(t, "SHIPPED", log.Data["status"])
	assert.Equal(t, at, log.CreatedAt)
}

func TestNewAuditLogDefaults(t *testing.T) {
	log := NewAuditLog("order-query", events.Event{Action: events.OrderDeleted, EntityID: "7"})
	assert.Nil(t, log.Data)
	assert.False(t, log.CreatedAt.IsZero())
}
