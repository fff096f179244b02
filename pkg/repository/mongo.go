package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/marketplace/pkg/config"
	"github.com/example/marketplace/pkg/events"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoConnectTimeout = 10 * time.Second

// MongoRepository is the append-only audit trail of order events.
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	source     string
}

// NewMongoRepository connects, pings and makes sure the per-entity index exists.
// source is recorded on every entry to tell the writing binary apart.
func NewMongoRepository(cfg *config.MongoDBConfig, source string) (*MongoRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	m := &MongoRepository{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		source:     source,
	}

	_, err = m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entity_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create audit index: %w", err)
	}
	return m, nil
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

type AuditLog struct {
	ID        string    `bson:"_id,omitempty"`
	Source    string    `bson:"source"`
	Action    string    `bson:"action"`
	EntityID  string    `bson:"entity_id"`
	ActorID   uint      `bson:"actor_id"`
	Data      bson.M    `bson:"data,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func NewAuditLog(source string, ev events.Event) *AuditLog {
	var data bson.M
	if len(ev.Data) > 0 {
		data = make(bson.M, len(ev.Data))
		for k, v := range ev.Data {
			data[k] = v
		}
	}
	created := ev.OccurredAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return &AuditLog{
		Source:    source,
		Action:    ev.Action,
		EntityID:  ev.EntityID,
		ActorID:   ev.ActorID,
		Data:      data,
		CreatedAt: created,
	}
}

// Name and Write make the audit trail an events.Sink.
func (m *MongoRepository) Name() string { return "mongo-audit" }

func (m *MongoRepository) Write(ctx context.Context, ev events.Event) error {
	_, err := m.collection.InsertOne(ctx, NewAuditLog(m.source, ev))
	return err
}
