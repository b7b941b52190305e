package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/callscope/core/internal/config"
)

const UsersCollection = "users"

// Mongo bundles the client and the application database handle.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo dials MongoDB, retrying with backoff until the deadline of ctx
// (unreachable Mongo at boot is common in container start-up ordering), and
// ensures the schema-level invariants the auth flow relies on.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	uri := cfg.URIValue()

	var client *mongo.Client
	backoff := retry.WithMaxDuration(2*time.Minute, retry.NewConstant(5*time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		c, err := mongo.Connect(dialCtx, options.Client().ApplyURI(uri))
		if err != nil {
			return retry.RetryableError(err)
		}
		if err := c.Ping(dialCtx, nil); err != nil {
			_ = c.Disconnect(dialCtx)
			logger.Warn("mongodb not reachable yet, retrying", zap.Error(err))
			return retry.RetryableError(err)
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mongodb connection failed: %w", err)
	}

	m := &Mongo{client: client, db: client.Database(cfg.DatabaseName())}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, fmt.Errorf("mongodb index setup failed: %w", err)
	}

	logger.Info("mongodb connected", zap.String("database", cfg.DatabaseName()))
	return m, nil
}

// ensureIndexes creates the unique index on users.email. The index, not the
// pre-insert existence check, is what arbitrates concurrent signups for the
// same address.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Users returns the user collection.
func (m *Mongo) Users() *mongo.Collection { return m.db.Collection(UsersCollection) }

// Ping checks connectivity; used by the health endpoint.
func (m *Mongo) Ping(ctx context.Context) error { return m.client.Ping(ctx, nil) }

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error { return m.client.Disconnect(ctx) }
