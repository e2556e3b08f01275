package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/locallibrary/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo holds the client and the catalog database.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// NewMongo connects to MongoDB and pings the primary.
func NewMongo(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(cfg.Database.MongoURI).
		SetAppName(config.ServiceName)
	if cfg.Database.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.Database.MaxOpenConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, DatabasePingTimeout*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().Str("database", cfg.Database.MongoDatabase).Msg("connected to mongo")

	return &Mongo{
		Client: client,
		DB:     client.Database(cfg.Database.MongoDatabase),
		log:    logger,
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	m.log.Info().Msg("closing mongo client")
	return m.Client.Disconnect(ctx)
}
