package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultPingTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB
// connection.
type Config struct {
	URI      string
	Database string
}

// Connect builds a MongoDB client and returns it together with the
// selected database. It fails only on an unusable URI; reachability is
// not checked here so that the process can come up even while the
// database is down. Use Ping to verify connectivity.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// Ping verifies connectivity with a bounded round trip. Callers decide
// whether a failure is fatal; at startup it is logged and ignored so
// that data operations fail per request instead of the process refusing
// to start.
func Ping(ctx context.Context, client *mongo.Client, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}
