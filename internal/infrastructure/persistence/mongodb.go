package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions describes how to reach the report database
type MongoOptions struct {
	URI            string
	Database       string
	Username       string
	Password       string
	ConnectTimeout time.Duration
}

// NewMongoDatabase connects, pings and returns the client together with the
// configured database handle. The caller disconnects the client.
func NewMongoDatabase(ctx context.Context, opts MongoOptions) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(opts.URI).
		SetAppName("flighthours-service")

	if opts.Username != "" && opts.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: opts.Username,
			Password: opts.Password,
		})
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(opts.Database), nil
}
