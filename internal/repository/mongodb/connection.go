package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/config"
)

// Collection names
const (
	ProductsCollection        = "products"
	CustomersCollection       = "customers"
	OrdersCollection          = "orders"
	OutOfStockCollection      = "outofstocks"
	OrderEventsCollection     = "order_events"
	IdempotencyKeysCollection = "idempotency_keys"
)

// NewConnection connects to MongoDB and pings the primary before returning.
func NewConnection(ctx context.Context, cfg config.StoreConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
