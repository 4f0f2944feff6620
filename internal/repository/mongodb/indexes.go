package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

func indexPlan() []collectionIndexes {
	return []collectionIndexes{
		{CustomersCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_phone")},
		}},
		{OrdersCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("created_at")},
			{Keys: bson.D{{Key: "phone", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("phone_created_at")},
			{Keys: bson.D{{Key: "customer", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("customer_created_at")},
		}},
		{OutOfStockCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "searchTerm", Value: 1}, {Key: "searchedAt", Value: -1}}, Options: options.Index().SetName("term_searched_at")},
			{Keys: bson.D{{Key: "username", Value: 1}, {Key: "searchedAt", Value: -1}}, Options: options.Index().SetName("username_searched_at")},
		}},
		{OrderEventsCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "orderId", Value: 1}, {Key: "createdAt", Value: 1}}, Options: options.Index().SetName("order_created_at")},
		}},
	}
}

// EnsureIndexes creates the indexes the repositories rely on. Creating an existing
// index is a no-op, so it is safe to run on every deploy.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	for _, plan := range indexPlan() {
		names, err := db.Collection(plan.collection).Indexes().CreateMany(ctx, plan.models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", plan.collection, err)
		}
		logger.Info("Indexes ensured", zap.String("collection", plan.collection), zap.Strings("indexes", names))
	}
	return nil
}
