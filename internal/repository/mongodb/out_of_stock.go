package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

type outOfStockRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewOutOfStockRepository creates a new out-of-stock search repository
func NewOutOfStockRepository(db *mongo.Database, logger *zap.Logger) *outOfStockRepository {
	return &outOfStockRepository{
		coll:   db.Collection(OutOfStockCollection),
		logger: logger,
	}
}

func (r *outOfStockRepository) Create(ctx context.Context, search *domain.OutOfStockSearch) error {
	if search.ID.IsZero() {
		search.ID = primitive.NewObjectID()
	}
	if search.SearchedAt.IsZero() {
		search.SearchedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, search); err != nil {
		r.logger.Error("Failed to record out-of-stock search", zap.Error(err))
		return err
	}
	return nil
}

func (r *outOfStockRepository) Search(ctx context.Context, q domain.SearchQuery) ([]*domain.OutOfStockSearch, int64, error) {
	filter := searchTermFilter(q.Term)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count out-of-stock searches", zap.Error(err))
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "searchedAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list out-of-stock searches", zap.Error(err))
		return nil, 0, err
	}

	searches := []*domain.OutOfStockSearch{}
	if err := cursor.All(ctx, &searches); err != nil {
		return nil, 0, err
	}
	return searches, total, nil
}

func (r *outOfStockRepository) Aggregate(ctx context.Context, since time.Time, limit int) ([]*domain.SearchTermStat, error) {
	cursor, err := r.coll.Aggregate(ctx, searchTermAggregation(since, limit))
	if err != nil {
		r.logger.Error("Failed to aggregate out-of-stock searches", zap.Error(err))
		return nil, err
	}

	stats := []*domain.SearchTermStat{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
