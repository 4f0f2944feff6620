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
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type orderRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *mongo.Database, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		coll:   db.Collection(OrdersCollection),
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if order.Products == nil {
		order.Products = []domain.OrderLine{}
	}

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.Hex()}
	}
	if err != nil {
		r.logger.Error("Failed to get order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
}

func (r *orderRepository) ListByCustomerRef(ctx context.Context, q domain.CustomerRefQuery, limit int) ([]*domain.Order, error) {
	filter, ok := customerRefFilter(q)
	if !ok {
		return []*domain.Order{}, nil
	}
	opts := options.Find().SetSort(newestFirst)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

func (r *orderRepository) FindLatestByContact(ctx context.Context, phone, name string) (*domain.Order, error) {
	filter, ok := contactFilter(phone, name)
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order"}
	}

	var order domain.Order
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetSort(newestFirst)).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, &errors.ErrNotFound{Resource: "order"}
	}
	if err != nil {
		r.logger.Error("Failed to find order by contact", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.OrderPatch) (*domain.Order, error) {
	update := orderUpdate(patch)
	if len(update) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order domain.Order
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.Hex()}
	}
	if err != nil {
		r.logger.Error("Failed to update order", zap.String("order_id", id.Hex()), zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Order, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, err
	}

	orders := []*domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
