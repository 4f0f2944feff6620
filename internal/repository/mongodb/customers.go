package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

type customerRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *mongo.Database, logger *zap.Logger) *customerRepository {
	return &customerRepository{
		coll:   db.Collection(CustomersCollection),
		logger: logger,
	}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	now := time.Now().UTC()
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, customer)
	if mongo.IsDuplicateKeyError(err) {
		return errors.Validation("Phone already registered")
	}
	if err != nil {
		r.logger.Error("Failed to create customer", zap.Error(err))
		return err
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id}, id.Hex())
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"phone": phone}, "")
}

func (r *customerRepository) GetByNameFold(ctx context.Context, name string) (*domain.Customer, error) {
	return r.findOne(ctx, bson.M{"name": equalFold(name)}, "")
}

func (r *customerRepository) findOne(ctx context.Context, filter bson.M, id string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.coll.FindOne(ctx, filter).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, &errors.ErrNotFound{Resource: "customer", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get customer", zap.Error(err))
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, password string) error {
	update := bson.M{"$set": bson.M{"password": password, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("Failed to update customer password", zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return &errors.ErrNotFound{Resource: "customer", ID: id.Hex()}
	}
	return nil
}
