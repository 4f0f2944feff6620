package memory

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

type CustomerRepository struct {
	store  *Store
	logger *zap.Logger
}

// Create enforces the same unique phone constraint as the customers index.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.customers {
		if c.Phone == customer.Phone {
			return errors.Validation("Phone already registered")
		}
	}

	now := time.Now().UTC()
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now
	r.store.customers = append(r.store.customers, *customer)
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	return r.find(func(c *domain.Customer) bool { return c.ID == id }, id.Hex())
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return r.find(func(c *domain.Customer) bool { return c.Phone == phone }, "")
}

func (r *CustomerRepository) GetByNameFold(ctx context.Context, name string) (*domain.Customer, error) {
	return r.find(func(c *domain.Customer) bool { return strings.EqualFold(c.Name, name) }, "")
}

func (r *CustomerRepository) find(match func(*domain.Customer) bool, id string) (*domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, c := range r.store.customers {
		if match(&c) {
			customer := c
			return &customer, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "customer", ID: id}
}

func (r *CustomerRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, password string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.customers {
		if r.store.customers[i].ID == id {
			r.store.customers[i].Password = password
			r.store.customers[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "customer", ID: id.Hex()}
}
