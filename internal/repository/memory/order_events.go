package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

type OrderEventRepository struct {
	store  *Store
	logger *zap.Logger
}

func (r *OrderEventRepository) Create(ctx context.Context, event *domain.OrderEvent) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events = append(r.store.events, *event)
	return nil
}

// GetByOrderID returns events in insertion order, which is creation order.
func (r *OrderEventRepository) GetByOrderID(ctx context.Context, orderID primitive.ObjectID) ([]*domain.OrderEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events := []*domain.OrderEvent{}
	for _, e := range r.store.events {
		if e.OrderID == orderID {
			event := e
			events = append(events, &event)
		}
	}
	return events, nil
}

type IdempotencyKeyRepository struct {
	store  *Store
	logger *zap.Logger
}

func (r *IdempotencyKeyRepository) GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	k, ok := r.store.idempotencyKeys[key]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (r *IdempotencyKeyRepository) Create(ctx context.Context, key *domain.IdempotencyKey) error {
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now().UTC()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.idempotencyKeys[key.Key]; exists {
		return &errors.ErrConflict{Message: "idempotency key already used"}
	}
	r.store.idempotencyKeys[key.Key] = *key
	return nil
}
