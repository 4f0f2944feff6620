package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

type OrderRepository struct {
	store  *Store
	logger *zap.Logger
}

// Create stores the order with its customer reference in the written form, an id
// or nothing, exactly as the document store would.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if order.Products == nil {
		order.Products = []domain.OrderLine{}
	}

	stored := cloneOrder(*order)
	stored.Customer = order.Customer.Normalized()
	r.insert(*stored)
	return nil
}

// Import stores the order verbatim, legacy customer shapes included.
func (r *OrderRepository) Import(order domain.Order) {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.insert(*cloneOrder(order))
}

func (r *OrderRepository) insert(order domain.Order) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders = append(r.store.orders, order)
}

func (r *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, o := range r.store.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.Hex()}
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.filter(func(*domain.Order) bool { return true }, 0), nil
}

func (r *OrderRepository) ListByCustomerRef(ctx context.Context, q domain.CustomerRefQuery, limit int) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool { return o.Customer.Matches(q) }, limit), nil
}

func (r *OrderRepository) FindLatestByContact(ctx context.Context, phone, name string) (*domain.Order, error) {
	if phone == "" && name == "" {
		return nil, &errors.ErrNotFound{Resource: "order"}
	}
	needle := strings.ToLower(name)
	matches := r.filter(func(o *domain.Order) bool {
		if phone != "" && o.Phone == phone {
			return true
		}
		if name == "" {
			return false
		}
		if strings.Contains(strings.ToLower(o.CustomerName), needle) {
			return true
		}
		return o.Customer.Shape == domain.RefShapeName && strings.Contains(strings.ToLower(o.Customer.Name), needle)
	}, 1)
	if len(matches) == 0 {
		return nil, &errors.ErrNotFound{Resource: "order"}
	}
	return matches[0], nil
}

func (r *OrderRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.OrderPatch) (*domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.orders {
		if r.store.orders[i].ID == id {
			if patch.SetLocation && patch.Location != nil {
				loc := *patch.Location
				patch.Location = &loc
			}
			patch.Apply(&r.store.orders[i])
			return cloneOrder(r.store.orders[i]), nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.Hex()}
}

// filter returns matching orders newest first, at most limit when limit > 0.
func (r *OrderRepository) filter(match func(*domain.Order) bool, limit int) []*domain.Order {
	r.store.mu.RLock()
	orders := []*domain.Order{}
	for i := range r.store.orders {
		if match(&r.store.orders[i]) {
			orders = append(orders, cloneOrder(r.store.orders[i]))
		}
	}
	r.store.mu.RUnlock()

	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return compareIDs(orders[i].ID, orders[j].ID) > 0
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders
}
