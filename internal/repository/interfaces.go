package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

// ProductRepository defines product data access methods
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	// GetByIDs returns the products that still exist, keyed by id. Missing ids are absent.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, patch domain.ProductPatch) (*domain.Product, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (*domain.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CustomerRepository defines customer data access methods
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	// GetByNameFold matches the whole name case-insensitively.
	GetByNameFold(ctx context.Context, name string) (*domain.Customer, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, password string) error
}

// OrderRepository defines order data access methods
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	// List returns every order, newest first.
	List(ctx context.Context) ([]*domain.Order, error)
	// ListByCustomerRef returns orders whose customer field was stored in the query's
	// shape, newest first.
	ListByCustomerRef(ctx context.Context, q domain.CustomerRefQuery, limit int) ([]*domain.Order, error)
	// FindLatestByContact returns the newest order whose phone equals phone or whose
	// customer name contains name case-insensitively. Empty arguments are ignored.
	FindLatestByContact(ctx context.Context, phone, name string) (*domain.Order, error)
	Update(ctx context.Context, id primitive.ObjectID, patch domain.OrderPatch) (*domain.Order, error)
}

// OutOfStockRepository defines out-of-stock search log access methods
type OutOfStockRepository interface {
	Create(ctx context.Context, search *domain.OutOfStockSearch) error
	Search(ctx context.Context, q domain.SearchQuery) ([]*domain.OutOfStockSearch, int64, error)
	Aggregate(ctx context.Context, since time.Time, limit int) ([]*domain.SearchTermStat, error)
}

// OrderEventRepository defines order event data access methods
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	GetByOrderID(ctx context.Context, orderID primitive.ObjectID) ([]*domain.OrderEvent, error)
}

// IdempotencyKeyRepository defines idempotency key data access methods. Keys are
// written after the order they point to, so they guard retries, not concurrent
// duplicates.
type IdempotencyKeyRepository interface {
	// GetByKey returns nil, nil when the key is unknown.
	GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error)
	Create(ctx context.Context, key *domain.IdempotencyKey) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Product        ProductRepository
	Customer       CustomerRepository
	Order          OrderRepository
	OutOfStock     OutOfStockRepository
	OrderEvent     OrderEventRepository
	IdempotencyKey IdempotencyKeyRepository
}
