package memory

import (
	"bytes"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
)

// Store keeps every collection in process memory. It backs tests and
// STORE_DRIVER=memory; contents are lost on exit.
type Store struct {
	mu              sync.RWMutex
	products        []domain.Product
	customers       []domain.Customer
	orders          []domain.Order
	searches        []domain.OutOfStockSearch
	events          []domain.OrderEvent
	idempotencyKeys map[string]domain.IdempotencyKey
}

func NewStore() *Store {
	return &Store{
		products:        []domain.Product{},
		customers:       []domain.Customer{},
		orders:          []domain.Order{},
		searches:        []domain.OutOfStockSearch{},
		events:          []domain.OrderEvent{},
		idempotencyKeys: make(map[string]domain.IdempotencyKey),
	}
}

// NewRepositories creates a new set of repositories over one shared store
func NewRepositories(store *Store, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Product:        &ProductRepository{store: store, logger: logger},
		Customer:       &CustomerRepository{store: store, logger: logger},
		Order:          &OrderRepository{store: store, logger: logger},
		OutOfStock:     &OutOfStockRepository{store: store, logger: logger},
		OrderEvent:     &OrderEventRepository{store: store, logger: logger},
		IdempotencyKey: &IdempotencyKeyRepository{store: store, logger: logger},
	}
}

func compareIDs(a, b primitive.ObjectID) int {
	return bytes.Compare(a[:], b[:])
}

func cloneOrder(o domain.Order) *domain.Order {
	out := o
	out.Products = append([]domain.OrderLine{}, o.Products...)
	if o.Location != nil {
		loc := *o.Location
		out.Location = &loc
	}
	return &out
}
