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

type ProductRepository struct {
	store  *Store
	logger *zap.Logger
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products = append(r.store.products, *product)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: id.Hex()}
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Product, error) {
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	products := make(map[primitive.ObjectID]*domain.Product, len(ids))
	for _, p := range r.store.products {
		if wanted[p.ID] {
			product := p
			products[p.ID] = &product
		}
	}
	return products, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	products := []*domain.Product{}
	for _, p := range r.store.products {
		if matchesProductFilter(&p, filter) {
			product := p
			products = append(products, &product)
		}
	}
	return products, nil
}

func matchesProductFilter(p *domain.Product, f domain.ProductFilter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	fields := []string{p.Name, p.Category}
	if p.Description != nil {
		fields = append(fields, *p.Description)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.ProductPatch) (*domain.Product, error) {
	return r.mutate(id, func(p *domain.Product) {
		p.Apply(patch)
	})
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (*domain.Product, error) {
	return r.mutate(id, func(p *domain.Product) {
		p.Stock += quantity
		p.Available = true
		p.Availability = true
	})
}

func (r *ProductRepository) mutate(id primitive.ObjectID, fn func(*domain.Product)) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.products {
		if r.store.products[i].ID == id {
			fn(&r.store.products[i])
			r.store.products[i].UpdatedAt = time.Now().UTC()
			product := r.store.products[i]
			return &product, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: id.Hex()}
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, p := range r.store.products {
		if p.ID == id {
			r.store.products = append(r.store.products[:i], r.store.products[i+1:]...)
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "product", ID: id.Hex()}
}
