package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
)

// expandOrders resolves the products of all orders with one lookup. Lines whose
// product was deleted expand to a nil product.
func expandOrders(ctx context.Context, repos *repository.Repositories, orders []*domain.Order) ([]*domain.ExpandedOrder, error) {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, o := range orders {
		for _, id := range o.ProductIDs() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	products, err := repos.Product.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	expanded := make([]*domain.ExpandedOrder, len(orders))
	for i, o := range orders {
		expanded[i] = domain.ExpandOrder(o, products)
	}
	return expanded, nil
}
