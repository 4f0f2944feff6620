package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

func newRepos() (*Store, *OrderRepository) {
	store := NewStore()
	repos := NewRepositories(store, zap.NewNop())
	return store, repos.Order.(*OrderRepository)
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewStore(), zap.NewNop())

	desc := "Fresh toned milk"
	milk := &domain.Product{Name: "Milk", Category: "Dairy", Price: 40, Description: &desc}
	require.NoError(t, repos.Product.Create(ctx, milk))
	require.False(t, milk.ID.IsZero())

	got, err := repos.Product.GetByID(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)

	list, err := repos.Product.List(ctx, domain.ProductFilter{Search: "TONED"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = repos.Product.List(ctx, domain.ProductFilter{Category: "Bakery"})
	require.NoError(t, err)
	assert.Empty(t, list)

	restocked, err := repos.Product.IncrementStock(ctx, milk.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, restocked.Stock)
	assert.True(t, restocked.Available)

	require.NoError(t, repos.Product.Delete(ctx, milk.ID))
	_, err = repos.Product.GetByID(ctx, milk.ID)
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(repos.Product.Delete(ctx, milk.ID)))
}

func TestCustomerPhoneIsUnique(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewStore(), zap.NewNop())

	first := &domain.Customer{Name: "A", Phone: "111"}
	require.NoError(t, repos.Customer.Create(ctx, first))

	err := repos.Customer.Create(ctx, &domain.Customer{Name: "B", Phone: "111"})
	assert.True(t, errors.IsValidation(err))

	got, err := repos.Customer.GetByPhone(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "A", got.Name)

	got, err = repos.Customer.GetByNameFold(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestOrderCreateNormalizesCustomer(t *testing.T) {
	ctx := context.Background()
	_, orders := newRepos()

	order := &domain.Order{Customer: domain.UnresolvedCustomer("Walk-in"), CustomerName: "Walk-in"}
	require.NoError(t, orders.Create(ctx, order))

	got, err := orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerRef{}, got.Customer)
	assert.Equal(t, "Walk-in", got.CustomerName)
}

func TestListByCustomerRefMatchesOnlyThatShape(t *testing.T) {
	ctx := context.Background()
	_, orders := newRepos()
	id := primitive.NewObjectID()
	base := time.Now().UTC()

	orders.Import(domain.Order{Customer: domain.ResolvedCustomer(id), CreatedAt: base})
	orders.Import(domain.Order{Customer: domain.CustomerRef{ID: id, Shape: domain.RefShapeIDString}, CreatedAt: base.Add(time.Minute)})
	orders.Import(domain.Order{Customer: domain.CustomerRef{Name: "Asha", Shape: domain.RefShapeName}, CreatedAt: base.Add(2 * time.Minute)})

	got, err := orders.ListByCustomerRef(ctx, domain.CustomerRefQuery{Shape: domain.RefShapeObjectID, ID: id}, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = orders.ListByCustomerRef(ctx, domain.CustomerRefQuery{Shape: domain.RefShapeName, Name: "Asha"}, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Asha", got[0].Customer.Name)
}

func TestFindLatestByContact(t *testing.T) {
	ctx := context.Background()
	_, orders := newRepos()
	base := time.Now().UTC()

	orders.Import(domain.Order{CustomerName: "Asha Rao", Phone: "111", Address: "old", CreatedAt: base})
	orders.Import(domain.Order{CustomerName: "Asha Rao", Phone: "111", Address: "new", CreatedAt: base.Add(time.Hour)})
	orders.Import(domain.Order{Customer: domain.CustomerRef{Name: "Legacy Lal", Shape: domain.RefShapeName}, Address: "legacy", CreatedAt: base})

	got, err := orders.FindLatestByContact(ctx, "111", "")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Address)

	got, err = orders.FindLatestByContact(ctx, "", "asha")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Address)

	got, err = orders.FindLatestByContact(ctx, "", "lal")
	require.NoError(t, err)
	assert.Equal(t, "legacy", got.Address)

	_, err = orders.FindLatestByContact(ctx, "999", "nobody")
	assert.True(t, errors.IsNotFound(err))
}

func TestOrderUpdateLeavesOtherFields(t *testing.T) {
	ctx := context.Background()
	_, orders := newRepos()
	lat, lng := 1.0, 2.0
	order := &domain.Order{
		Address:  "12 Main St",
		Status:   domain.OrderStatusPlaced,
		Products: []domain.OrderLine{{ProductID: primitive.NewObjectID(), Quantity: 2}},
		Location: &domain.Location{Latitude: &lat, Longitude: &lng, City: "Salem"},
	}
	require.NoError(t, orders.Create(ctx, order))

	packed := domain.OrderStatusPacked
	got, err := orders.Update(ctx, order.ID, domain.OrderPatch{Status: &packed})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPacked, got.Status)
	assert.Equal(t, "12 Main St", got.Address)
	assert.Equal(t, order.Products, got.Products)
	assert.Equal(t, order.Location, got.Location)

	_, err = orders.Update(ctx, primitive.NewObjectID(), domain.OrderPatch{Status: &packed})
	assert.True(t, errors.IsNotFound(err))
}

func TestOutOfStockSearchAndAggregate(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewStore(), zap.NewNop())
	customer := primitive.NewObjectID()
	now := time.Now().UTC()

	records := []*domain.OutOfStockSearch{
		{SearchTerm: "paneer", SearchedAt: now.Add(-3 * time.Minute), CustomerID: &customer},
		{SearchTerm: "paneer", SearchedAt: now.Add(-2 * time.Minute), CustomerID: &customer},
		{SearchTerm: "paneer", SearchedAt: now.Add(-1 * time.Minute), SessionID: "s1"},
		{SearchTerm: "Paneer", SearchedAt: now},
		{SearchTerm: "ghee", SearchedAt: now.Add(-40 * 24 * time.Hour)},
	}
	for _, rec := range records {
		require.NoError(t, repos.OutOfStock.Create(ctx, rec))
	}

	page, total, err := repos.OutOfStock.Search(ctx, domain.SearchQuery{Term: "PAN", Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Paneer", page[0].SearchTerm)

	page, _, err = repos.OutOfStock.Search(ctx, domain.SearchQuery{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page)

	stats, err := repos.OutOfStock.Aggregate(ctx, now.Add(-30*24*time.Hour), 50)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "paneer", stats[0].SearchTerm)
	assert.Equal(t, 3, stats[0].Count)
	assert.Equal(t, 2, stats[0].UniqueUserCount)
	assert.Equal(t, "Paneer", stats[1].SearchTerm)
	assert.Equal(t, 1, stats[1].Count)
}

func TestIdempotencyKeys(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(NewStore(), zap.NewNop())

	got, err := repos.IdempotencyKey.GetByKey(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, got)

	key := &domain.IdempotencyKey{Key: "k1", OrderID: primitive.NewObjectID(), RequestHash: "h"}
	require.NoError(t, repos.IdempotencyKey.Create(ctx, key))

	got, err = repos.IdempotencyKey.GetByKey(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, key.OrderID, got.OrderID)

	var conflict *errors.ErrConflict
	assert.ErrorAs(t, repos.IdempotencyKey.Create(ctx, key), &conflict)
}
