package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

func floatp(v float64) *float64 { return &v }
func strp(v string) *string     { return &v }

func TestCreateOrderTokenIdentityWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "A", "111")
	b := f.register(t, "B", "222")
	milk := f.product(t, "Milk", 40)

	order, err := f.svc.Orders.Create(ctx, CreateOrderRequest{
		Customer:      domain.ResolvedCustomer(b.ID),
		Products:      []OrderLineRequest{{ProductID: milk.ID.Hex(), Quantity: 2}},
		Total:         80,
		PaymentMethod: "cod",
	}, CreateOrderOptions{TokenCustomer: a.ID})
	require.NoError(t, err)

	assert.Equal(t, a.ID, order.Customer.ID)
	assert.Equal(t, "A", order.CustomerName)
	assert.Equal(t, domain.OrderStatusPlaced, order.Status)

	stored, err := f.repos.Order.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, stored.Customer.ID)
}

func TestCreateOrderClientCustomerResolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.register(t, "Asha", "111")

	order, err := f.svc.Orders.Create(ctx, CreateOrderRequest{
		Customer:      domain.CustomerRef{ID: c.ID, Shape: domain.RefShapeIDString},
		PaymentMethod: "qr",
	}, CreateOrderOptions{})
	require.NoError(t, err)
	assert.Equal(t, c.ID, order.Customer.ID)
	assert.Equal(t, "Asha", order.CustomerName)

	order, err = f.svc.Orders.Create(ctx, CreateOrderRequest{
		Customer:      domain.ResolvedCustomer(primitive.NewObjectID()),
		CustomerName:  "Walk-in",
		PaymentMethod: "qr",
	}, CreateOrderOptions{})
	require.NoError(t, err)
	assert.False(t, order.Customer.IsResolved())
	assert.Equal(t, "Walk-in", order.CustomerName)

	order, err = f.svc.Orders.Create(ctx, CreateOrderRequest{
		Customer:      domain.UnresolvedCustomer("Guest"),
		PaymentMethod: "cod",
	}, CreateOrderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Guest", order.CustomerName)
	assert.False(t, order.Customer.IsResolved())
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"bad payment method", CreateOrderRequest{CustomerName: "A", PaymentMethod: "card"}},
		{"missing customer name", CreateOrderRequest{PaymentMethod: "cod"}},
		{"bad product id", CreateOrderRequest{CustomerName: "A", PaymentMethod: "cod", Products: []OrderLineRequest{{ProductID: "xyz", Quantity: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Orders.Create(ctx, tt.req, CreateOrderOptions{})
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestCreateOrderDerivesMapsLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.Orders.Create(ctx, CreateOrderRequest{
		CustomerName:  "A",
		PaymentMethod: "cod",
		Location:      &domain.Location{Latitude: floatp(12.34), Longitude: floatp(56.78), City: "Salem", MapsLink: "https://phish.example"},
	}, CreateOrderOptions{})
	require.NoError(t, err)
	require.NotNil(t, order.Location)
	assert.Equal(t, "https://www.google.com/maps?q=12.34,56.78", order.Location.MapsLink)

	order, err = f.svc.Orders.Create(ctx, CreateOrderRequest{
		CustomerName:  "A",
		PaymentMethod: "cod",
		Location:      &domain.Location{City: "Salem", MapsLink: "https://phish.example"},
	}, CreateOrderOptions{})
	require.NoError(t, err)
	assert.Empty(t, order.Location.MapsLink)
}

func TestCreateOrderNotifiesAndAudits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.product(t, "Milk", 40)

	order, err := f.svc.Orders.Create(ctx, CreateOrderRequest{
		CustomerName:  "A",
		PaymentMethod: "cod",
		Products:      []OrderLineRequest{{ProductID: milk.ID.Hex(), Quantity: 1}},
	}, CreateOrderOptions{})
	require.NoError(t, err)

	require.Len(t, f.notifier.orders, 1)
	notified := f.notifier.orders[0]
	assert.Equal(t, order.ID, notified.ID)
	require.Len(t, notified.Products, 1)
	assert.Equal(t, "Milk", notified.Products[0].Product.Name)

	events, err := f.svc.Orders.Events(ctx, order.ID.Hex())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventOrderCreated, events[0].EventType)
}

func TestCreateOrderStoresIdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.Orders.Create(ctx, CreateOrderRequest{CustomerName: "A", PaymentMethod: "cod"},
		CreateOrderOptions{IdempotencyKey: "k1", RequestHash: "h1"})
	require.NoError(t, err)

	key, err := f.repos.IdempotencyKey.GetByKey(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, order.ID, key.OrderID)
	assert.Equal(t, "h1", key.RequestHash)
}

func TestUpdateOrderPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.product(t, "Milk", 40)
	order, err := f.svc.Orders.Create(ctx, CreateOrderRequest{
		CustomerName:  "A",
		Address:       "12 Main St",
		PaymentMethod: "cod",
		Products:      []OrderLineRequest{{ProductID: milk.ID.Hex(), Quantity: 2}},
		Location:      &domain.Location{Latitude: floatp(1), Longitude: floatp(2)},
	}, CreateOrderOptions{})
	require.NoError(t, err)

	updated, err := f.svc.Orders.Update(ctx, order.ID.Hex(), UpdateOrderRequest{Status: strp("Packed")})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPacked, updated.Status)
	assert.Equal(t, order.Address, updated.Address)
	assert.Equal(t, order.Products, updated.Products)
	assert.Equal(t, order.Location, updated.Location)

	loc := json.RawMessage(`{"latitude":5,"longitude":6,"city":"Erode"}`)
	updated, err = f.svc.Orders.Update(ctx, order.ID.Hex(), UpdateOrderRequest{Location: loc})
	require.NoError(t, err)
	assert.Equal(t, "Erode", updated.Location.City)
	assert.Empty(t, updated.Location.MapsLink)

	events, err := f.svc.Orders.Events(ctx, order.ID.Hex())
	require.NoError(t, err)
	var types []string
	for _, e := range events {
		types = append(types, e.EventType)
	}
	assert.Equal(t, []string{domain.EventOrderCreated, domain.EventStatusChange, domain.EventOrderUpdated}, types)
}

func TestUpdateOrderErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Orders.Update(ctx, primitive.NewObjectID().Hex(), UpdateOrderRequest{})
	assert.True(t, errors.IsValidation(err))

	_, err = f.svc.Orders.Update(ctx, primitive.NewObjectID().Hex(), UpdateOrderRequest{Status: strp("Packed")})
	assert.True(t, errors.IsNotFound(err))

	_, err = f.svc.Orders.Update(ctx, "bogus", UpdateOrderRequest{Status: strp("Packed")})
	assert.True(t, errors.IsNotFound(err))
}

func TestStrictStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order, err := f.svc.Orders.Create(ctx, CreateOrderRequest{CustomerName: "A", PaymentMethod: "cod", Status: "Delivered"}, CreateOrderOptions{})
	require.NoError(t, err)

	// free text by default
	_, err = f.svc.Orders.Update(ctx, order.ID.Hex(), UpdateOrderRequest{Status: strp("Placed")})
	require.NoError(t, err)
	_, err = f.svc.Orders.Update(ctx, order.ID.Hex(), UpdateOrderRequest{Status: strp("Delivered")})
	require.NoError(t, err)

	f.svc.Orders.cfg.StrictStatus = true
	_, err = f.svc.Orders.Update(ctx, order.ID.Hex(), UpdateOrderRequest{Status: strp("Placed")})
	var transition *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, domain.OrderStatusDelivered, transition.From)
}

func TestListExpandsDeletedProductsAsNil(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	milk := f.product(t, "Milk", 40)
	bread := f.product(t, "Bread", 30)

	_, err := f.svc.Orders.Create(ctx, CreateOrderRequest{
		CustomerName:  "A",
		PaymentMethod: "cod",
		Products: []OrderLineRequest{
			{ProductID: milk.ID.Hex(), Quantity: 1},
			{ProductID: bread.ID.Hex(), Quantity: 2},
		},
	}, CreateOrderOptions{})
	require.NoError(t, err)
	require.NoError(t, f.svc.Products.Delete(ctx, bread.ID.Hex()))

	orders, err := f.svc.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Products, 2)
	assert.Equal(t, "Milk", orders[0].Products[0].Product.Name)
	assert.Nil(t, orders[0].Products[1].Product)
	assert.Equal(t, 2, orders[0].Products[1].Quantity)
}
