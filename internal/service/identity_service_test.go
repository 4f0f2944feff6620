package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/auth"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.register(t, "A", "111")
	assert.True(t, auth.IsHashed(first.Password))

	_, err := f.svc.Identity.Register(ctx, RegisterRequest{Name: "B", Phone: "111", Password: "q"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, "Phone already registered", err.Error())

	still, err := f.repos.Customer.GetByPhone(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "A", still.Name)
}

func TestRegisterRequiresFields(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Identity.Register(context.Background(), RegisterRequest{Name: "A", Phone: " "})
	assert.True(t, errors.IsValidation(err))
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "Asha", "111")

	_, _, wrongPassword := f.svc.Identity.Login(ctx, LoginRequest{Identifier: "111", Password: "nope"})
	_, _, unknownPhone := f.svc.Identity.Login(ctx, LoginRequest{Identifier: "999", Password: "nope"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownPhone)
	assert.True(t, errors.IsUnauthorized(wrongPassword))
	assert.Equal(t, wrongPassword.Error(), unknownPhone.Error())
}

func TestLoginByPhoneOrName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.register(t, "Asha Rao", "111")

	token, got, err := f.svc.Identity.Login(ctx, LoginRequest{Identifier: "111", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	claims, err := f.svc.Identity.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, c.ID.Hex(), claims.CustomerID)
	assert.Equal(t, "111", claims.Phone)

	_, got, err = f.svc.Identity.Login(ctx, LoginRequest{Mobile: "asha rao", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
}

func TestLoginRehashesLegacyPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	legacy := &domain.Customer{Name: "Old", Phone: "222", Password: "plain"}
	require.NoError(t, f.repos.Customer.Create(ctx, legacy))

	_, _, err := f.svc.Identity.Login(ctx, LoginRequest{Identifier: "222", Password: "plain"})
	require.NoError(t, err)

	stored, err := f.repos.Customer.GetByPhone(ctx, "222")
	require.NoError(t, err)
	assert.True(t, auth.IsHashed(stored.Password))

	_, _, err = f.svc.Identity.Login(ctx, LoginRequest{Identifier: "222", Password: "plain"})
	assert.NoError(t, err)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Identity.Authenticate("not-a-token")
	assert.True(t, errors.IsUnauthorized(err))
	_, err = f.svc.Identity.Authenticate("")
	assert.True(t, errors.IsUnauthorized(err))
}

func TestLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Identity.Register(ctx, RegisterRequest{Name: "Asha", Phone: "111", Password: "p", Address: "12 Main St"})
	require.NoError(t, err)

	res, err := f.svc.Identity.Lookup(ctx, "111", "")
	require.NoError(t, err)
	assert.Equal(t, "customer", res.Source)
	assert.Equal(t, "12 Main St", *res.Address)

	city := &domain.Location{City: "Salem"}
	f.orders.Import(domain.Order{CustomerName: "Ravi Kumar", Phone: "333", Address: "Old Rd", Location: city, CreatedAt: time.Now()})

	res, err = f.svc.Identity.Lookup(ctx, "", "ravi")
	require.NoError(t, err)
	assert.Equal(t, "order", res.Source)
	assert.Equal(t, "Ravi Kumar", *res.Name)
	assert.Equal(t, "333", *res.Phone)
	assert.Equal(t, "Salem", res.Location.City)

	_, err = f.svc.Identity.Lookup(ctx, "", "")
	assert.True(t, errors.IsValidation(err))

	_, err = f.svc.Identity.Lookup(ctx, "000", "")
	assert.True(t, errors.IsNotFound(err))
}

func TestRecentOrdersUnionsLegacyShapes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.register(t, "Asha", "111")
	other := primitive.NewObjectID()
	base := time.Now().UTC().Add(-time.Hour)

	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }
	f.orders.Import(domain.Order{Customer: domain.ResolvedCustomer(c.ID), CreatedAt: at(1)})
	f.orders.Import(domain.Order{Customer: domain.CustomerRef{ID: c.ID, Shape: domain.RefShapeIDString}, CreatedAt: at(2)})
	f.orders.Import(domain.Order{Customer: domain.CustomerRef{Name: "Asha", Shape: domain.RefShapeName}, CreatedAt: at(3)})
	f.orders.Import(domain.Order{Customer: domain.CustomerRef{ID: c.ID, Name: "Asha", Shape: domain.RefShapeNested}, CreatedAt: at(4)})
	f.orders.Import(domain.Order{Customer: domain.ResolvedCustomer(other), CreatedAt: at(5)})
	f.orders.Import(domain.Order{Customer: domain.ResolvedCustomer(c.ID), CreatedAt: at(6)})
	f.orders.Import(domain.Order{Customer: domain.ResolvedCustomer(c.ID), CreatedAt: at(7)})

	orders, err := f.svc.Identity.RecentOrders(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Len(t, orders, 5)
	for i := 1; i < len(orders); i++ {
		assert.True(t, orders[i-1].CreatedAt.After(orders[i].CreatedAt))
	}
	assert.Equal(t, at(7), orders[0].CreatedAt)
	assert.Equal(t, at(2), orders[4].CreatedAt)

	_, err = f.svc.Identity.RecentOrders(ctx, "not-hex")
	assert.True(t, errors.IsValidation(err))
}

func TestRecentOrdersForUnknownCustomerSkipsNameShapes(t *testing.T) {
	f := newFixture(t)
	ghost := primitive.NewObjectID()
	f.orders.Import(domain.Order{Customer: domain.ResolvedCustomer(ghost), CreatedAt: time.Now()})
	f.orders.Import(domain.Order{Customer: domain.CustomerRef{ID: ghost, Shape: domain.RefShapeNested}, CreatedAt: time.Now()})

	orders, err := f.svc.Identity.RecentOrders(context.Background(), ghost.Hex())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
