package service

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/auth"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

// RecentOrdersLimit caps the order history returned for a customer
const RecentOrdersLimit = 5

var errInvalidCredentials = &errors.ErrUnauthorized{Message: "invalid credentials"}

// IdentityService resolves who a request or an order belongs to
type IdentityService struct {
	repos  *repository.Repositories
	tokens *auth.TokenIssuer
	logger *zap.Logger
}

// NewIdentityService creates a new identity service
func NewIdentityService(repos *repository.Repositories, tokens *auth.TokenIssuer, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		repos:  repos,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a customer with a hashed password
func (s *IdentityService) Register(ctx context.Context, req RegisterRequest) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" || req.Password == "" {
		return nil, errors.Validation("name, phone and password are required")
	}

	if _, err := s.repos.Customer.GetByPhone(ctx, phone); err == nil {
		return nil, errors.Validation("Phone already registered")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name:     name,
		Phone:    phone,
		Password: hash,
		Address:  strings.TrimSpace(req.Address),
	}
	if err := s.repos.Customer.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer registered", zap.String("customer_id", customer.ID.Hex()))
	return customer, nil
}

// Login checks the password of the customer identified by phone, or failing that
// by name, and issues a token. Every failure returns the same error.
func (s *IdentityService) Login(ctx context.Context, req LoginRequest) (string, *domain.Customer, error) {
	ident := strings.TrimSpace(req.ident())
	if ident == "" || req.Password == "" {
		return "", nil, errors.Validation("identifier (phone or name) and password are required")
	}

	customer, err := s.repos.Customer.GetByPhone(ctx, ident)
	if errors.IsNotFound(err) {
		customer, err = s.repos.Customer.GetByNameFold(ctx, ident)
	}
	if errors.IsNotFound(err) {
		return "", nil, errInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !auth.VerifyPassword(customer.Password, req.Password) {
		return "", nil, errInvalidCredentials
	}

	if !auth.IsHashed(customer.Password) {
		s.upgradePassword(ctx, customer, req.Password)
	}

	token, err := s.tokens.Issue(customer.ID, customer.Phone)
	if err != nil {
		return "", nil, err
	}
	return token, customer, nil
}

// upgradePassword replaces a legacy plaintext password with its hash. Failure
// leaves the old value in place and does not fail the login.
func (s *IdentityService) upgradePassword(ctx context.Context, customer *domain.Customer, password string) {
	hash, err := auth.HashPassword(password)
	if err == nil {
		err = s.repos.Customer.UpdatePassword(ctx, customer.ID, hash)
	}
	if err != nil {
		s.logger.Warn("Failed to rehash legacy password", zap.String("customer_id", customer.ID.Hex()), zap.Error(err))
		return
	}
	customer.Password = hash
}

// Authenticate verifies a bearer token
func (s *IdentityService) Authenticate(token string) (*auth.Claims, error) {
	if token == "" {
		return nil, &errors.ErrUnauthorized{Message: "No token"}
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, &errors.ErrUnauthorized{Message: "Invalid token"}
	}
	return claims, nil
}

// Me returns the customer a token belongs to
func (s *IdentityService) Me(ctx context.Context, claims *auth.Claims) (*domain.Customer, error) {
	id, err := claims.CustomerObjectID()
	if err != nil {
		return nil, &errors.ErrUnauthorized{Message: "Invalid token"}
	}
	customer, err := s.repos.Customer.GetByID(ctx, id)
	if errors.IsNotFound(err) {
		return nil, &errors.ErrNotFound{Resource: "User"}
	}
	return customer, err
}

// Lookup finds autofill details for a phone or name: a registered customer by
// exact phone first, then the most recent matching order. It is a heuristic and
// may return someone else's details when phones or names collide.
func (s *IdentityService) Lookup(ctx context.Context, phone, name string) (*LookupResult, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if phone == "" && name == "" {
		return nil, errors.Validation("phone or name query parameter required")
	}

	if phone != "" {
		customer, err := s.repos.Customer.GetByPhone(ctx, phone)
		if err == nil {
			return &LookupResult{
				Source:  "customer",
				Name:    &customer.Name,
				Phone:   &customer.Phone,
				Address: &customer.Address,
			}, nil
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
	}

	order, err := s.repos.Order.FindLatestByContact(ctx, phone, name)
	if errors.IsNotFound(err) {
		return nil, &errors.ErrNotFound{Resource: "customer or order"}
	}
	if err != nil {
		return nil, err
	}

	orderName := order.CustomerName
	if orderName == "" && order.Customer.Shape == domain.RefShapeName {
		orderName = order.Customer.Name
	}
	return &LookupResult{
		Source:   "order",
		Name:     nonEmpty(orderName),
		Phone:    nonEmpty(order.Phone),
		Address:  nonEmpty(order.Address),
		Location: order.Location,
	}, nil
}

// RecentOrders returns the newest orders of a customer across every way the
// customer field has been stored, product-expanded.
func (s *IdentityService) RecentOrders(ctx context.Context, customerID string) ([]*domain.ExpandedOrder, error) {
	id, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, errors.Validation("invalid customer id")
	}

	queries := []domain.CustomerRefQuery{
		{Shape: domain.RefShapeObjectID, ID: id},
		{Shape: domain.RefShapeIDString, ID: id},
	}
	customer, err := s.repos.Customer.GetByID(ctx, id)
	switch {
	case err == nil:
		queries = append(queries,
			domain.CustomerRefQuery{Shape: domain.RefShapeName, Name: customer.Name},
			domain.CustomerRefQuery{Shape: domain.RefShapeNested, ID: id},
		)
	case !errors.IsNotFound(err):
		return nil, err
	}

	seen := make(map[primitive.ObjectID]bool)
	var orders []*domain.Order
	for _, q := range queries {
		found, err := s.repos.Order.ListByCustomerRef(ctx, q, RecentOrdersLimit)
		if err != nil {
			return nil, err
		}
		for _, o := range found {
			if seen[o.ID] {
				continue
			}
			seen[o.ID] = true
			orders = append(orders, o)
		}
	}

	sortNewestFirst(orders)
	if len(orders) > RecentOrdersLimit {
		orders = orders[:RecentOrdersLimit]
	}
	return expandOrders(ctx, s.repos, orders)
}

// ResolveOrderCustomer decides who a new order belongs to. A token identity wins
// over anything the client sent; a client id counts only if that customer exists.
func (s *IdentityService) ResolveOrderCustomer(ctx context.Context, tokenCustomer primitive.ObjectID, claimed domain.CustomerRef) (domain.CustomerRef, *domain.Customer, error) {
	candidates := []primitive.ObjectID{tokenCustomer, claimed.ID}
	for _, id := range candidates {
		if id.IsZero() {
			continue
		}
		customer, err := s.repos.Customer.GetByID(ctx, id)
		if err == nil {
			return domain.ResolvedCustomer(id), customer, nil
		}
		if !errors.IsNotFound(err) {
			return domain.CustomerRef{}, nil, err
		}
		if id == tokenCustomer {
			// a valid token for a since-deleted customer still pins the order to it
			return domain.ResolvedCustomer(id), nil, nil
		}
	}
	return domain.UnresolvedCustomer(claimed.Name), nil, nil
}

func sortNewestFirst(orders []*domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID.Hex() > orders[j].ID.Hex()
	})
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
