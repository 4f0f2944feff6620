package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/config"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

// OrderNotifier queues a placed order for the owner notification. Implementations
// must not block.
type OrderNotifier interface {
	Enqueue(order *domain.ExpandedOrder) bool
}

// OrderService places, edits and reads storefront orders
type OrderService struct {
	repos    *repository.Repositories
	identity *IdentityService
	notifier OrderNotifier
	cfg      config.OrdersConfig
	logger   *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, identity *IdentityService, notifier OrderNotifier, cfg config.OrdersConfig, logger *zap.Logger) *OrderService {
	return &OrderService{
		repos:    repos,
		identity: identity,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Create validates and stores a checkout, records the audit event and queues the
// owner notification. The stored order is returned without waiting for delivery.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest, opts CreateOrderOptions) (*domain.Order, error) {
	paymentMethod := domain.PaymentMethod(strings.TrimSpace(req.PaymentMethod))
	if !paymentMethod.IsValid() {
		return nil, errors.Validation("paymentMethod must be one of: cod, qr")
	}

	lines := make([]domain.OrderLine, 0, len(req.Products))
	for i, line := range req.Products {
		id, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return nil, &errors.ErrValidation{
				Message: "invalid productId",
				Fields:  map[string]string{"products": "item " + strconv.Itoa(i) + " has an invalid productId"},
			}
		}
		lines = append(lines, domain.OrderLine{ProductID: id, Quantity: line.Quantity})
	}

	customerRef, customer, err := s.identity.ResolveOrderCustomer(ctx, opts.TokenCustomer, req.Customer)
	if err != nil {
		return nil, err
	}

	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" && customer != nil {
		customerName = customer.Name
	}
	if customerName == "" {
		customerName = customerRef.Name
	}
	if customerName == "" {
		return nil, errors.Validation("customer_name is required")
	}

	status := domain.OrderStatus(strings.TrimSpace(req.Status))
	if status == "" {
		status = domain.OrderStatusPlaced
	}

	location := req.Location
	if location != nil {
		loc := *location
		loc.DeriveMapsLink(s.cfg.MapsBaseURL)
		location = &loc
	}

	order := &domain.Order{
		Customer:      customerRef.Normalized(),
		CustomerName:  customerName,
		Products:      lines,
		Total:         req.Total,
		Address:       req.Address,
		Status:        status,
		Phone:         strings.TrimSpace(req.Phone),
		PaymentMethod: paymentMethod,
		Location:      location,
	}

	s.logger.Info("Creating order",
		zap.String("customer_name", customerName),
		zap.Bool("resolved_customer", order.Customer.IsResolved()),
		zap.Int("line_count", len(lines)),
	)
	if err := s.repos.Order.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order in database", zap.Error(err))
		return nil, err
	}

	if opts.IdempotencyKey != "" {
		key := &domain.IdempotencyKey{
			Key:         opts.IdempotencyKey,
			OrderID:     order.ID,
			RequestHash: opts.RequestHash,
		}
		if err := s.repos.IdempotencyKey.Create(ctx, key); err != nil {
			s.logger.Warn("Failed to store idempotency key", zap.String("order_id", order.ID.Hex()), zap.Error(err))
		}
	}

	s.recordEvent(ctx, order.ID, domain.EventOrderCreated, map[string]interface{}{
		"status":        string(order.Status),
		"paymentMethod": string(order.PaymentMethod),
		"total":         order.Total,
	})

	s.notify(ctx, order)
	return order, nil
}

func (s *OrderService) notify(ctx context.Context, order *domain.Order) {
	if s.notifier == nil {
		return
	}
	expanded, err := expandOrders(ctx, s.repos, []*domain.Order{order})
	if err != nil {
		s.logger.Warn("Failed to expand order for notification", zap.String("order_id", order.ID.Hex()), zap.Error(err))
		expanded = []*domain.ExpandedOrder{domain.ExpandOrder(order, nil)}
	}
	s.notifier.Enqueue(expanded[0])
}

// Update applies a partial admin edit. Location is stored as sent; its maps link
// is not derived again.
func (s *OrderService) Update(ctx context.Context, orderID string, req UpdateOrderRequest) (*domain.Order, error) {
	patch, err := req.toPatch()
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, errors.Validation("No updatable fields provided")
	}

	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "Order"}
	}

	current, err := s.repos.Order.GetByID(ctx, id)
	if errors.IsNotFound(err) {
		return nil, &errors.ErrNotFound{Resource: "Order"}
	}
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && s.cfg.StrictStatus && !current.Status.CanTransitionTo(*patch.Status) {
		return nil, &errors.ErrInvalidStateTransition{From: current.Status, To: *patch.Status}
	}

	updated, err := s.repos.Order.Update(ctx, id, patch)
	if errors.IsNotFound(err) {
		return nil, &errors.ErrNotFound{Resource: "Order"}
	}
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status != current.Status {
		s.recordEvent(ctx, id, domain.EventStatusChange, map[string]interface{}{
			"from": string(current.Status),
			"to":   string(*patch.Status),
		})
	}
	if changed := patch.ChangedFields(); len(changed) > 0 {
		s.recordEvent(ctx, id, domain.EventOrderUpdated, map[string]interface{}{"fields": changed})
	}

	return updated, nil
}

func (r UpdateOrderRequest) toPatch() (domain.OrderPatch, error) {
	var patch domain.OrderPatch
	if r.Status != nil {
		status := domain.OrderStatus(*r.Status)
		patch.Status = &status
	}
	patch.Address = r.Address
	patch.MapLink = r.MapLink
	if len(r.Location) > 0 {
		patch.SetLocation = true
		if string(r.Location) != "null" {
			var loc domain.Location
			if err := json.Unmarshal(r.Location, &loc); err != nil {
				return patch, errors.Validation("location must be an object")
			}
			patch.Location = &loc
		}
	}
	return patch, nil
}

// List returns every order, newest first, product-expanded
func (s *OrderService) List(ctx context.Context) ([]*domain.ExpandedOrder, error) {
	orders, err := s.repos.Order.List(ctx)
	if err != nil {
		return nil, err
	}
	return expandOrders(ctx, s.repos, orders)
}

// Get returns one product-expanded order
func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.ExpandedOrder, error) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "Order"}
	}
	order, err := s.repos.Order.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expanded, err := expandOrders(ctx, s.repos, []*domain.Order{order})
	if err != nil {
		return nil, err
	}
	return expanded[0], nil
}

// GetStored returns the order as stored, without product expansion
func (s *OrderService) GetStored(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return s.repos.Order.GetByID(ctx, id)
}

// Events returns the audit trail of an order, oldest first
func (s *OrderService) Events(ctx context.Context, orderID string) ([]*domain.OrderEvent, error) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, &errors.ErrNotFound{Resource: "Order"}
	}
	if _, err := s.repos.Order.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.OrderEvent.GetByOrderID(ctx, id)
}

// recordEvent stores an audit event. Failures are logged and never fail the request.
func (s *OrderService) recordEvent(ctx context.Context, orderID primitive.ObjectID, eventType string, data map[string]interface{}) {
	event := &domain.OrderEvent{
		OrderID:   orderID,
		EventType: eventType,
		EventData: data,
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event",
			zap.String("order_id", orderID.Hex()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
