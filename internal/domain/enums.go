package domain

// OrderStatus is the free-text status label of an order. The constants below are the
// labels the dashboard offers; stored orders may carry any string.
type OrderStatus string

const (
	OrderStatusPlaced          OrderStatus = "Placed"
	OrderStatusPacked          OrderStatus = "Packed"
	OrderStatusOnTheWay        OrderStatus = "On the way"
	OrderStatusReachedLocation OrderStatus = "Reached location"
	OrderStatusDelivered       OrderStatus = "Delivered"
	OrderStatusCancelled       OrderStatus = "Cancelled"
)

// IsValid checks if the order status is one of the known labels
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced,
		OrderStatusPacked,
		OrderStatusOnTheWay,
		OrderStatusReachedLocation,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed in strict mode.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if a status transition is valid under the strict table.
// Setting the current status again is always allowed.
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	if s == newStatus {
		return true
	}
	if !newStatus.IsValid() {
		return false
	}
	if newStatus == OrderStatusCancelled {
		return !s.IsTerminal()
	}

	switch s {
	case OrderStatusPlaced, "":
		return newStatus == OrderStatusPacked
	case OrderStatusPacked:
		return newStatus == OrderStatusOnTheWay
	case OrderStatusOnTheWay:
		return newStatus == OrderStatusReachedLocation
	case OrderStatusReachedLocation:
		return newStatus == OrderStatusDelivered
	default:
		return false
	}
}

// PaymentMethod is the closed set of payment labels.
type PaymentMethod string

const (
	PaymentMethodCOD PaymentMethod = "cod"
	PaymentMethodQR  PaymentMethod = "qr"
)

func (p PaymentMethod) IsValid() bool {
	return p == PaymentMethodCOD || p == PaymentMethodQR
}

// Label is the human-readable form used in notifications.
func (p PaymentMethod) Label() string {
	if p == PaymentMethodCOD {
		return "Cash on Delivery"
	}
	return "Pay via QR Code"
}

// Order event types
const (
	EventOrderCreated = "order_created"
	EventOrderUpdated = "order_updated"
	EventStatusChange = "status_change"
)
