package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultProductCategory = "General"

// Product is a catalog entry
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Category       string             `bson:"category" json:"category"`
	Details        *string            `bson:"details" json:"details"`
	Price          float64            `bson:"price" json:"price"`
	OriginalPrice  *float64           `bson:"originalPrice" json:"originalPrice"`
	Specifications *string            `bson:"specifications" json:"specifications"`
	Availability   bool               `bson:"availability" json:"availability"`
	Available      bool               `bson:"available" json:"available"`
	Featured       bool               `bson:"featured" json:"featured"`
	Stock          int                `bson:"stock" json:"stock"`
	ImageURL       *string            `bson:"imageUrl" json:"imageUrl"`
	Description    *string            `bson:"description" json:"description"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductFilter narrows a product listing. Empty fields match everything.
type ProductFilter struct {
	Search   string
	Category string
}

// Customer is a registered shopper
type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Password  string             `bson:"password" json:"-"`
	Address   string             `bson:"address" json:"address"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderLine references a product by id; the product itself is not copied.
type OrderLine struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order is a placed storefront order
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Customer      CustomerRef        `bson:"customer" json:"customer"`
	CustomerName  string             `bson:"customer_name" json:"customer_name"`
	Products      []OrderLine        `bson:"products" json:"products"`
	Total         float64            `bson:"total" json:"total"`
	Address       string             `bson:"address" json:"address"`
	Status        OrderStatus        `bson:"status" json:"status"`
	Phone         string             `bson:"phone" json:"phone"`
	PaymentMethod PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	Location      *Location          `bson:"location,omitempty" json:"location,omitempty"`
	MapLink       string             `bson:"mapLink,omitempty" json:"mapLink,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProductIDs returns the distinct product ids referenced by the order lines.
func (o *Order) ProductIDs() []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(o.Products))
	ids := make([]primitive.ObjectID, 0, len(o.Products))
	for _, line := range o.Products {
		if line.ProductID.IsZero() || seen[line.ProductID] {
			continue
		}
		seen[line.ProductID] = true
		ids = append(ids, line.ProductID)
	}
	return ids
}

// ExpandedLine is an order line with its product resolved. Product is nil when the
// referenced product no longer exists.
type ExpandedLine struct {
	Product  *Product `json:"productId"`
	Quantity int      `json:"quantity"`
}

// ExpandedOrder is the read view of an order with product snapshots.
type ExpandedOrder struct {
	Order
	Products []ExpandedLine `json:"products"`
}

// ExpandOrder joins the order lines against the given products.
func ExpandOrder(o *Order, products map[primitive.ObjectID]*Product) *ExpandedOrder {
	lines := make([]ExpandedLine, len(o.Products))
	for i, line := range o.Products {
		lines[i] = ExpandedLine{Product: products[line.ProductID], Quantity: line.Quantity}
	}
	return &ExpandedOrder{Order: *o, Products: lines}
}

// OrderPatch is a partial update of the admin-editable order fields.
type OrderPatch struct {
	Status      *OrderStatus
	Address     *string
	MapLink     *string
	SetLocation bool
	Location    *Location
}

func (p OrderPatch) IsEmpty() bool {
	return p.Status == nil && p.Address == nil && p.MapLink == nil && !p.SetLocation
}

// ChangedFields lists the non-status fields the patch sets, for the audit trail.
func (p OrderPatch) ChangedFields() []string {
	var fields []string
	if p.Address != nil {
		fields = append(fields, "address")
	}
	if p.MapLink != nil {
		fields = append(fields, "mapLink")
	}
	if p.SetLocation {
		fields = append(fields, "location")
	}
	return fields
}

// Apply copies the patched fields onto o.
func (p OrderPatch) Apply(o *Order) {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Address != nil {
		o.Address = *p.Address
	}
	if p.MapLink != nil {
		o.MapLink = *p.MapLink
	}
	if p.SetLocation {
		o.Location = p.Location
	}
}

// OutOfStockSearch records a storefront search that returned nothing.
type OutOfStockSearch struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	SearchTerm string              `bson:"searchTerm" json:"searchTerm"`
	SearchedAt time.Time           `bson:"searchedAt" json:"searchedAt"`
	CustomerID *primitive.ObjectID `bson:"username,omitempty" json:"username,omitempty"`
	UserAgent  string              `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	IPAddress  string              `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	SessionID  string              `bson:"sessionId,omitempty" json:"sessionId,omitempty"`

	Customer *CustomerSummary `bson:"-" json:"customer,omitempty"`
}

// Identity is the key used to count distinct searchers: the customer when known,
// then the session, then the client address. Anonymous searches share "".
func (s *OutOfStockSearch) Identity() string {
	switch {
	case s.CustomerID != nil && !s.CustomerID.IsZero():
		return s.CustomerID.Hex()
	case s.SessionID != "":
		return "session:" + s.SessionID
	case s.IPAddress != "":
		return "ip:" + s.IPAddress
	default:
		return ""
	}
}

// CustomerSummary is the public part of a customer attached to read views.
type CustomerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// SearchQuery filters and pages the out-of-stock log.
type SearchQuery struct {
	Term  string
	Page  int
	Limit int
}

// SearchTermStat is one bucket of the out-of-stock aggregate
type SearchTermStat struct {
	SearchTerm      string    `bson:"searchTerm" json:"searchTerm"`
	Count           int       `bson:"count" json:"count"`
	LastSearched    time.Time `bson:"lastSearched" json:"lastSearched"`
	UniqueUserCount int       `bson:"uniqueUserCount" json:"uniqueUserCount"`
}

// OrderEvent represents an audit event for an order
type OrderEvent struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	OrderID   primitive.ObjectID     `bson:"orderId" json:"orderId"`
	EventType string                 `bson:"eventType" json:"eventType"`
	EventData map[string]interface{} `bson:"eventData,omitempty" json:"eventData,omitempty"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
}

// IdempotencyKey stores idempotency information
type IdempotencyKey struct {
	Key         string             `bson:"_id"`
	OrderID     primitive.ObjectID `bson:"orderId"`
	RequestHash string             `bson:"requestHash"`
	CreatedAt   time.Time          `bson:"createdAt"`
}
