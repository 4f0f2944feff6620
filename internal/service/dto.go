package service

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

// RegisterRequest is the customer registration payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// LoginRequest accepts the identifier under any of the names the storefront has used.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

func (r LoginRequest) ident() string {
	for _, v := range []string{r.Identifier, r.Mobile, r.Email} {
		if v != "" {
			return v
		}
	}
	return ""
}

// CustomerView is the public customer shape returned by register and login
type CustomerView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func NewCustomerView(c *domain.Customer) CustomerView {
	return CustomerView{ID: c.ID.Hex(), Name: c.Name, Phone: c.Phone}
}

// LookupResult is the best-effort autofill answer
type LookupResult struct {
	Source   string           `json:"source"`
	Name     *string          `json:"name"`
	Phone    *string          `json:"phone"`
	Address  *string          `json:"address"`
	Location *domain.Location `json:"location,omitempty"`
}

// OrderLineRequest is one requested line; productId must be a 24-hex id
type OrderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the storefront checkout payload
type CreateOrderRequest struct {
	Customer      domain.CustomerRef `json:"customer"`
	CustomerName  string             `json:"customer_name"`
	Products      []OrderLineRequest `json:"products"`
	Total         float64            `json:"total"`
	Address       string             `json:"address"`
	Phone         string             `json:"phone"`
	PaymentMethod string             `json:"paymentMethod"`
	Status        string             `json:"status"`
	Location      *domain.Location   `json:"location"`
}

// UpdateOrderRequest carries the admin-editable order fields. Location keeps the
// raw JSON so an explicit null can be told apart from an absent field.
type UpdateOrderRequest struct {
	Status   *string         `json:"status"`
	Address  *string         `json:"address"`
	MapLink  *string         `json:"mapLink"`
	Location json.RawMessage `json:"location"`
}

// CreateOrderOptions carries request context that is not part of the payload
type CreateOrderOptions struct {
	// TokenCustomer is the customer id from a verified bearer token; zero when anonymous
	TokenCustomer primitive.ObjectID
	// IdempotencyKey and RequestHash are set when the client sent Idempotency-Key
	IdempotencyKey string
	RequestHash    string
}

// CreateProductRequest is the product create payload. Pointer fields are optional.
type CreateProductRequest struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Details        *string  `json:"details"`
	Price          *float64 `json:"price"`
	OriginalPrice  *float64 `json:"originalPrice"`
	Specifications *string  `json:"specifications"`
	Availability   *bool    `json:"availability"`
	Available      *bool    `json:"available"`
	Featured       *bool    `json:"featured"`
	Stock          *int     `json:"stock"`
	ImageURL       *string  `json:"imageUrl"`
	Description    *string  `json:"description"`
}

// RecordSearchRequest is an out-of-stock search with its request context
type RecordSearchRequest struct {
	SearchTerm string             `json:"searchTerm"`
	CustomerID primitive.ObjectID `json:"-"`
	UserAgent  string             `json:"-"`
	IPAddress  string             `json:"-"`
	SessionID  string             `json:"-"`
}

// SearchPage is one page of the out-of-stock log
type SearchPage struct {
	Searches   []*domain.OutOfStockSearch `json:"searches"`
	Total      int64                      `json:"total"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	TotalPages int                        `json:"totalPages"`
}

// SearchAnalytics is the windowed aggregate of out-of-stock terms
type SearchAnalytics struct {
	Period    string                   `json:"period"`
	Analytics []*domain.SearchTermStat `json:"analytics"`
}
