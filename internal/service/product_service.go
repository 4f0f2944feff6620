package service

import (
	"context"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

// ProductService manages the catalog
type ProductService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(repos *repository.Repositories, logger *zap.Logger) *ProductService {
	return &ProductService{
		repos:  repos,
		logger: logger,
	}
}

// Create validates the payload, applies defaults and stores the product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.Validation("name is required")
	}
	if req.Price == nil {
		return nil, errors.Validation("price is required")
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.DefaultProductCategory
	}

	product := &domain.Product{
		Name:           name,
		Category:       category,
		Details:        nullIfEmpty(req.Details),
		Price:          *req.Price,
		OriginalPrice:  req.OriginalPrice,
		Specifications: nullIfEmpty(req.Specifications),
		Availability:   boolOr(req.Availability, true),
		Available:      boolOr(req.Available, true),
		Featured:       boolOr(req.Featured, false),
		ImageURL:       nullIfEmpty(req.ImageURL),
		Description:    nullIfEmpty(req.Description),
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := s.repos.Product.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("Product created", zap.String("product_id", product.ID.Hex()), zap.String("name", product.Name))
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, productID string) (*domain.Product, error) {
	id, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	return s.repos.Product.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repos.Product.List(ctx, filter)
}

// Update applies the whitelisted fields of raw. Unknown fields are dropped.
func (s *ProductService) Update(ctx context.Context, productID string, raw map[string]interface{}) (*domain.Product, error) {
	id, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	patch, err := ParseProductPatch(raw)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return s.repos.Product.GetByID(ctx, id)
	}
	return s.repos.Product.Update(ctx, id, patch)
}

// Restock adds quantity to the stock and marks the product available again
func (s *ProductService) Restock(ctx context.Context, productID string, quantity int) (*domain.Product, error) {
	id, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errors.Validation("quantity must be greater than 0")
	}
	product, err := s.repos.Product.IncrementStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Product restocked", zap.String("product_id", id.Hex()), zap.Int("quantity", quantity), zap.Int("stock", product.Stock))
	return product, nil
}

// Discontinue hides the product from the storefront without deleting it
func (s *ProductService) Discontinue(ctx context.Context, productID string) (*domain.Product, error) {
	id, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	return s.repos.Product.Update(ctx, id, domain.ProductPatch{"available": false, "availability": false})
}

func (s *ProductService) Delete(ctx context.Context, productID string) error {
	id, err := parseProductID(productID)
	if err != nil {
		return err
	}
	return s.repos.Product.Delete(ctx, id)
}

// ParseProductPatch validates raw update fields against the whitelist. JSON
// numbers arrive as float64; stock must be a whole number.
func ParseProductPatch(raw map[string]interface{}) (domain.ProductPatch, error) {
	patch := domain.ProductPatch{}
	for _, field := range domain.ProductPatchFields {
		value, ok := raw[field]
		if !ok {
			continue
		}

		switch field {
		case "name", "category":
			str, ok := value.(string)
			if !ok {
				return nil, fieldError(field, "must be a string")
			}
			str = strings.TrimSpace(str)
			if str == "" {
				return nil, fieldError(field, "must not be empty")
			}
			patch[field] = str
		case "price":
			num, ok := value.(float64)
			if !ok {
				return nil, fieldError(field, "must be a number")
			}
			patch[field] = num
		case "originalPrice":
			if value == nil {
				patch[field] = nil
				continue
			}
			num, ok := value.(float64)
			if !ok {
				return nil, fieldError(field, "must be a number or null")
			}
			patch[field] = num
		case "stock":
			num, ok := value.(float64)
			if !ok || num != math.Trunc(num) {
				return nil, fieldError(field, "must be a whole number")
			}
			// float64(math.MaxInt64) rounds up to 2^63
			if num >= math.MaxInt64 || num < math.MinInt64 {
				return nil, fieldError(field, "is out of range")
			}
			patch[field] = int(num)
		case "available", "featured", "availability":
			b, ok := value.(bool)
			if !ok {
				return nil, fieldError(field, "must be a boolean")
			}
			patch[field] = b
		default:
			// nullable strings
			if value == nil {
				patch[field] = nil
				continue
			}
			str, ok := value.(string)
			if !ok {
				return nil, fieldError(field, "must be a string or null")
			}
			if domain.NullableProductFields[field] && str == "" {
				patch[field] = nil
				continue
			}
			patch[field] = str
		}
	}
	return patch, nil
}

func parseProductID(productID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return primitive.NilObjectID, &errors.ErrNotFound{Resource: "Product"}
	}
	return id, nil
}

func fieldError(field, problem string) error {
	return &errors.ErrValidation{
		Message: field + " " + problem,
		Fields:  map[string]string{field: problem},
	}
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
