package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

const (
	DefaultSearchPageLimit = 100
	MaxSearchPageLimit     = 1000
	DefaultAnalyticsDays   = 30
	MaxAnalyticsDays       = 36500
	AnalyticsBucketLimit   = 50
)

// OutOfStockService tracks storefront searches that found nothing
type OutOfStockService struct {
	repos  *repository.Repositories
	logger *zap.Logger
	now    func() time.Time
}

// NewOutOfStockService creates a new out-of-stock service
func NewOutOfStockService(repos *repository.Repositories, logger *zap.Logger) *OutOfStockService {
	return &OutOfStockService{
		repos:  repos,
		logger: logger,
		now:    time.Now,
	}
}

// Record appends one search. Repeated terms are not deduplicated.
func (s *OutOfStockService) Record(ctx context.Context, req RecordSearchRequest) (*domain.OutOfStockSearch, error) {
	term := strings.TrimSpace(req.SearchTerm)
	if term == "" {
		return nil, errors.Validation("Search term is required")
	}

	search := &domain.OutOfStockSearch{
		SearchTerm: term,
		SearchedAt: s.now().UTC(),
		UserAgent:  req.UserAgent,
		IPAddress:  req.IPAddress,
		SessionID:  req.SessionID,
	}
	if !req.CustomerID.IsZero() {
		id := req.CustomerID
		search.CustomerID = &id
	}

	if err := s.repos.OutOfStock.Create(ctx, search); err != nil {
		return nil, err
	}
	return search, nil
}

// Query pages through the log, newest first, filtered by a term fragment.
func (s *OutOfStockService) Query(ctx context.Context, term string, page, limit int) (*SearchPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultSearchPageLimit
	}
	if limit > MaxSearchPageLimit {
		limit = MaxSearchPageLimit
	}
	// the offset (page-1)*limit must fit in an int32
	if page-1 > math.MaxInt32/limit {
		return nil, fieldError("page", "is out of range")
	}

	q := domain.SearchQuery{Term: strings.TrimSpace(term), Page: page, Limit: limit}
	searches, total, err := s.repos.OutOfStock.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	s.attachCustomers(ctx, searches)

	return &SearchPage{
		Searches:   searches,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// attachCustomers fills in the searcher summary where the customer still exists.
func (s *OutOfStockService) attachCustomers(ctx context.Context, searches []*domain.OutOfStockSearch) {
	cache := make(map[primitive.ObjectID]*domain.CustomerSummary)
	for _, search := range searches {
		if search.CustomerID == nil || search.CustomerID.IsZero() {
			continue
		}
		id := *search.CustomerID
		summary, ok := cache[id]
		if !ok {
			customer, err := s.repos.Customer.GetByID(ctx, id)
			if err != nil && !errors.IsNotFound(err) {
				s.logger.Warn("Failed to load searching customer", zap.String("customer_id", id.Hex()), zap.Error(err))
			}
			if customer != nil {
				summary = &domain.CustomerSummary{ID: customer.ID.Hex(), Name: customer.Name, Phone: customer.Phone}
			}
			cache[id] = summary
		}
		search.Customer = summary
	}
}

// Analytics groups the searches of the last days by exact term. Zero days is
// an empty window ending now.
func (s *OutOfStockService) Analytics(ctx context.Context, days int) (*SearchAnalytics, error) {
	if days < 0 {
		return nil, fieldError("days", "must not be negative")
	}
	if days > MaxAnalyticsDays {
		days = MaxAnalyticsDays
	}
	since := s.now().UTC().AddDate(0, 0, -days)

	stats, err := s.repos.OutOfStock.Aggregate(ctx, since, AnalyticsBucketLimit)
	if err != nil {
		return nil, err
	}
	return &SearchAnalytics{
		Period:    fmt.Sprintf("%d days", days),
		Analytics: stats,
	}, nil
}
