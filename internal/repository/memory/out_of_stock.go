package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

type OutOfStockRepository struct {
	store  *Store
	logger *zap.Logger
}

func (r *OutOfStockRepository) Create(ctx context.Context, search *domain.OutOfStockSearch) error {
	if search.ID.IsZero() {
		search.ID = primitive.NewObjectID()
	}
	if search.SearchedAt.IsZero() {
		search.SearchedAt = time.Now().UTC()
	}

	stored := *search
	stored.Customer = nil

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.searches = append(r.store.searches, stored)
	return nil
}

func (r *OutOfStockRepository) Search(ctx context.Context, q domain.SearchQuery) ([]*domain.OutOfStockSearch, int64, error) {
	needle := strings.ToLower(q.Term)

	r.store.mu.RLock()
	matches := []*domain.OutOfStockSearch{}
	for _, s := range r.store.searches {
		if needle == "" || strings.Contains(strings.ToLower(s.SearchTerm), needle) {
			search := s
			matches = append(matches, &search)
		}
	}
	r.store.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].SearchedAt.Equal(matches[j].SearchedAt) {
			return matches[i].SearchedAt.After(matches[j].SearchedAt)
		}
		return compareIDs(matches[i].ID, matches[j].ID) > 0
	})

	total := int64(len(matches))
	start := (q.Page - 1) * q.Limit
	if start >= len(matches) {
		return []*domain.OutOfStockSearch{}, total, nil
	}
	end := start + q.Limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}

func (r *OutOfStockRepository) Aggregate(ctx context.Context, since time.Time, limit int) ([]*domain.SearchTermStat, error) {
	type bucket struct {
		stat       domain.SearchTermStat
		identities map[string]bool
	}
	buckets := map[string]*bucket{}

	r.store.mu.RLock()
	for i := range r.store.searches {
		s := &r.store.searches[i]
		if s.SearchedAt.Before(since) {
			continue
		}
		b, ok := buckets[s.SearchTerm]
		if !ok {
			b = &bucket{
				stat:       domain.SearchTermStat{SearchTerm: s.SearchTerm},
				identities: map[string]bool{},
			}
			buckets[s.SearchTerm] = b
		}
		b.stat.Count++
		if s.SearchedAt.After(b.stat.LastSearched) {
			b.stat.LastSearched = s.SearchedAt
		}
		b.identities[s.Identity()] = true
	}
	r.store.mu.RUnlock()

	stats := make([]*domain.SearchTermStat, 0, len(buckets))
	for _, b := range buckets {
		b.stat.UniqueUserCount = len(b.identities)
		stat := b.stat
		stats = append(stats, &stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		if !stats[i].LastSearched.Equal(stats[j].LastSearched) {
			return stats[i].LastSearched.After(stats[j].LastSearched)
		}
		return stats[i].SearchTerm < stats[j].SearchTerm
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}
