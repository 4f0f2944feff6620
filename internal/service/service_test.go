package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/config"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository/memory"
)

type capturingNotifier struct {
	mu     sync.Mutex
	orders []*domain.ExpandedOrder
}

func (n *capturingNotifier) Enqueue(order *domain.ExpandedOrder) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order)
	return true
}

type fixture struct {
	repos    *repository.Repositories
	orders   *memory.OrderRepository
	svc      *Services
	notifier *capturingNotifier
	cfg      *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{
		Auth:   config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Orders: config.OrdersConfig{MapsBaseURL: domain.DefaultMapsBaseURL},
	}
	repos := memory.NewRepositories(memory.NewStore(), zap.NewNop())
	notifier := &capturingNotifier{}
	return &fixture{
		repos:    repos,
		orders:   repos.Order.(*memory.OrderRepository),
		svc:      NewServices(cfg, repos, notifier, zap.NewNop()),
		notifier: notifier,
		cfg:      cfg,
	}
}

func (f *fixture) register(t *testing.T, name, phone string) *domain.Customer {
	t.Helper()
	c, err := f.svc.Identity.Register(context.Background(), RegisterRequest{Name: name, Phone: phone, Password: "p"})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name string, price float64) *domain.Product {
	t.Helper()
	p, err := f.svc.Products.Create(context.Background(), CreateProductRequest{Name: name, Price: &price})
	require.NoError(t, err)
	return p
}
