package service

import (
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/auth"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/config"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
)

// Services aggregates the services the HTTP layer depends on
type Services struct {
	Identity   *IdentityService
	Orders     *OrderService
	Products   *ProductService
	OutOfStock *OutOfStockService
}

// NewServices wires every service over one set of repositories. notifier may be
// nil, in which case no order notifications are sent.
func NewServices(cfg *config.Config, repos *repository.Repositories, notifier OrderNotifier, logger *zap.Logger) *Services {
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	identity := NewIdentityService(repos, tokens, logger)
	return &Services{
		Identity:   identity,
		Orders:     NewOrderService(repos, identity, notifier, cfg.Orders, logger),
		Products:   NewProductService(repos, logger),
		OutOfStock: NewOutOfStockService(repos, logger),
	}
}
