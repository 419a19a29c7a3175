package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/graveringshuset/backend/internal/domain/payment"
	"github.com/graveringshuset/backend/internal/domain/shared"
	"github.com/graveringshuset/backend/internal/domain/shipping"
	"github.com/graveringshuset/backend/internal/infrastructure/logger"
)

// Service orchestrates the payment providers and shipping carriers behind
// the checkout. It holds no request state and is safe for concurrent use.
type Service struct {
	paymentCfg  payment.Config
	shippingCfg shipping.Config

	payments payment.Registry
	carriers shipping.Registry

	idempotency shared.IdempotencyStore
	idemCfg     shared.IdempotencyConfig

	logger *zap.Logger
}

// NewService creates a checkout service. The idempotency store may be nil,
// in which case capture deduplication is disabled.
func NewService(
	paymentCfg payment.Config,
	shippingCfg shipping.Config,
	payments payment.Registry,
	carriers shipping.Registry,
	idempotency shared.IdempotencyStore,
	idemCfg shared.IdempotencyConfig,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		paymentCfg:  paymentCfg,
		shippingCfg: shippingCfg,
		payments:    payments,
		carriers:    carriers,
		idempotency: idempotency,
		idemCfg:     idemCfg,
		logger:      logger,
	}
}

// log returns the request-scoped logger when the call originates from an
// HTTP request, so service entries carry the request ID, and the injected
// logger otherwise.
func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, s.logger)
}
