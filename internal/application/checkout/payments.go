package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/graveringshuset/backend/internal/domain/payment"
)

// CreatePayment initiates a payment with the given provider. Expected
// runtime failures (incomplete credentials, provider rejection) surface
// inside the Result; a Go error means the request itself was bad or the
// provider is not configured at all.
func (s *Service) CreatePayment(ctx context.Context, t payment.ProviderType, req *payment.CreatePaymentRequest) (*payment.Result, error) {
	provider, err := s.payments.Provider(t)
	if err != nil {
		return nil, err
	}

	result, err := provider.CreatePayment(ctx, req)
	if err != nil {
		return nil, err
	}

	if !result.Success {
		s.log(ctx).Warn("payment creation failed",
			zap.String("provider", t.String()),
			zap.String("order_id", req.OrderID),
			zap.String("reason", result.Error),
		)
	} else {
		s.log(ctx).Info("payment created",
			zap.String("provider", t.String()),
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", result.PaymentID),
		)
	}

	return result, nil
}

// CapturePayment captures a reserved payment exactly once. Duplicate
// captures inside the idempotency window return a success Result flagged
// with alreadyCaptured instead of charging the customer again. The key is
// released again when the provider call does not result in a captured
// payment, so a failed capture stays retryable. Store failures fail open:
// a capture is attempted rather than blocked.
func (s *Service) CapturePayment(ctx context.Context, t payment.ProviderType, req *payment.CaptureRequest) (*payment.Result, error) {
	provider, err := s.payments.Provider(t)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var key string
	marked := false
	if s.idempotency != nil {
		key = captureKey(t, req.PaymentID)
		newlyMarked, err := s.idempotency.MarkProcessed(ctx, key, s.idemCfg.TTL)
		if err != nil {
			s.log(ctx).Warn("idempotency store unavailable, proceeding with capture",
				zap.String("key", key),
				zap.Error(err),
			)
		} else if !newlyMarked {
			s.log(ctx).Info("duplicate capture suppressed",
				zap.String("provider", t.String()),
				zap.String("payment_id", req.PaymentID),
			)
			return payment.NewResult(req.PaymentID).
				WithMetadata("alreadyCaptured", "true"), nil
		} else {
			marked = true
		}
	}

	result, err := provider.Capture(ctx, req)
	if marked && (err != nil || !result.Success) {
		s.releaseCaptureKey(ctx, key)
	}
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("payment captured",
		zap.String("provider", t.String()),
		zap.String("payment_id", req.PaymentID),
		zap.Bool("success", result.Success),
	)

	return result, nil
}

// releaseCaptureKey frees the deduplication key after a capture that did
// not go through. Uses a detached context so a cancelled request still
// releases the key.
func (s *Service) releaseCaptureKey(ctx context.Context, key string) {
	if err := s.idempotency.Unmark(context.WithoutCancel(ctx), key); err != nil {
		s.log(ctx).Warn("failed to release capture idempotency key",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// CancelPayment cancels or refunds a payment
func (s *Service) CancelPayment(ctx context.Context, t payment.ProviderType, req *payment.RefundRequest) (*payment.Result, error) {
	provider, err := s.payments.Provider(t)
	if err != nil {
		return nil, err
	}

	result, err := provider.Cancel(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("payment cancelled",
		zap.String("provider", t.String()),
		zap.String("payment_id", req.PaymentID),
	)

	return result, nil
}

// PaymentStatus queries the current state of a payment
func (s *Service) PaymentStatus(ctx context.Context, t payment.ProviderType, paymentID string) (*payment.Result, error) {
	provider, err := s.payments.Provider(t)
	if err != nil {
		return nil, err
	}
	return provider.Status(ctx, paymentID)
}

// captureKey builds the deduplication key for a capture
func captureKey(t payment.ProviderType, paymentID string) string {
	return fmt.Sprintf("%s:%s", t, paymentID)
}
