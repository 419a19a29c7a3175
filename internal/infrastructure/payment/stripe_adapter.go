package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graveringshuset/backend/internal/domain/payment"
)

// StripeAdapter implements the payment.Provider interface for card payments
// through Stripe. All calls are local stand-ins for the Stripe HTTPS API;
// the request/response contract matches what a real client would return so
// one can be substituted without changing callers.
type StripeAdapter struct {
	config *payment.StripeConfig
}

// NewStripeAdapter creates a new Stripe adapter
func NewStripeAdapter(config *payment.StripeConfig) *StripeAdapter {
	return &StripeAdapter{config: config}
}

// Type returns the provider tag
func (a *StripeAdapter) Type() payment.ProviderType {
	return payment.ProviderStripe
}

// CreatePayment creates a payment intent. A missing secret key surfaces as a
// failed Result, not a Go error.
func (a *StripeAdapter) CreatePayment(ctx context.Context, req *payment.CreatePaymentRequest) (*payment.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if a.config == nil || a.config.SecretKey == "" {
		return payment.NewErrorResult("Stripe secret key not configured"), nil
	}

	intentID := fmt.Sprintf("pi_%d_%s", time.Now().Unix(), randomToken())

	return payment.NewResult(intentID).
		WithMetadata("clientSecret", fmt.Sprintf("%s_secret_%s", intentID, randomToken())), nil
}

// Capture confirms a previously created payment intent
func (a *StripeAdapter) Capture(ctx context.Context, req *payment.CaptureRequest) (*payment.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return payment.NewResult(req.PaymentID), nil
}

// Cancel refunds a payment intent, partially when an amount is given
func (a *StripeAdapter) Cancel(ctx context.Context, req *payment.RefundRequest) (*payment.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := payment.NewResult(req.PaymentID)
	if req.Amount.GreaterThan(decimal.Zero) {
		result.WithMetadata("refundedAmount", req.Amount.String())
	}
	return result, nil
}

// Status retrieves the current payment intent status
func (a *StripeAdapter) Status(ctx context.Context, paymentID string) (*payment.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if paymentID == "" {
		return nil, payment.ErrInvalidPaymentID
	}

	return payment.NewResult(paymentID).
		WithMetadata("status", payment.StatusCompleted.String()), nil
}

// VerifyWebhookSignature verifies a Stripe webhook signature. Signature
// cryptography is out of scope for this layer; a real client performs the
// HMAC check against the webhook secret here.
func (a *StripeAdapter) VerifyWebhookSignature(payload, signature string) bool {
	return a.config != nil && a.config.WebhookSecret != ""
}

// randomToken returns a short opaque identifier fragment
func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// Ensure StripeAdapter implements the Provider interface
var _ payment.Provider = (*StripeAdapter)(nil)
