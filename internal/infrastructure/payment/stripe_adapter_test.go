package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graveringshuset/backend/internal/domain/payment"
)

func testStripeConfig() *payment.StripeConfig {
	return &payment.StripeConfig{
		PublicKey:     "pk_test_123",
		SecretKey:     "sk_test_456",
		WebhookSecret: "whsec_789",
		TestMode:      true,
	}
}

func TestStripeAdapter_Type(t *testing.T) {
	adapter := NewStripeAdapter(testStripeConfig())
	assert.Equal(t, payment.ProviderStripe, adapter.Type())
}

func TestStripeAdapter_CreatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates payment intent", func(t *testing.T) {
		adapter := NewStripeAdapter(testStripeConfig())

		result, err := adapter.CreatePayment(ctx, &payment.CreatePaymentRequest{
			OrderID:  "order-1",
			Amount:   decimal.NewFromInt(499),
			Currency: "NOK",
		})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.True(t, result.Success)
		assert.True(t, strings.HasPrefix(result.PaymentID, "pi_"))
		assert.Empty(t, result.Error)
		assert.Contains(t, result.Metadata["clientSecret"], result.PaymentID+"_secret_")
		assert.NoError(t, result.Validate())
	})

	t.Run("missing secret key fails inside the result", func(t *testing.T) {
		adapter := NewStripeAdapter(&payment.StripeConfig{PublicKey: "pk_test_123"})

		result, err := adapter.CreatePayment(ctx, &payment.CreatePaymentRequest{
			OrderID: "order-1",
			Amount:  decimal.NewFromInt(499),
		})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.False(t, result.Success)
		assert.Equal(t, "Stripe secret key not configured", result.Error)
		assert.Empty(t, result.PaymentID)
	})

	t.Run("nil config fails inside the result", func(t *testing.T) {
		adapter := NewStripeAdapter(nil)

		result, err := adapter.CreatePayment(ctx, &payment.CreatePaymentRequest{
			OrderID: "order-1",
			Amount:  decimal.NewFromInt(499),
		})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Stripe secret key not configured", result.Error)
	})

	t.Run("invalid request", func(t *testing.T) {
		adapter := NewStripeAdapter(testStripeConfig())

		tests := []struct {
			name    string
			req     *payment.CreatePaymentRequest
			wantErr error
		}{
			{
				name:    "empty order ID",
				req:     &payment.CreatePaymentRequest{Amount: decimal.NewFromInt(100)},
				wantErr: payment.ErrInvalidOrderID,
			},
			{
				name:    "zero amount",
				req:     &payment.CreatePaymentRequest{OrderID: "order-1"},
				wantErr: payment.ErrInvalidAmount,
			},
			{
				name: "negative amount",
				req: &payment.CreatePaymentRequest{
					OrderID: "order-1",
					Amount:  decimal.NewFromInt(-5),
				},
				wantErr: payment.ErrInvalidAmount,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				result, err := adapter.CreatePayment(ctx, tt.req)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			})
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		adapter := NewStripeAdapter(testStripeConfig())
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		result, err := adapter.CreatePayment(cancelled, &payment.CreatePaymentRequest{
			OrderID: "order-1",
			Amount:  decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	})
}

func TestStripeAdapter_Capture(t *testing.T) {
	adapter := NewStripeAdapter(testStripeConfig())
	ctx := context.Background()

	result, err := adapter.Capture(ctx, &payment.CaptureRequest{
		PaymentID: "pi_123",
		Amount:    decimal.NewFromInt(499),
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "pi_123", result.PaymentID)

	_, err = adapter.Capture(ctx, &payment.CaptureRequest{})
	assert.ErrorIs(t, err, payment.ErrInvalidPaymentID)
}

func TestStripeAdapter_Cancel(t *testing.T) {
	adapter := NewStripeAdapter(testStripeConfig())
	ctx := context.Background()

	t.Run("partial refund records the amount", func(t *testing.T) {
		result, err := adapter.Cancel(ctx, &payment.RefundRequest{
			PaymentID: "pi_123",
			Amount:    decimal.NewFromInt(200),
		})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "200", result.Metadata["refundedAmount"])
	})

	t.Run("full refund carries no amount metadata", func(t *testing.T) {
		result, err := adapter.Cancel(ctx, &payment.RefundRequest{PaymentID: "pi_123"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Empty(t, result.Metadata)
	})
}

func TestStripeAdapter_Status(t *testing.T) {
	adapter := NewStripeAdapter(testStripeConfig())
	ctx := context.Background()

	result, err := adapter.Status(ctx, "pi_123")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "completed", result.Metadata["status"])

	_, err = adapter.Status(ctx, "")
	assert.ErrorIs(t, err, payment.ErrInvalidPaymentID)
}

func TestStripeAdapter_VerifyWebhookSignature(t *testing.T) {
	withSecret := NewStripeAdapter(testStripeConfig())
	assert.True(t, withSecret.VerifyWebhookSignature("payload", "sig"))

	withoutSecret := NewStripeAdapter(&payment.StripeConfig{
		PublicKey: "pk_test_123",
		SecretKey: "sk_test_456",
	})
	assert.False(t, withoutSecret.VerifyWebhookSignature("payload", "sig"))
}
