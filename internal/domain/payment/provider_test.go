package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProviderType_IsValid(t *testing.T) {
	tests := []struct {
		provider ProviderType
		valid    bool
	}{
		{ProviderStripe, true},
		{ProviderVipps, true},
		{ProviderKlarna, true},
		{ProviderType("paypal"), false},
		{ProviderType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.provider.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.provider.IsValid())
		})
	}
}

func TestStatus_IsFinal(t *testing.T) {
	tests := []struct {
		status Status
		final  bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusCancelled, true},
		{StatusRefunded, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.final, tt.status.IsFinal())
		})
	}
}

func TestStripeConfig_MissingFields(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		cfg := &StripeConfig{PublicKey: "pk", SecretKey: "sk"}
		assert.Empty(t, cfg.MissingFields())
		assert.True(t, cfg.Enabled())
	})

	t.Run("webhook secret never gates enablement", func(t *testing.T) {
		cfg := &StripeConfig{PublicKey: "pk", SecretKey: "sk", WebhookSecret: ""}
		assert.True(t, cfg.Enabled())
	})

	t.Run("missing fields", func(t *testing.T) {
		cfg := &StripeConfig{}
		assert.Equal(t, []string{
			"Stripe public key is required",
			"Stripe secret key is required",
		}, cfg.MissingFields())
		assert.False(t, cfg.Enabled())
	})

	t.Run("nil block is disabled", func(t *testing.T) {
		var cfg *StripeConfig
		assert.False(t, cfg.Enabled())
	})
}

func TestVippsConfig_MissingFields(t *testing.T) {
	cfg := &VippsConfig{ClientID: "id"}
	assert.Equal(t, []string{
		"Vipps client secret is required",
		"Vipps merchant serial number is required",
	}, cfg.MissingFields())

	complete := &VippsConfig{
		ClientID:             "id",
		ClientSecret:         "secret",
		MerchantSerialNumber: "123456",
	}
	assert.True(t, complete.Enabled())
}

func TestKlarnaConfig_MissingFields(t *testing.T) {
	cfg := &KlarnaConfig{}
	assert.Equal(t, []string{
		"Klarna username is required",
		"Klarna password is required",
	}, cfg.MissingFields())

	complete := &KlarnaConfig{Username: "user", Password: "pass"}
	assert.True(t, complete.Enabled())
}

func TestConfig_MissingFields(t *testing.T) {
	t.Run("absent blocks contribute nothing", func(t *testing.T) {
		assert.Empty(t, Config{}.MissingFields())
	})

	t.Run("aggregates in priority order", func(t *testing.T) {
		cfg := Config{
			Stripe: &StripeConfig{SecretKey: "sk"},
			Klarna: &KlarnaConfig{Username: "user"},
		}
		assert.Equal(t, []string{
			"Stripe public key is required",
			"Klarna password is required",
		}, cfg.MissingFields())
	})
}

func TestCreatePaymentRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreatePaymentRequest
		wantErr error
	}{
		{
			name:    "valid",
			req:     CreatePaymentRequest{OrderID: "order-1", Amount: decimal.NewFromInt(100)},
			wantErr: nil,
		},
		{
			name:    "missing order ID",
			req:     CreatePaymentRequest{Amount: decimal.NewFromInt(100)},
			wantErr: ErrInvalidOrderID,
		},
		{
			name:    "zero amount",
			req:     CreatePaymentRequest{OrderID: "order-1"},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     CreatePaymentRequest{OrderID: "order-1", Amount: decimal.NewFromInt(-1)},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCaptureRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CaptureRequest{PaymentID: "pi_1"}).Validate())
	assert.NoError(t, (&CaptureRequest{PaymentID: "pi_1", Amount: decimal.NewFromInt(50)}).Validate())
	assert.ErrorIs(t, (&CaptureRequest{}).Validate(), ErrInvalidPaymentID)
	assert.ErrorIs(t,
		(&CaptureRequest{PaymentID: "pi_1", Amount: decimal.NewFromInt(-1)}).Validate(),
		ErrInvalidAmount)
}

func TestResult_Validate(t *testing.T) {
	tests := []struct {
		name    string
		result  *Result
		wantErr bool
	}{
		{name: "successful with ID", result: NewResult("pi_1"), wantErr: false},
		{name: "failed with message", result: NewErrorResult("boom"), wantErr: false},
		{name: "successful without ID", result: &Result{Success: true}, wantErr: true},
		{name: "successful with error message", result: &Result{Success: true, PaymentID: "pi_1", Error: "boom"}, wantErr: true},
		{name: "failed without message", result: &Result{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResult_Chaining(t *testing.T) {
	result := NewResult("pi_1").
		WithRedirect("https://example.com/pay").
		WithMetadata("a", "1").
		WithMetadata("b", "2")

	assert.Equal(t, "https://example.com/pay", result.RedirectURL)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, result.Metadata)
}

func TestMinorUnitConversion(t *testing.T) {
	assert.Equal(t, int64(49900), ToMinorUnit(decimal.NewFromInt(499)))
	assert.Equal(t, int64(12950), ToMinorUnit(decimal.NewFromFloat(129.5)))
	assert.True(t, FromMinorUnit(49900).Equal(decimal.NewFromInt(499)))
	assert.True(t, FromMinorUnit(12950).Equal(decimal.NewFromFloat(129.5)))
}
