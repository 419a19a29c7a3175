package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"ENGRAVE_APP_NAME":                            os.Getenv("ENGRAVE_APP_NAME"),
		"ENGRAVE_APP_ENV":                             os.Getenv("ENGRAVE_APP_ENV"),
		"ENGRAVE_APP_PORT":                            os.Getenv("ENGRAVE_APP_PORT"),
		"ENGRAVE_PAYMENT_STRIPE_PUBLIC_KEY":           os.Getenv("ENGRAVE_PAYMENT_STRIPE_PUBLIC_KEY"),
		"ENGRAVE_PAYMENT_STRIPE_SECRET_KEY":           os.Getenv("ENGRAVE_PAYMENT_STRIPE_SECRET_KEY"),
		"ENGRAVE_PAYMENT_STRIPE_TEST_MODE":            os.Getenv("ENGRAVE_PAYMENT_STRIPE_TEST_MODE"),
		"ENGRAVE_PAYMENT_VIPPS_CLIENT_ID":             os.Getenv("ENGRAVE_PAYMENT_VIPPS_CLIENT_ID"),
		"ENGRAVE_PAYMENT_KLARNA_USERNAME":             os.Getenv("ENGRAVE_PAYMENT_KLARNA_USERNAME"),
		"ENGRAVE_PAYMENT_KLARNA_REGION":               os.Getenv("ENGRAVE_PAYMENT_KLARNA_REGION"),
		"ENGRAVE_SHIPPING_BRING_API_KEY":              os.Getenv("ENGRAVE_SHIPPING_BRING_API_KEY"),
		"ENGRAVE_SHIPPING_FREE_SHIPPING_THRESHOLD":    os.Getenv("ENGRAVE_SHIPPING_FREE_SHIPPING_THRESHOLD"),
		"ENGRAVE_HTTP_CORS_ALLOW_ORIGINS":             os.Getenv("ENGRAVE_HTTP_CORS_ALLOW_ORIGINS"),
		"ENGRAVE_SHIPPING_DEFAULT_PACKAGING_WEIGHT_GRAMS": os.Getenv("ENGRAVE_SHIPPING_DEFAULT_PACKAGING_WEIGHT_GRAMS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "graveringshuset-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Redis.Host)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, "eu", cfg.Payment.Klarna.Region)
		assert.Equal(t, float64(1000), cfg.Shipping.FreeShippingThreshold)
		assert.Equal(t, 500, cfg.Shipping.DefaultPackaging.WeightGrams)
		assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
	})

	t.Run("loads values from environment variables with ENGRAVE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("ENGRAVE_APP_NAME", "test-app")
		os.Setenv("ENGRAVE_APP_PORT", "9000")
		os.Setenv("ENGRAVE_PAYMENT_STRIPE_PUBLIC_KEY", "pk_test_123")
		os.Setenv("ENGRAVE_PAYMENT_STRIPE_SECRET_KEY", "sk_test_456")
		os.Setenv("ENGRAVE_SHIPPING_BRING_API_KEY", "bring-key")
		os.Setenv("ENGRAVE_SHIPPING_FREE_SHIPPING_THRESHOLD", "750")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "pk_test_123", cfg.Payment.Stripe.PublicKey)
		assert.Equal(t, "sk_test_456", cfg.Payment.Stripe.SecretKey)
		assert.Equal(t, "bring-key", cfg.Shipping.Bring.APIKey)
		assert.Equal(t, float64(750), cfg.Shipping.FreeShippingThreshold)
	})

	t.Run("rejects unknown Klarna region", func(t *testing.T) {
		clearEnv()
		os.Setenv("ENGRAVE_PAYMENT_KLARNA_REGION", "apac")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "klarna.region")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"ENGRAVE_APP_ENV":                   os.Getenv("ENGRAVE_APP_ENV"),
		"ENGRAVE_HTTP_CORS_ALLOW_ORIGINS":   os.Getenv("ENGRAVE_HTTP_CORS_ALLOW_ORIGINS"),
		"ENGRAVE_PAYMENT_STRIPE_SECRET_KEY": os.Getenv("ENGRAVE_PAYMENT_STRIPE_SECRET_KEY"),
		"ENGRAVE_PAYMENT_STRIPE_TEST_MODE":  os.Getenv("ENGRAVE_PAYMENT_STRIPE_TEST_MODE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("rejects wildcard CORS origin in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("ENGRAVE_APP_ENV", "production")
		os.Setenv("ENGRAVE_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("rejects test mode credentials in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("ENGRAVE_APP_ENV", "production")
		os.Setenv("ENGRAVE_PAYMENT_STRIPE_SECRET_KEY", "sk_test_456")
		os.Setenv("ENGRAVE_PAYMENT_STRIPE_TEST_MODE", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "test_mode")
	})

	t.Run("passes with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("ENGRAVE_APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestConfig_PaymentDomainConfig(t *testing.T) {
	t.Run("empty blocks become nil", func(t *testing.T) {
		cfg := &Config{}
		domain := cfg.PaymentDomainConfig()
		assert.Nil(t, domain.Stripe)
		assert.Nil(t, domain.Vipps)
		assert.Nil(t, domain.Klarna)
	})

	t.Run("partially filled blocks are carried over", func(t *testing.T) {
		cfg := &Config{
			Payment: PaymentConfig{
				Stripe: StripeConfig{PublicKey: "pk_test_123", TestMode: true},
				Klarna: KlarnaConfig{Username: "user", Password: "pass", Region: "eu"},
			},
		}

		domain := cfg.PaymentDomainConfig()
		require.NotNil(t, domain.Stripe)
		assert.Equal(t, "pk_test_123", domain.Stripe.PublicKey)
		assert.True(t, domain.Stripe.TestMode)
		assert.Nil(t, domain.Vipps)
		require.NotNil(t, domain.Klarna)
		assert.Equal(t, "user", domain.Klarna.Username)
	})
}

func TestConfig_ShippingDomainConfig(t *testing.T) {
	cfg := &Config{
		Shipping: ShippingConfig{
			Bring:                 CarrierConfig{APIKey: "key", CustomerID: "cust"},
			FreeShippingThreshold: 500,
			DefaultPackaging:      PackagingConfig{WeightGrams: 400, WidthCm: 30, HeightCm: 10, LengthCm: 40},
		},
	}

	domain := cfg.ShippingDomainConfig()
	require.NotNil(t, domain.Bring)
	assert.Equal(t, "key", domain.Bring.APIKey)
	assert.Nil(t, domain.Posten)
	assert.Nil(t, domain.Helthjem)
	assert.True(t, domain.FreeShippingThreshold.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 400, domain.DefaultPackaging.WeightGrams)
}
