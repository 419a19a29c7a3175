package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/graveringshuset/backend/internal/domain/payment"
	"github.com/graveringshuset/backend/internal/domain/shipping"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Redis       RedisConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Payment     PaymentConfig
	Shipping    ShippingConfig
	Idempotency IdempotencyConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// PaymentConfig holds the provider credential blocks. A block whose fields
// are all empty counts as absent and disables its provider.
type PaymentConfig struct {
	Stripe StripeConfig
	Vipps  VippsConfig
	Klarna KlarnaConfig
}

// StripeConfig holds Stripe credentials
type StripeConfig struct {
	PublicKey     string
	SecretKey     string
	WebhookSecret string
	TestMode      bool
}

func (c StripeConfig) present() bool {
	return c.PublicKey != "" || c.SecretKey != "" || c.WebhookSecret != ""
}

// VippsConfig holds Vipps merchant credentials
type VippsConfig struct {
	ClientID             string
	ClientSecret         string
	SubscriptionKey      string
	MerchantSerialNumber string
	TestMode             bool
}

func (c VippsConfig) present() bool {
	return c.ClientID != "" || c.ClientSecret != "" ||
		c.SubscriptionKey != "" || c.MerchantSerialNumber != ""
}

// KlarnaConfig holds Klarna API credentials
type KlarnaConfig struct {
	Username string
	Password string
	Region   string
	TestMode bool
}

func (c KlarnaConfig) present() bool {
	return c.Username != "" || c.Password != ""
}

// ShippingConfig holds the carrier credential blocks plus storefront-wide
// shipping settings.
type ShippingConfig struct {
	Bring    CarrierConfig
	Posten   CarrierConfig
	Helthjem CarrierConfig

	// FreeShippingThreshold is the cart subtotal (NOK, inclusive) above
	// which shipping is free
	FreeShippingThreshold float64
	DefaultPackaging      PackagingConfig
}

// CarrierConfig holds one carrier's credentials
type CarrierConfig struct {
	APIKey     string
	CustomerID string
	TestMode   bool
}

func (c CarrierConfig) present() bool {
	return c.APIKey != "" || c.CustomerID != ""
}

// PackagingConfig holds the default package weight and dimensions
type PackagingConfig struct {
	WeightGrams int
	WidthCm     int
	HeightCm    int
	LengthCm    int
}

// IdempotencyConfig holds capture deduplication settings
type IdempotencyConfig struct {
	TTL time.Duration
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with ENGRAVE_ prefix (e.g., ENGRAVE_PAYMENT_STRIPE_SECRET_KEY)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ENGRAVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Payment: PaymentConfig{
			Stripe: StripeConfig{
				PublicKey:     v.GetString("payment.stripe.public_key"),
				SecretKey:     v.GetString("payment.stripe.secret_key"),
				WebhookSecret: v.GetString("payment.stripe.webhook_secret"),
				TestMode:      v.GetBool("payment.stripe.test_mode"),
			},
			Vipps: VippsConfig{
				ClientID:             v.GetString("payment.vipps.client_id"),
				ClientSecret:         v.GetString("payment.vipps.client_secret"),
				SubscriptionKey:      v.GetString("payment.vipps.subscription_key"),
				MerchantSerialNumber: v.GetString("payment.vipps.merchant_serial_number"),
				TestMode:             v.GetBool("payment.vipps.test_mode"),
			},
			Klarna: KlarnaConfig{
				Username: v.GetString("payment.klarna.username"),
				Password: v.GetString("payment.klarna.password"),
				Region:   v.GetString("payment.klarna.region"),
				TestMode: v.GetBool("payment.klarna.test_mode"),
			},
		},
		Shipping: ShippingConfig{
			Bring: CarrierConfig{
				APIKey:     v.GetString("shipping.bring.api_key"),
				CustomerID: v.GetString("shipping.bring.customer_id"),
				TestMode:   v.GetBool("shipping.bring.test_mode"),
			},
			Posten: CarrierConfig{
				APIKey:     v.GetString("shipping.posten.api_key"),
				CustomerID: v.GetString("shipping.posten.customer_id"),
				TestMode:   v.GetBool("shipping.posten.test_mode"),
			},
			Helthjem: CarrierConfig{
				APIKey:     v.GetString("shipping.helthjem.api_key"),
				CustomerID: v.GetString("shipping.helthjem.customer_id"),
				TestMode:   v.GetBool("shipping.helthjem.test_mode"),
			},
			FreeShippingThreshold: v.GetFloat64("shipping.free_shipping_threshold"),
			DefaultPackaging: PackagingConfig{
				WeightGrams: v.GetInt("shipping.default_packaging.weight_grams"),
				WidthCm:     v.GetInt("shipping.default_packaging.width_cm"),
				HeightCm:    v.GetInt("shipping.default_packaging.height_cm"),
				LengthCm:    v.GetInt("shipping.default_packaging.length_cm"),
			},
		},
		Idempotency: IdempotencyConfig{
			TTL: v.GetDuration("idempotency.ttl"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "graveringshuset-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	// CORS origins get no wildcard fallback; an empty list means no
	// cross-origin requests until explicitly configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Payment.Klarna.Region == "" {
		cfg.Payment.Klarna.Region = "eu"
	}
	if cfg.Shipping.FreeShippingThreshold == 0 {
		cfg.Shipping.FreeShippingThreshold = 1000
	}
	if cfg.Shipping.DefaultPackaging.WeightGrams == 0 {
		cfg.Shipping.DefaultPackaging.WeightGrams = 500
	}
	if cfg.Shipping.DefaultPackaging.WidthCm == 0 {
		cfg.Shipping.DefaultPackaging.WidthCm = 30
	}
	if cfg.Shipping.DefaultPackaging.HeightCm == 0 {
		cfg.Shipping.DefaultPackaging.HeightCm = 10
	}
	if cfg.Shipping.DefaultPackaging.LengthCm == 0 {
		cfg.Shipping.DefaultPackaging.LengthCm = 40
	}
	if cfg.Idempotency.TTL == 0 {
		cfg.Idempotency.TTL = 24 * time.Hour
	}
}

// validate performs sanity checks the deployment must not start without
func (c *Config) validate() error {
	if c.Shipping.FreeShippingThreshold < 0 {
		return fmt.Errorf("shipping.free_shipping_threshold cannot be negative")
	}
	if c.Shipping.DefaultPackaging.WeightGrams < 0 {
		return fmt.Errorf("shipping.default_packaging.weight_grams cannot be negative")
	}

	switch c.Payment.Klarna.Region {
	case "eu", "na", "oc":
	default:
		return fmt.Errorf("payment.klarna.region must be one of eu, na, oc, got %q", c.Payment.Klarna.Region)
	}

	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Payment.Stripe.present() && c.Payment.Stripe.TestMode {
			return fmt.Errorf("payment.stripe.test_mode must be false in production")
		}
		if c.Payment.Vipps.present() && c.Payment.Vipps.TestMode {
			return fmt.Errorf("payment.vipps.test_mode must be false in production")
		}
		if c.Payment.Klarna.present() && c.Payment.Klarna.TestMode {
			return fmt.Errorf("payment.klarna.test_mode must be false in production")
		}
	}

	return nil
}

// PaymentDomainConfig maps the loaded payment blocks onto the domain bundle.
// Blocks with no fields set become nil, which disables their provider.
func (c *Config) PaymentDomainConfig() payment.Config {
	var out payment.Config
	if c.Payment.Stripe.present() {
		out.Stripe = &payment.StripeConfig{
			PublicKey:     c.Payment.Stripe.PublicKey,
			SecretKey:     c.Payment.Stripe.SecretKey,
			WebhookSecret: c.Payment.Stripe.WebhookSecret,
			TestMode:      c.Payment.Stripe.TestMode,
		}
	}
	if c.Payment.Vipps.present() {
		out.Vipps = &payment.VippsConfig{
			ClientID:             c.Payment.Vipps.ClientID,
			ClientSecret:         c.Payment.Vipps.ClientSecret,
			SubscriptionKey:      c.Payment.Vipps.SubscriptionKey,
			MerchantSerialNumber: c.Payment.Vipps.MerchantSerialNumber,
			TestMode:             c.Payment.Vipps.TestMode,
		}
	}
	if c.Payment.Klarna.present() {
		out.Klarna = &payment.KlarnaConfig{
			Username: c.Payment.Klarna.Username,
			Password: c.Payment.Klarna.Password,
			Region:   payment.KlarnaRegion(c.Payment.Klarna.Region),
			TestMode: c.Payment.Klarna.TestMode,
		}
	}
	return out
}

// ShippingDomainConfig maps the loaded shipping blocks onto the domain
// bundle. Carrier blocks with no fields set become nil.
func (c *Config) ShippingDomainConfig() shipping.Config {
	out := shipping.Config{
		FreeShippingThreshold: decimal.NewFromFloat(c.Shipping.FreeShippingThreshold),
		DefaultPackaging: shipping.Packaging{
			WeightGrams: c.Shipping.DefaultPackaging.WeightGrams,
			WidthCm:     c.Shipping.DefaultPackaging.WidthCm,
			HeightCm:    c.Shipping.DefaultPackaging.HeightCm,
			LengthCm:    c.Shipping.DefaultPackaging.LengthCm,
		},
	}
	if c.Shipping.Bring.present() {
		out.Bring = &shipping.CarrierConfig{
			APIKey:     c.Shipping.Bring.APIKey,
			CustomerID: c.Shipping.Bring.CustomerID,
			TestMode:   c.Shipping.Bring.TestMode,
		}
	}
	if c.Shipping.Posten.present() {
		out.Posten = &shipping.CarrierConfig{
			APIKey:     c.Shipping.Posten.APIKey,
			CustomerID: c.Shipping.Posten.CustomerID,
			TestMode:   c.Shipping.Posten.TestMode,
		}
	}
	if c.Shipping.Helthjem.present() {
		out.Helthjem = &shipping.CarrierConfig{
			APIKey:     c.Shipping.Helthjem.APIKey,
			CustomerID: c.Shipping.Helthjem.CustomerID,
			TestMode:   c.Shipping.Helthjem.TestMode,
		}
	}
	return out
}
