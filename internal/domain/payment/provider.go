package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Payment Provider Errors
// ---------------------------------------------------------------------------

var (
	// Request validation errors
	ErrInvalidOrderID   = errors.New("payment: invalid order ID")
	ErrInvalidAmount    = errors.New("payment: amount must be positive")
	ErrInvalidPaymentID = errors.New("payment: invalid payment ID")

	// Provider selection errors
	ErrInvalidProvider       = errors.New("payment: invalid provider")
	ErrProviderNotConfigured = errors.New("payment: provider not configured")
)

// ---------------------------------------------------------------------------
// ProviderType represents a supported payment provider
type ProviderType string

const (
	// ProviderStripe represents card payments (Visa, Mastercard, Amex)
	ProviderStripe ProviderType = "stripe"
	// ProviderVipps represents the Vipps mobile wallet
	ProviderVipps ProviderType = "vipps"
	// ProviderKlarna represents Klarna pay-later
	ProviderKlarna ProviderType = "klarna"
)

// IsValid returns true if the provider type is valid
func (t ProviderType) IsValid() bool {
	switch t {
	case ProviderStripe, ProviderVipps, ProviderKlarna:
		return true
	default:
		return false
	}
}

// String returns the string representation of ProviderType
func (t ProviderType) String() string {
	return string(t)
}

// AllProviders returns the closed provider set in checkout display priority
// order: card first, then mobile wallet, then pay-later.
func AllProviders() []ProviderType {
	return []ProviderType{ProviderStripe, ProviderVipps, ProviderKlarna}
}

// Status represents the lifecycle state of a payment
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// IsValid returns true if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed,
		StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsFinal returns true if the status is a terminal state
func (s Status) IsFinal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// Provider Credential Blocks
// ---------------------------------------------------------------------------

// StripeConfig contains Stripe credentials. PublicKey and SecretKey are
// required; WebhookSecret is carried for the webhook stub but never gates
// enablement.
type StripeConfig struct {
	PublicKey     string
	SecretKey     string
	WebhookSecret string
	TestMode      bool
}

// MissingFields returns one human-readable error per absent required field.
func (c *StripeConfig) MissingFields() []string {
	var missing []string
	if c.PublicKey == "" {
		missing = append(missing, "Stripe public key is required")
	}
	if c.SecretKey == "" {
		missing = append(missing, "Stripe secret key is required")
	}
	return missing
}

// Enabled returns true if every required field is present. A nil block is
// simply disabled, not misconfigured.
func (c *StripeConfig) Enabled() bool {
	return c != nil && len(c.MissingFields()) == 0
}

// VippsConfig contains Vipps merchant credentials. ClientID, ClientSecret
// and MerchantSerialNumber are required.
type VippsConfig struct {
	ClientID             string
	ClientSecret         string
	SubscriptionKey      string
	MerchantSerialNumber string
	TestMode             bool
}

// MissingFields returns one human-readable error per absent required field.
func (c *VippsConfig) MissingFields() []string {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "Vipps client ID is required")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "Vipps client secret is required")
	}
	if c.MerchantSerialNumber == "" {
		missing = append(missing, "Vipps merchant serial number is required")
	}
	return missing
}

// Enabled returns true if every required field is present.
func (c *VippsConfig) Enabled() bool {
	return c != nil && len(c.MissingFields()) == 0
}

// KlarnaRegion identifies the Klarna API region
type KlarnaRegion string

const (
	KlarnaRegionEU KlarnaRegion = "eu"
	KlarnaRegionNA KlarnaRegion = "na"
	KlarnaRegionOC KlarnaRegion = "oc"
)

// KlarnaConfig contains Klarna API credentials. Username and Password are
// required.
type KlarnaConfig struct {
	Username string
	Password string
	Region   KlarnaRegion
	TestMode bool
}

// MissingFields returns one human-readable error per absent required field.
func (c *KlarnaConfig) MissingFields() []string {
	var missing []string
	if c.Username == "" {
		missing = append(missing, "Klarna username is required")
	}
	if c.Password == "" {
		missing = append(missing, "Klarna password is required")
	}
	return missing
}

// Enabled returns true if every required field is present.
func (c *KlarnaConfig) Enabled() bool {
	return c != nil && len(c.MissingFields()) == 0
}

// Config is the payment side of the checkout configuration bundle. A nil
// block disables its provider; no credential correctness is verified before
// use.
type Config struct {
	Stripe *StripeConfig
	Vipps  *VippsConfig
	Klarna *KlarnaConfig
}

// MissingFields aggregates the missing required fields of every present
// block, in provider priority order. Absent blocks contribute nothing.
func (c Config) MissingFields() []string {
	var missing []string
	if c.Stripe != nil {
		missing = append(missing, c.Stripe.MissingFields()...)
	}
	if c.Vipps != nil {
		missing = append(missing, c.Vipps.MissingFields()...)
	}
	if c.Klarna != nil {
		missing = append(missing, c.Klarna.MissingFields()...)
	}
	return missing
}

// ---------------------------------------------------------------------------
// Derived Method
// ---------------------------------------------------------------------------

// Method is a user-selectable payment option derived from configuration.
// It is recomputed on every listing call and never persisted.
type Method struct {
	// ID is the stable method identifier surfaced to the checkout UI
	ID string
	// Provider tags the backing payment provider
	Provider ProviderType
	// Name is the display name
	Name string
	// Description is the display description
	Description string
	// Enabled is always true for listed methods
	Enabled bool
	// TestMode mirrors the provider block's test flag
	TestMode bool
	// Logo is an optional logo asset reference
	Logo string
}

// ---------------------------------------------------------------------------
// Request/Result DTOs
// ---------------------------------------------------------------------------

// CreatePaymentRequest carries the inputs for initiating a payment.
type CreatePaymentRequest struct {
	// OrderID is our internal order reference
	OrderID string
	// Amount is the payment amount in NOK
	Amount decimal.Decimal
	// Currency is the payment currency (default: NOK)
	Currency string
	// PhoneNumber is the payer's phone number (Vipps flows)
	PhoneNumber string
	// Locale is the checkout locale (Klarna sessions, default: nb-NO)
	Locale string
	// Metadata is additional key-value data to associate with the payment
	Metadata map[string]string
}

// Validate validates the create payment request
func (r *CreatePaymentRequest) Validate() error {
	if r.OrderID == "" {
		return ErrInvalidOrderID
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// CaptureRequest carries the inputs for capturing a reserved payment.
// A zero Amount means "capture the full reserved amount".
type CaptureRequest struct {
	PaymentID string
	Amount    decimal.Decimal
}

// Validate validates the capture request
func (r *CaptureRequest) Validate() error {
	if r.PaymentID == "" {
		return ErrInvalidPaymentID
	}
	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// RefundRequest carries the inputs for cancelling or refunding a payment.
// A zero Amount means a full refund.
type RefundRequest struct {
	PaymentID string
	Amount    decimal.Decimal
}

// Validate validates the refund request
func (r *RefundRequest) Validate() error {
	if r.PaymentID == "" {
		return ErrInvalidPaymentID
	}
	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// Result is the uniform outcome of every provider call. Exactly one of the
// success fields (PaymentID and friends) or Error is populated; expected
// runtime failures (missing credentials, provider unreachable) travel here
// rather than as Go errors.
type Result struct {
	// Success reports whether the call succeeded
	Success bool
	// PaymentID is the provider-assigned payment/session identifier
	PaymentID string
	// RedirectURL is set for browser-redirect flows
	RedirectURL string
	// Metadata carries provider-specific continuation data (client tokens,
	// capture IDs, status values)
	Metadata map[string]string
	// Error is the failure message when Success is false
	Error string
}

// NewResult returns a successful result for the given payment identifier.
func NewResult(paymentID string) *Result {
	return &Result{Success: true, PaymentID: paymentID}
}

// NewErrorResult returns a failed result carrying the given message.
func NewErrorResult(message string) *Result {
	return &Result{Success: false, Error: message}
}

// WithRedirect sets the redirect URL and returns the result for chaining.
func (r *Result) WithRedirect(url string) *Result {
	r.RedirectURL = url
	return r
}

// WithMetadata sets a metadata entry and returns the result for chaining.
func (r *Result) WithMetadata(key, value string) *Result {
	if r.Metadata == nil {
		r.Metadata = make(map[string]string)
	}
	r.Metadata[key] = value
	return r
}

// Validate checks the mutual-exclusivity invariant: a successful result must
// carry a payment ID and no error, a failed result the opposite.
func (r *Result) Validate() error {
	if r.Success {
		if r.PaymentID == "" {
			return errors.New("payment: successful result missing payment ID")
		}
		if r.Error != "" {
			return errors.New("payment: successful result carries an error message")
		}
		return nil
	}
	if r.Error == "" {
		return errors.New("payment: failed result missing error message")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Amount helpers
// ---------------------------------------------------------------------------

// ToMinorUnit converts a NOK amount to øre.
func ToMinorUnit(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromMinorUnit converts øre to a NOK amount.
func FromMinorUnit(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100))
}

// ---------------------------------------------------------------------------
// Provider Port Interface
// ---------------------------------------------------------------------------

// Provider defines the port interface for external payment services.
// Implementations stand in for real network clients: the contract (including
// configuration failures surfacing inside Result) is identical to what a
// production HTTPS client would return, so one can be substituted without
// changing callers. Go errors are reserved for programming-level failures.
type Provider interface {
	// Type returns the provider tag
	Type() ProviderType

	// CreatePayment initiates a payment for an order. Missing credentials
	// yield a failed Result, not an error.
	CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*Result, error)

	// Capture finalizes a previously reserved payment. Not guaranteed
	// idempotent by the provider; the application layer deduplicates by
	// payment ID before invoking it.
	Capture(ctx context.Context, req *CaptureRequest) (*Result, error)

	// Cancel cancels or refunds a payment
	Cancel(ctx context.Context, req *RefundRequest) (*Result, error)

	// Status queries the current payment state; the provider status value is
	// reported in Result metadata under "status".
	Status(ctx context.Context, paymentID string) (*Result, error)
}

// Registry provides access to the providers configured for this deployment.
// Requesting an unknown or unconfigured provider is a programming error and
// returns ErrInvalidProvider / ErrProviderNotConfigured.
type Registry interface {
	// Provider returns the adapter for the given type
	Provider(t ProviderType) (Provider, error)

	// Enabled returns the configured providers in priority order
	Enabled() []Provider

	// IsEnabled returns true if the provider type is configured
	IsEnabled(t ProviderType) bool
}
