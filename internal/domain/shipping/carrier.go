package shipping

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Carrier Errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidCarrier       = errors.New("shipping: invalid carrier")
	ErrCarrierNotConfigured = errors.New("shipping: carrier not configured")
	ErrInvalidTrackingNo    = errors.New("shipping: invalid tracking number")
	ErrInvalidLabelRequest  = errors.New("shipping: invalid label request")
)

// ---------------------------------------------------------------------------
// CarrierType represents a supported delivery channel
type CarrierType string

const (
	// CarrierBring represents Bring (Posten's parcel arm)
	CarrierBring CarrierType = "bring"
	// CarrierPosten represents Posten letter/parcel services
	CarrierPosten CarrierType = "posten"
	// CarrierHelthjem represents Helthjem home delivery
	CarrierHelthjem CarrierType = "helthjem"
	// CarrierPickup represents store pickup; it has no adapter
	CarrierPickup CarrierType = "pickup"
)

// IsValid returns true if the carrier type is valid
func (t CarrierType) IsValid() bool {
	switch t {
	case CarrierBring, CarrierPosten, CarrierHelthjem, CarrierPickup:
		return true
	default:
		return false
	}
}

// String returns the string representation of CarrierType
func (t CarrierType) String() string {
	return string(t)
}

// AdapterCarriers returns the carriers backed by an adapter, in method
// listing order. Store pickup is excluded: it is a static entry.
func AdapterCarriers() []CarrierType {
	return []CarrierType{CarrierBring, CarrierPosten, CarrierHelthjem}
}

// ShipmentStatus represents the delivery state of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending        ShipmentStatus = "pending"
	ShipmentStatusProcessing     ShipmentStatus = "processing"
	ShipmentStatusShipped        ShipmentStatus = "shipped"
	ShipmentStatusInTransit      ShipmentStatus = "in_transit"
	ShipmentStatusOutForDelivery ShipmentStatus = "out_for_delivery"
	ShipmentStatusDelivered      ShipmentStatus = "delivered"
	ShipmentStatusFailed         ShipmentStatus = "failed"
	ShipmentStatusReturned       ShipmentStatus = "returned"
)

// IsValid returns true if the shipment status is valid
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusProcessing, ShipmentStatusShipped,
		ShipmentStatusInTransit, ShipmentStatusOutForDelivery,
		ShipmentStatusDelivered, ShipmentStatusFailed, ShipmentStatusReturned:
		return true
	default:
		return false
	}
}

// String returns the string representation of ShipmentStatus
func (s ShipmentStatus) String() string {
	return string(s)
}

// IsFinal returns true if the status is a terminal state
func (s ShipmentStatus) IsFinal() bool {
	switch s {
	case ShipmentStatusDelivered, ShipmentStatusFailed, ShipmentStatusReturned:
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// CarrierConfig contains one carrier's credentials. APIKey and CustomerID
// are required; the blocks for all three carriers share this shape.
type CarrierConfig struct {
	APIKey     string
	CustomerID string
	TestMode   bool
}

// MissingFields returns one human-readable error per absent required field,
// prefixed with the carrier's display name.
func (c *CarrierConfig) MissingFields(displayName string) []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, displayName+" API key is required")
	}
	if c.CustomerID == "" {
		missing = append(missing, displayName+" customer ID is required")
	}
	return missing
}

// Enabled returns true if every required field is present. A nil block is
// simply disabled, not misconfigured.
func (c *CarrierConfig) Enabled() bool {
	return c != nil && len(c.MissingFields("")) == 0
}

// Packaging holds the default package dimensions applied when a shipment
// does not specify its own.
type Packaging struct {
	WeightGrams int
	WidthCm     int
	HeightCm    int
	LengthCm    int
}

// Config is the shipping side of the checkout configuration bundle.
type Config struct {
	Bring    *CarrierConfig
	Posten   *CarrierConfig
	Helthjem *CarrierConfig

	// FreeShippingThreshold is the cart subtotal (NOK, inclusive) above
	// which shipping cost is waived
	FreeShippingThreshold decimal.Decimal
	// DefaultPackaging is applied when a quote or label omits dimensions
	DefaultPackaging Packaging
}

// Carrier returns the credential block for an adapter-backed carrier, or
// nil when the carrier is not configured (or is store pickup).
func (c Config) Carrier(t CarrierType) *CarrierConfig {
	switch t {
	case CarrierBring:
		return c.Bring
	case CarrierPosten:
		return c.Posten
	case CarrierHelthjem:
		return c.Helthjem
	default:
		return nil
	}
}

// MissingFields aggregates the missing required fields of every present
// carrier block, in listing order. Absent blocks contribute nothing.
func (c Config) MissingFields() []string {
	var missing []string
	if c.Bring != nil {
		missing = append(missing, c.Bring.MissingFields("Bring")...)
	}
	if c.Posten != nil {
		missing = append(missing, c.Posten.MissingFields("Posten")...)
	}
	if c.Helthjem != nil {
		missing = append(missing, c.Helthjem.MissingFields("Helthjem")...)
	}
	return missing
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// Method is a user-selectable delivery option derived from configuration.
// Prices and lead times are static per service tier; real-time pricing goes
// through Carrier.GetRates instead. Recomputed on every listing call, never
// persisted.
type Method struct {
	ID            string
	Carrier       CarrierType
	Name          string
	Description   string
	Price         decimal.Decimal
	EstimatedDays int
	Enabled       bool
}

// Dimensions holds package dimensions in centimetres
type Dimensions struct {
	WidthCm  int
	HeightCm int
	LengthCm int
}

// RateQuery carries the inputs for a rate lookup
type RateQuery struct {
	FromPostalCode string
	ToPostalCode   string
	WeightGrams    int
	// Dimensions is optional; nil means the caller's default packaging
	Dimensions *Dimensions
}

// Rate is a single quoted service from a carrier. Callers must not assume
// any ordering of returned rates.
type Rate struct {
	Carrier           CarrierType
	Service           string
	Price             decimal.Decimal
	EstimatedDelivery string
}

// Address is a delivery destination
type Address struct {
	FirstName  string
	LastName   string
	Company    string
	Address1   string
	Address2   string
	PostalCode string
	City       string
	Country    string
	Phone      string
	Email      string
}

// CreateLabelRequest carries the inputs for creating a shipping label
type CreateLabelRequest struct {
	OrderID     string
	Service     string
	To          Address
	WeightGrams int
	// TimeSlot is the requested delivery window (Helthjem only)
	TimeSlot string
}

// Validate validates the label request
func (r *CreateLabelRequest) Validate() error {
	if r.OrderID == "" {
		return ErrInvalidLabelRequest
	}
	return nil
}

// Label is a carrier-issued shipping label
type Label struct {
	ID             string
	TrackingNumber string
	Carrier        CarrierType
	LabelURL       string
	CreatedAt      time.Time
}

// TrackingEvent is a single scan/status entry in a shipment's history
type TrackingEvent struct {
	Timestamp   time.Time
	Status      string
	Location    string
	Description string
}

// TrackingInfo is the tracked state of a shipment. Events are ordered
// newest first by convention.
type TrackingInfo struct {
	TrackingNumber    string
	Carrier           CarrierType
	Status            ShipmentStatus
	Events            []TrackingEvent
	EstimatedDelivery *time.Time
}

// TimeSlot is a bookable home delivery window
type TimeSlot struct {
	ID        string
	From      string
	To        string
	Available bool
}

// PickupPoint is a parcel collection location near a postal code
type PickupPoint struct {
	ID           string
	Name         string
	Address      string
	PostalCode   string
	City         string
	OpeningHours string
	Carrier      CarrierType
	DistanceKm   float64
}

// ---------------------------------------------------------------------------
// Carrier Port Interfaces
// ---------------------------------------------------------------------------

// Carrier defines the port interface for external carriers. Implementations
// stand in for real network clients with an identical contract. Rate lookup
// is advisory: a misconfigured or unreachable carrier yields an empty slice,
// not an error. Label creation and tracking return a nil value with a
// sentinel error on failure; they never panic.
type Carrier interface {
	// Type returns the carrier tag
	Type() CarrierType

	// GetRates quotes available services for a shipment
	GetRates(ctx context.Context, query *RateQuery) ([]Rate, error)

	// CreateLabel books a shipment and returns the label
	CreateLabel(ctx context.Context, req *CreateLabelRequest) (*Label, error)

	// Track returns the current tracking state for a shipment
	Track(ctx context.Context, trackingNumber string) (*TrackingInfo, error)
}

// PickupPointProvider is implemented by carriers offering parcel pickup
// locations (Bring, Posten).
type PickupPointProvider interface {
	// PickupPoints lists collection points near a postal code
	PickupPoints(ctx context.Context, postalCode, countryCode string) ([]PickupPoint, error)
}

// TimeSlotProvider is implemented by carriers offering scheduled home
// delivery windows (Helthjem).
type TimeSlotProvider interface {
	// TimeSlots lists available delivery windows for a date
	TimeSlots(ctx context.Context, postalCode string, date time.Time) ([]TimeSlot, error)

	// Serviceable reports whether the carrier delivers to the postal code
	Serviceable(ctx context.Context, postalCode string) (bool, error)
}

// Registry provides access to the carriers configured for this deployment.
// Requesting an unknown or unconfigured carrier is a programming error and
// returns ErrInvalidCarrier / ErrCarrierNotConfigured. Store pickup has no
// adapter and is not resolvable here.
type Registry interface {
	// Carrier returns the adapter for the given type
	Carrier(t CarrierType) (Carrier, error)

	// Enabled returns the configured carriers in listing order
	Enabled() []Carrier

	// IsEnabled returns true if the carrier type is configured
	IsEnabled(t CarrierType) bool
}
