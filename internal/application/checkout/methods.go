package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/graveringshuset/backend/internal/domain/payment"
	"github.com/graveringshuset/backend/internal/domain/shipping"
)

// ErrMethodNotFound is returned when a shipping cost is requested for a
// method ID that no configured carrier offers.
var ErrMethodNotFound = errors.New("checkout: shipping method not found")

// shippingTier is one fixed-price service level offered by a carrier
type shippingTier struct {
	id            string
	name          string
	description   string
	price         int64
	estimatedDays int
}

// carrierTiers lists each carrier's service levels in display order.
// Prices are NOK; lead times are business days.
var carrierTiers = map[shipping.CarrierType][]shippingTier{
	shipping.CarrierBring: {
		{id: "bring_mailbox", name: "Pakke i postkassen", description: "Leveres i postkassen din", price: 89, estimatedDays: 3},
		{id: "bring_pickup", name: "Pakke til hentested", description: "Hentes på ditt lokale hentested", price: 99, estimatedDays: 2},
		{id: "bring_home", name: "Hjemlevering", description: "Leveres hjem til deg", price: 149, estimatedDays: 2},
	},
	shipping.CarrierPosten: {
		{id: "posten_a", name: "A-prioritert", description: "Raskeste levering med Posten", price: 79, estimatedDays: 2},
		{id: "posten_b", name: "B-økonomi", description: "Rimeligste alternativ", price: 59, estimatedDays: 4},
	},
	shipping.CarrierHelthjem: {
		{id: "helthjem_day", name: "Hjemlevering dag", description: "Levering på dagtid (09:00-17:00)", price: 129, estimatedDays: 2},
		{id: "helthjem_evening", name: "Hjemlevering kveld", description: "Levering på kveldstid (17:00-21:00)", price: 159, estimatedDays: 2},
	},
}

// storePickupMethod is the static store pickup option, always listed first
func storePickupMethod() shipping.Method {
	return shipping.Method{
		ID:            "store_pickup",
		Carrier:       shipping.CarrierPickup,
		Name:          "Hent i butikk",
		Description:   "Hent bestillingen i butikken vår i Oslo",
		Price:         decimal.Zero,
		EstimatedDays: 0,
		Enabled:       true,
	}
}

// ListPaymentMethods returns the selectable payment options in priority
// order. A provider is listed only when every required credential field is
// present; the optional Stripe webhook secret never gates listing.
func (s *Service) ListPaymentMethods(ctx context.Context) []payment.Method {
	methods := make([]payment.Method, 0, 3)
	for _, t := range payment.AllProviders() {
		switch t {
		case payment.ProviderStripe:
			if s.paymentCfg.Stripe.Enabled() {
				methods = append(methods, payment.Method{
					ID:          "stripe",
					Provider:    payment.ProviderStripe,
					Name:        "Kort",
					Description: "Betal med Visa, Mastercard eller American Express",
					Enabled:     true,
					TestMode:    s.paymentCfg.Stripe.TestMode,
				})
			}
		case payment.ProviderVipps:
			if s.paymentCfg.Vipps.Enabled() {
				methods = append(methods, payment.Method{
					ID:          "vipps",
					Provider:    payment.ProviderVipps,
					Name:        "Vipps",
					Description: "Betal enkelt med Vipps-appen",
					Enabled:     true,
					TestMode:    s.paymentCfg.Vipps.TestMode,
					Logo:        "/images/vipps-logo.svg",
				})
			}
		case payment.ProviderKlarna:
			if s.paymentCfg.Klarna.Enabled() {
				methods = append(methods, payment.Method{
					ID:          "klarna",
					Provider:    payment.ProviderKlarna,
					Name:        "Klarna",
					Description: "Betal senere eller del opp betalingen",
					Enabled:     true,
					TestMode:    s.paymentCfg.Klarna.TestMode,
					Logo:        "/images/klarna-logo.svg",
				})
			}
		}
	}
	return methods
}

// ListShippingMethods returns the selectable delivery options. Store pickup
// is always first and always available; a carrier's tiers are listed when
// its block carries an API key, regardless of other fields.
func (s *Service) ListShippingMethods(ctx context.Context) []shipping.Method {
	methods := []shipping.Method{storePickupMethod()}

	for _, t := range shipping.AdapterCarriers() {
		block := s.shippingCfg.Carrier(t)
		if block == nil || block.APIKey == "" {
			continue
		}
		for _, tier := range carrierTiers[t] {
			methods = append(methods, shipping.Method{
				ID:            tier.id,
				Carrier:       t,
				Name:          tier.name,
				Description:   tier.description,
				Price:         decimal.NewFromInt(tier.price),
				EstimatedDays: tier.estimatedDays,
				Enabled:       true,
			})
		}
	}

	return methods
}

// ShippingCost returns the price to charge for a shipping service given
// the cart subtotal: zero once the subtotal reaches the configured
// free-shipping threshold (inclusive), the base price unchanged below it.
// Pure function of its inputs.
func ShippingCost(basePrice, subtotal decimal.Decimal, cfg shipping.Config) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(cfg.FreeShippingThreshold) {
		return decimal.Zero
	}
	return basePrice
}

// CalculateShippingCost looks up the shipping method and returns its cost
// for the cart subtotal via ShippingCost. Store pickup is always free.
// Requesting an unknown method ID is a hard failure.
func (s *Service) CalculateShippingCost(ctx context.Context, methodID string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	var method *shipping.Method
	for _, m := range s.ListShippingMethods(ctx) {
		if m.ID == methodID {
			method = &m
			break
		}
	}
	if method == nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrMethodNotFound, methodID)
	}

	return ShippingCost(method.Price, subtotal, s.shippingCfg), nil
}

// ValidationResult reports whether the integration configuration is usable
// and lists every missing required field.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// ValidateConfig aggregates the missing required fields of every present
// credential block, payment providers first. An empty configuration is
// valid: it simply means no providers are offered yet.
func (s *Service) ValidateConfig() ValidationResult {
	var errs []string
	errs = append(errs, s.paymentCfg.MissingFields()...)
	errs = append(errs, s.shippingCfg.MissingFields()...)

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
