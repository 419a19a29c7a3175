package payment

import (
	"fmt"

	"github.com/graveringshuset/backend/internal/domain/payment"
)

// Registry implements payment.Registry over the closed provider set. An
// adapter is registered for every *present* credential block; a block with
// missing fields still gets an adapter, which then reports the gap inside
// its Results exactly as a live provider rejecting bad credentials would.
type Registry struct {
	providers map[payment.ProviderType]payment.Provider
}

// NewRegistry builds a registry from the payment configuration bundle
func NewRegistry(cfg payment.Config) *Registry {
	providers := make(map[payment.ProviderType]payment.Provider)
	if cfg.Stripe != nil {
		providers[payment.ProviderStripe] = NewStripeAdapter(cfg.Stripe)
	}
	if cfg.Vipps != nil {
		providers[payment.ProviderVipps] = NewVippsAdapter(cfg.Vipps)
	}
	if cfg.Klarna != nil {
		providers[payment.ProviderKlarna] = NewKlarnaAdapter(cfg.Klarna)
	}
	return &Registry{providers: providers}
}

// Provider returns the adapter for the given type. Requesting an unknown or
// unconfigured provider is a programming error and fails hard.
func (r *Registry) Provider(t payment.ProviderType) (payment.Provider, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %s", payment.ErrInvalidProvider, t)
	}
	p, ok := r.providers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", payment.ErrProviderNotConfigured, t)
	}
	return p, nil
}

// Enabled returns the configured providers in priority order
func (r *Registry) Enabled() []payment.Provider {
	enabled := make([]payment.Provider, 0, len(r.providers))
	for _, t := range payment.AllProviders() {
		if p, ok := r.providers[t]; ok {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// IsEnabled returns true if the provider type is configured
func (r *Registry) IsEnabled(t payment.ProviderType) bool {
	_, ok := r.providers[t]
	return ok
}

// Ensure Registry implements the domain registry interface
var _ payment.Registry = (*Registry)(nil)
