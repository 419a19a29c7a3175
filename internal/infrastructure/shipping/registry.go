package shipping

import (
	"fmt"

	"github.com/graveringshuset/backend/internal/domain/shipping"
)

// Registry implements shipping.Registry over the closed carrier set. An
// adapter is registered for every present credential block; a block with
// missing fields still gets an adapter, which then degrades per call
// (empty rate slices, label and tracking errors). Store pickup has no
// adapter and is never resolvable here.
type Registry struct {
	carriers map[shipping.CarrierType]shipping.Carrier
}

// NewRegistry builds a registry from the shipping configuration bundle
func NewRegistry(cfg shipping.Config) *Registry {
	carriers := make(map[shipping.CarrierType]shipping.Carrier)
	if cfg.Bring != nil {
		carriers[shipping.CarrierBring] = NewBringAdapter(cfg.Bring)
	}
	if cfg.Posten != nil {
		carriers[shipping.CarrierPosten] = NewPostenAdapter(cfg.Posten)
	}
	if cfg.Helthjem != nil {
		carriers[shipping.CarrierHelthjem] = NewHelthjemAdapter(cfg.Helthjem)
	}
	return &Registry{carriers: carriers}
}

// Carrier returns the adapter for the given type. Requesting an unknown or
// unconfigured carrier is a programming error and fails hard.
func (r *Registry) Carrier(t shipping.CarrierType) (shipping.Carrier, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %s", shipping.ErrInvalidCarrier, t)
	}
	c, ok := r.carriers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shipping.ErrCarrierNotConfigured, t)
	}
	return c, nil
}

// Enabled returns the configured carriers in listing order
func (r *Registry) Enabled() []shipping.Carrier {
	enabled := make([]shipping.Carrier, 0, len(r.carriers))
	for _, t := range shipping.AdapterCarriers() {
		if c, ok := r.carriers[t]; ok {
			enabled = append(enabled, c)
		}
	}
	return enabled
}

// IsEnabled returns true if the carrier type is configured
func (r *Registry) IsEnabled(t shipping.CarrierType) bool {
	_, ok := r.carriers[t]
	return ok
}

// Ensure Registry implements the domain registry interface
var _ shipping.Registry = (*Registry)(nil)
