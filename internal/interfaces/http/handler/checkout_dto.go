package handler

import (
	"github.com/shopspring/decimal"

	"github.com/graveringshuset/backend/internal/application/checkout"
	"github.com/graveringshuset/backend/internal/domain/payment"
	"github.com/graveringshuset/backend/internal/domain/shipping"
)

// PaymentMethodResponse is a selectable payment option
type PaymentMethodResponse struct {
	ID          string `json:"id"`
	Provider    string `json:"provider"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
	TestMode    bool   `json:"test_mode"`
	Logo        string `json:"logo,omitempty"`
}

// ToPaymentMethodResponse converts a domain payment method to its DTO
func ToPaymentMethodResponse(m payment.Method) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:          m.ID,
		Provider:    m.Provider.String(),
		Name:        m.Name,
		Description: m.Description,
		Enabled:     m.Enabled,
		TestMode:    m.TestMode,
		Logo:        m.Logo,
	}
}

// ShippingMethodResponse is a selectable delivery option. DeliveryWindow is
// the estimated arrival range rendered for the storefront, e.g.
// "2. jan. - 6. jan.".
type ShippingMethodResponse struct {
	ID             string          `json:"id"`
	Carrier        string          `json:"carrier"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	EstimatedDays  int             `json:"estimated_days"`
	DeliveryWindow string          `json:"delivery_window"`
	Enabled        bool            `json:"enabled"`
}

// ToShippingMethodResponse converts a domain shipping method to its DTO
func ToShippingMethodResponse(m shipping.Method) ShippingMethodResponse {
	return ShippingMethodResponse{
		ID:             m.ID,
		Carrier:        m.Carrier.String(),
		Name:           m.Name,
		Description:    m.Description,
		Price:          m.Price,
		EstimatedDays:  m.EstimatedDays,
		DeliveryWindow: shipping.FormatDeliveryRange(m.EstimatedDays),
		Enabled:        m.Enabled,
	}
}

// ShippingCostRequest asks for the shipping cost of a method given the
// cart subtotal
type ShippingCostRequest struct {
	MethodID string          `json:"method_id" binding:"required"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ShippingCostResponse carries the calculated shipping cost
type ShippingCostResponse struct {
	MethodID string          `json:"method_id"`
	Cost     decimal.Decimal `json:"cost"`
	Free     bool            `json:"free"`
}

// ConfigValidationResponse reports the configuration health of the
// integration layer
type ConfigValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ToConfigValidationResponse converts a validation result to its DTO
func ToConfigValidationResponse(r checkout.ValidationResult) ConfigValidationResponse {
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return ConfigValidationResponse{Valid: r.Valid, Errors: errs}
}
