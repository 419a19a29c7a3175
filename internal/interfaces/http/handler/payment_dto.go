package handler

import (
	"github.com/shopspring/decimal"

	"github.com/graveringshuset/backend/internal/domain/payment"
)

// CreatePaymentRequest initiates a payment for an order
type CreatePaymentRequest struct {
	Provider    string            `json:"provider" binding:"required,oneof=stripe vipps klarna"`
	OrderID     string            `json:"order_id" binding:"required"`
	Amount      decimal.Decimal   `json:"amount"`
	Currency    string            `json:"currency"`
	PhoneNumber string            `json:"phone_number"`
	Locale      string            `json:"locale"`
	Metadata    map[string]string `json:"metadata"`
}

// ToDomain converts the request to its domain counterpart
func (r *CreatePaymentRequest) ToDomain() *payment.CreatePaymentRequest {
	return &payment.CreatePaymentRequest{
		OrderID:     r.OrderID,
		Amount:      r.Amount,
		Currency:    r.Currency,
		PhoneNumber: r.PhoneNumber,
		Locale:      r.Locale,
		Metadata:    r.Metadata,
	}
}

// CapturePaymentRequest captures a reserved payment. A zero amount captures
// the full reserved amount.
type CapturePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CancelPaymentRequest cancels or refunds a payment. A zero amount means a
// full refund.
type CancelPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PaymentResultResponse is the uniform outcome of a provider call
type PaymentResultResponse struct {
	Success     bool              `json:"success"`
	PaymentID   string            `json:"payment_id,omitempty"`
	RedirectURL string            `json:"redirect_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// ToPaymentResultResponse converts a domain result to its DTO
func ToPaymentResultResponse(r *payment.Result) PaymentResultResponse {
	return PaymentResultResponse{
		Success:     r.Success,
		PaymentID:   r.PaymentID,
		RedirectURL: r.RedirectURL,
		Metadata:    r.Metadata,
		Error:       r.Error,
	}
}
