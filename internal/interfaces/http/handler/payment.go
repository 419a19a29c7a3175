package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/graveringshuset/backend/internal/application/checkout"
	"github.com/graveringshuset/backend/internal/domain/payment"
)

// PaymentHandler serves the payment provider endpoints
type PaymentHandler struct {
	BaseHandler
	service *checkout.Service
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(service *checkout.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/payments")
	group.POST("", h.CreatePayment)
	group.POST("/:provider/:id/capture", h.CapturePayment)
	group.POST("/:provider/:id/cancel", h.CancelPayment)
	group.GET("/:provider/:id", h.PaymentStatus)
}

// CreatePayment initiates a payment with the provider named in the body.
// A failed Result (incomplete credentials, provider rejection) is still a
// 200: success=false in the payload is a retryable UI state.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	result, err := h.service.CreatePayment(c.Request.Context(), payment.ProviderType(req.Provider), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToPaymentResultResponse(result))
}

// CapturePayment captures a reserved payment. An empty body captures the
// full reserved amount.
func (h *PaymentHandler) CapturePayment(c *gin.Context) {
	var req CapturePaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.bindingError(c, err)
			return
		}
	}

	result, err := h.service.CapturePayment(c.Request.Context(),
		payment.ProviderType(c.Param("provider")),
		&payment.CaptureRequest{PaymentID: c.Param("id"), Amount: req.Amount},
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToPaymentResultResponse(result))
}

// CancelPayment cancels or refunds a payment. An empty body means a full
// refund.
func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	var req CancelPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.bindingError(c, err)
			return
		}
	}

	result, err := h.service.CancelPayment(c.Request.Context(),
		payment.ProviderType(c.Param("provider")),
		&payment.RefundRequest{PaymentID: c.Param("id"), Amount: req.Amount},
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToPaymentResultResponse(result))
}

// PaymentStatus queries the current state of a payment
func (h *PaymentHandler) PaymentStatus(c *gin.Context) {
	result, err := h.service.PaymentStatus(c.Request.Context(),
		payment.ProviderType(c.Param("provider")),
		c.Param("id"),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToPaymentResultResponse(result))
}
