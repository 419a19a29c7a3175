package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/graveringshuset/backend/internal/application/checkout"
	"github.com/graveringshuset/backend/internal/interfaces/http/dto"
	"github.com/graveringshuset/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler serves the method listing and cost endpoints backing the
// storefront checkout
type CheckoutHandler struct {
	BaseHandler
	service *checkout.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/checkout")
	group.GET("/payment-methods", h.ListPaymentMethods)
	group.GET("/shipping-methods", h.ListShippingMethods)
	group.POST("/shipping-cost", h.CalculateShippingCost)

	rg.GET("/config/validation", h.ValidateConfig)
}

// ListPaymentMethods returns the payment options available to the customer
func (h *CheckoutHandler) ListPaymentMethods(c *gin.Context) {
	methods := h.service.ListPaymentMethods(c.Request.Context())

	out := make([]PaymentMethodResponse, len(methods))
	for i, m := range methods {
		out[i] = ToPaymentMethodResponse(m)
	}
	h.Success(c, out)
}

// ListShippingMethods returns the delivery options available to the customer
func (h *CheckoutHandler) ListShippingMethods(c *gin.Context) {
	methods := h.service.ListShippingMethods(c.Request.Context())

	out := make([]ShippingMethodResponse, len(methods))
	for i, m := range methods {
		out[i] = ToShippingMethodResponse(m)
	}
	h.Success(c, out)
}

// CalculateShippingCost returns the shipping cost for a method given the
// cart subtotal
func (h *CheckoutHandler) CalculateShippingCost(c *gin.Context) {
	var req ShippingCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	cost, err := h.service.CalculateShippingCost(c.Request.Context(), req.MethodID, req.Subtotal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ShippingCostResponse{
		MethodID: req.MethodID,
		Cost:     cost,
		Free:     cost.IsZero(),
	})
}

// ValidateConfig reports missing required fields across all present
// provider and carrier blocks
func (h *CheckoutHandler) ValidateConfig(c *gin.Context) {
	h.Success(c, ToConfigValidationResponse(h.service.ValidateConfig()))
}

// bindingError distinguishes validation failures from malformed JSON
func (h *BaseHandler) bindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		middleware.HandleValidationError(c, err)
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body")
}
