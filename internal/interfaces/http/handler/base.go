package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/graveringshuset/backend/internal/application/checkout"
	"github.com/graveringshuset/backend/internal/domain/payment"
	"github.com/graveringshuset/backend/internal/domain/shipping"
	"github.com/graveringshuset/backend/internal/infrastructure/logger"
	"github.com/graveringshuset/backend/internal/interfaces/http/dto"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := logger.GetRequestID(c.Request.Context()); id != "" {
		return id
	}
	if id := c.GetHeader(RequestIDKey); id != "" {
		return id
	}
	return ""
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts domain errors to HTTP responses. Selection errors
// (unknown or unconfigured provider/carrier, unknown method, unsupported
// capability) map to 404, request validation errors to 400, anything else
// to 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, payment.ErrInvalidProvider),
		errors.Is(err, shipping.ErrInvalidCarrier),
		errors.Is(err, checkout.ErrMethodNotFound):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, err.Error())

	case errors.Is(err, payment.ErrProviderNotConfigured),
		errors.Is(err, shipping.ErrCarrierNotConfigured):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotConfigured, err.Error())

	case errors.Is(err, checkout.ErrPickupPointsUnsupported),
		errors.Is(err, checkout.ErrTimeSlotsUnsupported):
		h.Error(c, http.StatusNotFound, dto.ErrCodeUnsupported, err.Error())

	case errors.Is(err, payment.ErrInvalidOrderID),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, payment.ErrInvalidPaymentID),
		errors.Is(err, shipping.ErrInvalidLabelRequest),
		errors.Is(err, shipping.ErrInvalidTrackingNo):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, err.Error())

	default:
		logger.GetGinLogger(c).Error("unhandled error", zap.Error(err))
		h.InternalError(c, "An unexpected error occurred")
	}
}
