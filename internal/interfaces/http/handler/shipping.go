package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/graveringshuset/backend/internal/application/checkout"
	"github.com/graveringshuset/backend/internal/domain/shipping"
)

// ShippingHandler serves the shipping carrier endpoints
type ShippingHandler struct {
	BaseHandler
	service *checkout.Service
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(service *checkout.Service) *ShippingHandler {
	return &ShippingHandler{service: service}
}

// RegisterRoutes registers shipping routes
func (h *ShippingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/shipping")
	group.POST("/rates", h.QuoteRates)
	group.POST("/:carrier/labels", h.CreateLabel)
	group.GET("/:carrier/track/:trackingNumber", h.Track)
	group.GET("/:carrier/pickup-points", h.PickupPoints)
	group.GET("/:carrier/time-slots", h.TimeSlots)
}

// QuoteRates quotes every configured carrier and merges their offers. A
// carrier that fails or is unconfigured contributes nothing; the response
// is always a 200 with the rates gathered.
func (h *ShippingHandler) QuoteRates(c *gin.Context) {
	var req RateQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	rates := h.service.QuoteShippingRates(c.Request.Context(), req.ToDomain())
	h.Success(c, ToRateResponses(rates))
}

// CreateLabel books a shipment with the carrier in the path
func (h *ShippingHandler) CreateLabel(c *gin.Context) {
	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindingError(c, err)
		return
	}

	label, err := h.service.CreateShippingLabel(c.Request.Context(),
		shipping.CarrierType(c.Param("carrier")), req.ToDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ToLabelResponse(label))
}

// Track returns the tracking state of a shipment
func (h *ShippingHandler) Track(c *gin.Context) {
	info, err := h.service.TrackShipment(c.Request.Context(),
		shipping.CarrierType(c.Param("carrier")), c.Param("trackingNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToTrackingResponse(info))
}

// PickupPoints lists parcel collection points near a postal code
func (h *ShippingHandler) PickupPoints(c *gin.Context) {
	postalCode := c.Query("postal_code")
	if !isValidPostalCode(postalCode) {
		h.BadRequest(c, "postal_code must be a four-digit Norwegian postal code")
		return
	}
	countryCode := c.DefaultQuery("country", "NO")

	points, err := h.service.PickupPoints(c.Request.Context(),
		shipping.CarrierType(c.Param("carrier")), postalCode, countryCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToPickupPointResponses(points))
}

// TimeSlots lists the bookable delivery windows for a postal code and
// date. The date defaults to today.
func (h *ShippingHandler) TimeSlots(c *gin.Context) {
	postalCode := c.Query("postal_code")
	if !isValidPostalCode(postalCode) {
		h.BadRequest(c, "postal_code must be a four-digit Norwegian postal code")
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "date must be formatted as YYYY-MM-DD")
			return
		}
		date = parsed
	}

	slots, err := h.service.DeliveryTimeSlots(c.Request.Context(),
		shipping.CarrierType(c.Param("carrier")), postalCode, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToTimeSlotResponses(slots))
}

func isValidPostalCode(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
