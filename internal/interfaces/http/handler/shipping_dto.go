package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/graveringshuset/backend/internal/domain/shipping"
)

// DimensionsRequest carries package dimensions in centimetres
type DimensionsRequest struct {
	WidthCm  int `json:"width_cm" binding:"gt=0"`
	HeightCm int `json:"height_cm" binding:"gt=0"`
	LengthCm int `json:"length_cm" binding:"gt=0"`
}

// RateQueryRequest asks for shipping rate quotes
type RateQueryRequest struct {
	FromPostalCode string             `json:"from_postal_code" binding:"omitempty,postal_code_no"`
	ToPostalCode   string             `json:"to_postal_code" binding:"required,postal_code_no"`
	WeightGrams    int                `json:"weight_grams" binding:"gte=0"`
	Dimensions     *DimensionsRequest `json:"dimensions"`
}

// ToDomain converts the request to its domain counterpart
func (r *RateQueryRequest) ToDomain() *shipping.RateQuery {
	q := &shipping.RateQuery{
		FromPostalCode: r.FromPostalCode,
		ToPostalCode:   r.ToPostalCode,
		WeightGrams:    r.WeightGrams,
	}
	if r.Dimensions != nil {
		q.Dimensions = &shipping.Dimensions{
			WidthCm:  r.Dimensions.WidthCm,
			HeightCm: r.Dimensions.HeightCm,
			LengthCm: r.Dimensions.LengthCm,
		}
	}
	return q
}

// RateResponse is a single quoted carrier service
type RateResponse struct {
	Carrier           string          `json:"carrier"`
	Service           string          `json:"service"`
	Price             decimal.Decimal `json:"price"`
	EstimatedDelivery string          `json:"estimated_delivery"`
}

// ToRateResponses converts domain rates to their DTOs
func ToRateResponses(rates []shipping.Rate) []RateResponse {
	out := make([]RateResponse, len(rates))
	for i, r := range rates {
		out[i] = RateResponse{
			Carrier:           r.Carrier.String(),
			Service:           r.Service,
			Price:             r.Price,
			EstimatedDelivery: r.EstimatedDelivery,
		}
	}
	return out
}

// AddressRequest is a delivery destination
type AddressRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Company    string `json:"company"`
	Address1   string `json:"address1" binding:"required"`
	Address2   string `json:"address2"`
	PostalCode string `json:"postal_code" binding:"required,postal_code_no"`
	City       string `json:"city" binding:"required"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
}

// ToDomain converts the address to its domain counterpart
func (r *AddressRequest) ToDomain() shipping.Address {
	return shipping.Address{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Company:    r.Company,
		Address1:   r.Address1,
		Address2:   r.Address2,
		PostalCode: r.PostalCode,
		City:       r.City,
		Country:    r.Country,
		Phone:      r.Phone,
		Email:      r.Email,
	}
}

// CreateLabelRequest books a shipment with a carrier
type CreateLabelRequest struct {
	OrderID     string         `json:"order_id" binding:"required"`
	Service     string         `json:"service"`
	To          AddressRequest `json:"to" binding:"required"`
	WeightGrams int            `json:"weight_grams" binding:"gte=0"`
	TimeSlot    string         `json:"time_slot"`
}

// ToDomain converts the request to its domain counterpart
func (r *CreateLabelRequest) ToDomain() *shipping.CreateLabelRequest {
	return &shipping.CreateLabelRequest{
		OrderID:     r.OrderID,
		Service:     r.Service,
		To:          r.To.ToDomain(),
		WeightGrams: r.WeightGrams,
		TimeSlot:    r.TimeSlot,
	}
}

// LabelResponse is a carrier-issued shipping label
type LabelResponse struct {
	ID             string    `json:"id"`
	TrackingNumber string    `json:"tracking_number"`
	Carrier        string    `json:"carrier"`
	LabelURL       string    `json:"label_url"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToLabelResponse converts a domain label to its DTO
func ToLabelResponse(l *shipping.Label) LabelResponse {
	return LabelResponse{
		ID:             l.ID,
		TrackingNumber: l.TrackingNumber,
		Carrier:        l.Carrier.String(),
		LabelURL:       l.LabelURL,
		CreatedAt:      l.CreatedAt,
	}
}

// TrackingEventResponse is a single scan entry in a shipment's history
type TrackingEventResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}

// TrackingResponse is the tracked state of a shipment
type TrackingResponse struct {
	TrackingNumber    string                  `json:"tracking_number"`
	Carrier           string                  `json:"carrier"`
	Status            string                  `json:"status"`
	Events            []TrackingEventResponse `json:"events"`
	EstimatedDelivery *time.Time              `json:"estimated_delivery,omitempty"`
}

// ToTrackingResponse converts domain tracking info to its DTO
func ToTrackingResponse(info *shipping.TrackingInfo) TrackingResponse {
	events := make([]TrackingEventResponse, len(info.Events))
	for i, e := range info.Events {
		events[i] = TrackingEventResponse{
			Timestamp:   e.Timestamp,
			Status:      e.Status,
			Location:    e.Location,
			Description: e.Description,
		}
	}
	return TrackingResponse{
		TrackingNumber:    info.TrackingNumber,
		Carrier:           info.Carrier.String(),
		Status:            info.Status.String(),
		Events:            events,
		EstimatedDelivery: info.EstimatedDelivery,
	}
}

// PickupPointResponse is a parcel collection location
type PickupPointResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	PostalCode   string  `json:"postal_code"`
	City         string  `json:"city"`
	OpeningHours string  `json:"opening_hours"`
	Carrier      string  `json:"carrier"`
	DistanceKm   float64 `json:"distance_km"`
}

// ToPickupPointResponses converts domain pickup points to their DTOs
func ToPickupPointResponses(points []shipping.PickupPoint) []PickupPointResponse {
	out := make([]PickupPointResponse, len(points))
	for i, p := range points {
		out[i] = PickupPointResponse{
			ID:           p.ID,
			Name:         p.Name,
			Address:      p.Address,
			PostalCode:   p.PostalCode,
			City:         p.City,
			OpeningHours: p.OpeningHours,
			Carrier:      p.Carrier.String(),
			DistanceKm:   p.DistanceKm,
		}
	}
	return out
}

// TimeSlotResponse is a bookable home delivery window
type TimeSlotResponse struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Available bool   `json:"available"`
}

// ToTimeSlotResponses converts domain time slots to their DTOs
func ToTimeSlotResponses(slots []shipping.TimeSlot) []TimeSlotResponse {
	out := make([]TimeSlotResponse, len(slots))
	for i, s := range slots {
		out[i] = TimeSlotResponse{
			ID:        s.ID,
			From:      s.From,
			To:        s.To,
			Available: s.Available,
		}
	}
	return out
}
