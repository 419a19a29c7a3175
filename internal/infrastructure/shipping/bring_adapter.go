package shipping

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/graveringshuset/backend/internal/domain/shipping"
)

// BringAdapter implements the shipping.Carrier interface for Bring. All
// calls are local stand-ins for the Mybring API with an identical contract.
type BringAdapter struct {
	config *shipping.CarrierConfig
}

// NewBringAdapter creates a new Bring adapter
func NewBringAdapter(config *shipping.CarrierConfig) *BringAdapter {
	return &BringAdapter{config: config}
}

// Type returns the carrier tag
func (a *BringAdapter) Type() shipping.CarrierType {
	return shipping.CarrierBring
}

func (a *BringAdapter) configured() bool {
	return a.config != nil && a.config.APIKey != ""
}

// GetRates quotes Bring services. Rate lookup is advisory: a missing API
// key yields an empty slice, not an error.
func (a *BringAdapter) GetRates(ctx context.Context, query *shipping.RateQuery) ([]shipping.Rate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !a.configured() {
		return []shipping.Rate{}, nil
	}

	return []shipping.Rate{
		{
			Carrier:           shipping.CarrierBring,
			Service:           "Pakke i postkassen",
			Price:             decimal.NewFromInt(89),
			EstimatedDelivery: "2-4 virkedager",
		},
		{
			Carrier:           shipping.CarrierBring,
			Service:           "Pakke til hentested",
			Price:             decimal.NewFromInt(99),
			EstimatedDelivery: "1-3 virkedager",
		},
		{
			Carrier:           shipping.CarrierBring,
			Service:           "Hjemlevering",
			Price:             decimal.NewFromInt(149),
			EstimatedDelivery: "1-2 virkedager",
		},
	}, nil
}

// CreateLabel books a Bring shipment
func (a *BringAdapter) CreateLabel(ctx context.Context, req *shipping.CreateLabelRequest) (*shipping.Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !a.configured() {
		return nil, fmt.Errorf("%w: bring", shipping.ErrCarrierNotConfigured)
	}

	trackingNumber := fmt.Sprintf("BRING%d", time.Now().UnixMilli())

	return &shipping.Label{
		ID:             fmt.Sprintf("label_%s", req.OrderID),
		TrackingNumber: trackingNumber,
		Carrier:        shipping.CarrierBring,
		LabelURL:       fmt.Sprintf("https://www.mybring.com/tracking/%s", trackingNumber),
		CreatedAt:      time.Now(),
	}, nil
}

// Track returns the tracking state of a Bring shipment, events newest first
func (a *BringAdapter) Track(ctx context.Context, trackingNumber string) (*shipping.TrackingInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if trackingNumber == "" {
		return nil, shipping.ErrInvalidTrackingNo
	}
	if !a.configured() {
		return nil, fmt.Errorf("%w: bring", shipping.ErrCarrierNotConfigured)
	}

	now := time.Now()
	estimated := now.Add(48 * time.Hour)

	return &shipping.TrackingInfo{
		TrackingNumber: trackingNumber,
		Carrier:        shipping.CarrierBring,
		Status:         shipping.ShipmentStatusInTransit,
		Events: []shipping.TrackingEvent{
			{
				Timestamp:   now,
				Status:      "In transit",
				Location:    "Oslo",
				Description: "Pakken er på vei til destinasjonen",
			},
			{
				Timestamp:   now.Add(-24 * time.Hour),
				Status:      "Picked up",
				Location:    "Bergen",
				Description: "Pakken er hentet",
			},
		},
		EstimatedDelivery: &estimated,
	}, nil
}

// PickupPoints lists Bring collection points near a postal code. Advisory
// like rate lookup: a missing API key yields an empty slice.
func (a *BringAdapter) PickupPoints(ctx context.Context, postalCode, countryCode string) ([]shipping.PickupPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !a.configured() {
		return []shipping.PickupPoint{}, nil
	}

	return []shipping.PickupPoint{
		{
			ID:           "bring_pickup_1",
			Name:         "Narvesen Sentrum",
			Address:      "Karl Johans gate 1",
			PostalCode:   "0154",
			City:         "Oslo",
			OpeningHours: "Man-Fre: 07:00-22:00, Lør-Søn: 09:00-20:00",
			Carrier:      shipping.CarrierBring,
			DistanceKm:   0.5,
		},
		{
			ID:           "bring_pickup_2",
			Name:         "Extra Majorstuen",
			Address:      "Bogstadveien 10",
			PostalCode:   "0355",
			City:         "Oslo",
			OpeningHours: "Man-Søn: 08:00-23:00",
			Carrier:      shipping.CarrierBring,
			DistanceKm:   1.2,
		},
	}, nil
}

// Ensure BringAdapter implements the carrier interfaces
var (
	_ shipping.Carrier             = (*BringAdapter)(nil)
	_ shipping.PickupPointProvider = (*BringAdapter)(nil)
)
