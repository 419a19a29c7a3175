package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/graveringshuset/backend/internal/domain/shipping"
)

var (
	// ErrPickupPointsUnsupported is returned when pickup points are
	// requested from a carrier without collection locations.
	ErrPickupPointsUnsupported = errors.New("checkout: carrier does not offer pickup points")

	// ErrTimeSlotsUnsupported is returned when delivery windows are
	// requested from a carrier without scheduled home delivery.
	ErrTimeSlotsUnsupported = errors.New("checkout: carrier does not offer time slots")
)

// QuoteShippingRates queries every configured carrier concurrently and
// merges their quotes. A failing or misconfigured carrier contributes
// nothing; the quote never fails as a whole.
func (s *Service) QuoteShippingRates(ctx context.Context, query *shipping.RateQuery) []shipping.Rate {
	q := *query
	if q.WeightGrams == 0 {
		q.WeightGrams = s.shippingCfg.DefaultPackaging.WeightGrams
	}

	carriers := s.carriers.Enabled()

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		rates []shipping.Rate
	)

	for _, c := range carriers {
		wg.Add(1)
		go func(c shipping.Carrier) {
			defer wg.Done()

			quoted, err := c.GetRates(ctx, &q)
			if err != nil {
				s.log(ctx).Warn("carrier rate lookup failed",
					zap.String("carrier", c.Type().String()),
					zap.Error(err),
				)
				return
			}

			mu.Lock()
			rates = append(rates, quoted...)
			mu.Unlock()
		}(c)
	}

	wg.Wait()

	if rates == nil {
		rates = []shipping.Rate{}
	}
	return rates
}

// CreateShippingLabel books a shipment with the given carrier. A zero
// weight falls back to the default packaging weight.
func (s *Service) CreateShippingLabel(ctx context.Context, t shipping.CarrierType, req *shipping.CreateLabelRequest) (*shipping.Label, error) {
	carrier, err := s.carriers.Carrier(t)
	if err != nil {
		return nil, err
	}

	if req.WeightGrams == 0 {
		req.WeightGrams = s.shippingCfg.DefaultPackaging.WeightGrams
	}

	label, err := carrier.CreateLabel(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("shipping label created",
		zap.String("carrier", t.String()),
		zap.String("order_id", req.OrderID),
		zap.String("tracking_number", label.TrackingNumber),
	)

	return label, nil
}

// TrackShipment returns the tracking state of a shipment
func (s *Service) TrackShipment(ctx context.Context, t shipping.CarrierType, trackingNumber string) (*shipping.TrackingInfo, error) {
	carrier, err := s.carriers.Carrier(t)
	if err != nil {
		return nil, err
	}
	return carrier.Track(ctx, trackingNumber)
}

// PickupPoints lists parcel collection points near a postal code for
// carriers that offer them.
func (s *Service) PickupPoints(ctx context.Context, t shipping.CarrierType, postalCode, countryCode string) ([]shipping.PickupPoint, error) {
	carrier, err := s.carriers.Carrier(t)
	if err != nil {
		return nil, err
	}

	provider, ok := carrier.(shipping.PickupPointProvider)
	if !ok {
		return nil, ErrPickupPointsUnsupported
	}
	return provider.PickupPoints(ctx, postalCode, countryCode)
}

// DeliveryTimeSlots lists the bookable delivery windows for a postal code
// and date, for carriers with scheduled home delivery. A postal code outside
// the carrier's coverage yields an empty list, not an error.
func (s *Service) DeliveryTimeSlots(ctx context.Context, t shipping.CarrierType, postalCode string, date time.Time) ([]shipping.TimeSlot, error) {
	carrier, err := s.carriers.Carrier(t)
	if err != nil {
		return nil, err
	}

	provider, ok := carrier.(shipping.TimeSlotProvider)
	if !ok {
		return nil, ErrTimeSlotsUnsupported
	}

	serviceable, err := provider.Serviceable(ctx, postalCode)
	if err != nil {
		return nil, err
	}
	if !serviceable {
		s.log(ctx).Info("postal code outside carrier coverage",
			zap.String("carrier", t.String()),
			zap.String("postal_code", postalCode),
		)
		return []shipping.TimeSlot{}, nil
	}

	return provider.TimeSlots(ctx, postalCode, date)
}
