package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graveringshuset/backend/internal/domain/shipping"
)

// fakeCarrier implements the base carrier contract with canned responses
type fakeCarrier struct {
	carrierType shipping.CarrierType
	rates       []shipping.Rate
	ratesErr    error
	label       *shipping.Label
	labelErr    error
	tracking    *shipping.TrackingInfo

	lastRateQuery *shipping.RateQuery
	lastLabelReq  *shipping.CreateLabelRequest
}

func (f *fakeCarrier) Type() shipping.CarrierType { return f.carrierType }

func (f *fakeCarrier) GetRates(ctx context.Context, query *shipping.RateQuery) ([]shipping.Rate, error) {
	f.lastRateQuery = query
	return f.rates, f.ratesErr
}

func (f *fakeCarrier) CreateLabel(ctx context.Context, req *shipping.CreateLabelRequest) (*shipping.Label, error) {
	f.lastLabelReq = req
	return f.label, f.labelErr
}

func (f *fakeCarrier) Track(ctx context.Context, trackingNumber string) (*shipping.TrackingInfo, error) {
	return f.tracking, nil
}

// fakePickupCarrier additionally serves pickup points
type fakePickupCarrier struct {
	fakeCarrier
	points []shipping.PickupPoint
}

func (f *fakePickupCarrier) PickupPoints(ctx context.Context, postalCode, countryCode string) ([]shipping.PickupPoint, error) {
	return f.points, nil
}

// fakeSlotCarrier additionally serves delivery windows
type fakeSlotCarrier struct {
	fakeCarrier
	slots []shipping.TimeSlot
}

func (f *fakeSlotCarrier) TimeSlots(ctx context.Context, postalCode string, date time.Time) ([]shipping.TimeSlot, error) {
	return f.slots, nil
}

func (f *fakeSlotCarrier) Serviceable(ctx context.Context, postalCode string) (bool, error) {
	return len(postalCode) == 4, nil
}

// fakeCarrierRegistry resolves a fixed carrier set
type fakeCarrierRegistry struct {
	carriers map[shipping.CarrierType]shipping.Carrier
	order    []shipping.CarrierType
}

func newFakeCarrierRegistry(carriers ...shipping.Carrier) *fakeCarrierRegistry {
	r := &fakeCarrierRegistry{carriers: make(map[shipping.CarrierType]shipping.Carrier)}
	for _, c := range carriers {
		r.carriers[c.Type()] = c
		r.order = append(r.order, c.Type())
	}
	return r
}

func (r *fakeCarrierRegistry) Carrier(t shipping.CarrierType) (shipping.Carrier, error) {
	c, ok := r.carriers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shipping.ErrCarrierNotConfigured, t)
	}
	return c, nil
}

func (r *fakeCarrierRegistry) Enabled() []shipping.Carrier {
	out := make([]shipping.Carrier, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.carriers[t])
	}
	return out
}

func (r *fakeCarrierRegistry) IsEnabled(t shipping.CarrierType) bool {
	_, ok := r.carriers[t]
	return ok
}

func shippingService(registry shipping.Registry) *Service {
	return NewService(fullPaymentConfig(), fullShippingConfig(), nil, registry, nil, defaultIdemCfg(), nil)
}

func TestService_QuoteShippingRates(t *testing.T) {
	ctx := context.Background()

	t.Run("merges quotes from every carrier", func(t *testing.T) {
		bring := &fakeCarrier{
			carrierType: shipping.CarrierBring,
			rates: []shipping.Rate{
				{Carrier: shipping.CarrierBring, Service: "Pakke i postkassen", Price: decimal.NewFromInt(89)},
				{Carrier: shipping.CarrierBring, Service: "Hjemlevering", Price: decimal.NewFromInt(149)},
			},
		}
		posten := &fakeCarrier{
			carrierType: shipping.CarrierPosten,
			rates: []shipping.Rate{
				{Carrier: shipping.CarrierPosten, Service: "A-prioritert", Price: decimal.NewFromInt(79)},
			},
		}
		svc := shippingService(newFakeCarrierRegistry(bring, posten))

		rates := svc.QuoteShippingRates(ctx, &shipping.RateQuery{
			FromPostalCode: "0150",
			ToPostalCode:   "5003",
			WeightGrams:    750,
		})

		require.Len(t, rates, 3)
		seen := make(map[shipping.CarrierType]int)
		for _, r := range rates {
			seen[r.Carrier]++
		}
		assert.Equal(t, 2, seen[shipping.CarrierBring])
		assert.Equal(t, 1, seen[shipping.CarrierPosten])
	})

	t.Run("failing carrier is skipped", func(t *testing.T) {
		bring := &fakeCarrier{
			carrierType: shipping.CarrierBring,
			rates: []shipping.Rate{
				{Carrier: shipping.CarrierBring, Service: "Pakke til hentested", Price: decimal.NewFromInt(99)},
			},
		}
		helthjem := &fakeCarrier{
			carrierType: shipping.CarrierHelthjem,
			ratesErr:    errors.New("upstream timeout"),
		}
		svc := shippingService(newFakeCarrierRegistry(bring, helthjem))

		rates := svc.QuoteShippingRates(ctx, &shipping.RateQuery{ToPostalCode: "0150", WeightGrams: 500})
		require.Len(t, rates, 1)
		assert.Equal(t, shipping.CarrierBring, rates[0].Carrier)
	})

	t.Run("no carriers yields an empty slice, not nil", func(t *testing.T) {
		svc := shippingService(newFakeCarrierRegistry())

		rates := svc.QuoteShippingRates(ctx, &shipping.RateQuery{ToPostalCode: "0150"})
		assert.NotNil(t, rates)
		assert.Empty(t, rates)
	})

	t.Run("zero weight falls back to default packaging", func(t *testing.T) {
		bring := &fakeCarrier{carrierType: shipping.CarrierBring}
		svc := shippingService(newFakeCarrierRegistry(bring))

		svc.QuoteShippingRates(ctx, &shipping.RateQuery{ToPostalCode: "0150"})

		require.NotNil(t, bring.lastRateQuery)
		assert.Equal(t, 500, bring.lastRateQuery.WeightGrams)
	})

	t.Run("caller's query is not mutated", func(t *testing.T) {
		bring := &fakeCarrier{carrierType: shipping.CarrierBring}
		svc := shippingService(newFakeCarrierRegistry(bring))

		query := &shipping.RateQuery{ToPostalCode: "0150"}
		svc.QuoteShippingRates(ctx, query)
		assert.Equal(t, 0, query.WeightGrams)
	})
}

func TestService_CreateShippingLabel(t *testing.T) {
	ctx := context.Background()

	t.Run("books with the carrier", func(t *testing.T) {
		posten := &fakeCarrier{
			carrierType: shipping.CarrierPosten,
			label: &shipping.Label{
				ID:             "label_order-1",
				TrackingNumber: "POST123",
				Carrier:        shipping.CarrierPosten,
			},
		}
		svc := shippingService(newFakeCarrierRegistry(posten))

		label, err := svc.CreateShippingLabel(ctx, shipping.CarrierPosten, &shipping.CreateLabelRequest{
			OrderID:     "order-1",
			WeightGrams: 900,
		})
		require.NoError(t, err)
		assert.Equal(t, "POST123", label.TrackingNumber)
		assert.Equal(t, 900, posten.lastLabelReq.WeightGrams)
	})

	t.Run("zero weight falls back to default packaging", func(t *testing.T) {
		posten := &fakeCarrier{
			carrierType: shipping.CarrierPosten,
			label:       &shipping.Label{ID: "label_order-2", TrackingNumber: "POST124"},
		}
		svc := shippingService(newFakeCarrierRegistry(posten))

		_, err := svc.CreateShippingLabel(ctx, shipping.CarrierPosten, &shipping.CreateLabelRequest{
			OrderID: "order-2",
		})
		require.NoError(t, err)
		assert.Equal(t, 500, posten.lastLabelReq.WeightGrams)
	})

	t.Run("unconfigured carrier is a hard failure", func(t *testing.T) {
		svc := shippingService(newFakeCarrierRegistry())

		label, err := svc.CreateShippingLabel(ctx, shipping.CarrierBring, &shipping.CreateLabelRequest{
			OrderID: "order-1",
		})
		assert.ErrorIs(t, err, shipping.ErrCarrierNotConfigured)
		assert.Nil(t, label)
	})

	t.Run("carrier failure passes through", func(t *testing.T) {
		bring := &fakeCarrier{
			carrierType: shipping.CarrierBring,
			labelErr:    fmt.Errorf("%w: order ID missing", shipping.ErrInvalidLabelRequest),
		}
		svc := shippingService(newFakeCarrierRegistry(bring))

		_, err := svc.CreateShippingLabel(ctx, shipping.CarrierBring, &shipping.CreateLabelRequest{})
		assert.ErrorIs(t, err, shipping.ErrInvalidLabelRequest)
	})
}

func TestService_TrackShipment(t *testing.T) {
	ctx := context.Background()
	bring := &fakeCarrier{
		carrierType: shipping.CarrierBring,
		tracking: &shipping.TrackingInfo{
			TrackingNumber: "BRING123",
			Carrier:        shipping.CarrierBring,
			Status:         shipping.ShipmentStatusInTransit,
		},
	}
	svc := shippingService(newFakeCarrierRegistry(bring))

	info, err := svc.TrackShipment(ctx, shipping.CarrierBring, "BRING123")
	require.NoError(t, err)
	assert.Equal(t, shipping.ShipmentStatusInTransit, info.Status)

	_, err = svc.TrackShipment(ctx, shipping.CarrierHelthjem, "HELTH123")
	assert.ErrorIs(t, err, shipping.ErrCarrierNotConfigured)
}

func TestService_PickupPoints(t *testing.T) {
	ctx := context.Background()

	t.Run("carrier with pickup points", func(t *testing.T) {
		bring := &fakePickupCarrier{
			fakeCarrier: fakeCarrier{carrierType: shipping.CarrierBring},
			points: []shipping.PickupPoint{
				{ID: "121212", Name: "Narvesen Sentrum", Carrier: shipping.CarrierBring},
			},
		}
		svc := shippingService(newFakeCarrierRegistry(bring))

		points, err := svc.PickupPoints(ctx, shipping.CarrierBring, "0150", "NO")
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, "Narvesen Sentrum", points[0].Name)
	})

	t.Run("carrier without pickup points", func(t *testing.T) {
		helthjem := &fakeSlotCarrier{
			fakeCarrier: fakeCarrier{carrierType: shipping.CarrierHelthjem},
		}
		svc := shippingService(newFakeCarrierRegistry(helthjem))

		_, err := svc.PickupPoints(ctx, shipping.CarrierHelthjem, "0150", "NO")
		assert.ErrorIs(t, err, ErrPickupPointsUnsupported)
	})
}

func TestService_DeliveryTimeSlots(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	t.Run("carrier with scheduled delivery", func(t *testing.T) {
		helthjem := &fakeSlotCarrier{
			fakeCarrier: fakeCarrier{carrierType: shipping.CarrierHelthjem},
			slots: []shipping.TimeSlot{
				{ID: "2026-03-17_evening", From: "17:00", To: "21:00", Available: true},
			},
		}
		svc := shippingService(newFakeCarrierRegistry(helthjem))

		slots, err := svc.DeliveryTimeSlots(ctx, shipping.CarrierHelthjem, "0150", date)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, "2026-03-17_evening", slots[0].ID)
	})

	t.Run("unserviceable postal code yields no slots", func(t *testing.T) {
		helthjem := &fakeSlotCarrier{
			fakeCarrier: fakeCarrier{carrierType: shipping.CarrierHelthjem},
			slots: []shipping.TimeSlot{
				{ID: "2026-03-17_morning", From: "09:00", To: "12:00", Available: true},
			},
		}
		svc := shippingService(newFakeCarrierRegistry(helthjem))

		slots, err := svc.DeliveryTimeSlots(ctx, shipping.CarrierHelthjem, "99999", date)
		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("carrier without scheduled delivery", func(t *testing.T) {
		bring := &fakeCarrier{carrierType: shipping.CarrierBring}
		svc := shippingService(newFakeCarrierRegistry(bring))

		_, err := svc.DeliveryTimeSlots(ctx, shipping.CarrierBring, "0150", date)
		assert.ErrorIs(t, err, ErrTimeSlotsUnsupported)
	})
}
