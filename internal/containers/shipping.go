package containers

import (
	"context"
	"time"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// ShippingZones owns the zone/rate configuration (stable, configuration-like
// order: first zone covering a state wins).
type ShippingZones struct {
	*collection[domain.ShippingZone]
}

// NewShippingZones rehydrates the zone list.
func NewShippingZones(ctx context.Context, s store.Store, defaults []domain.ShippingZone) *ShippingZones {
	return &ShippingZones{newCollection(ctx, s, keyShippingZones, defaults, func(z domain.ShippingZone) string { return z.ID }, false)}
}

// Add assigns ids to the zone and its methods, then appends and persists.
func (z *ShippingZones) Add(ctx context.Context, in domain.ShippingZone) domain.ShippingZone {
	now := time.Now().UTC()
	in.ID = domain.NewID("zone", now)
	in.CreatedAt = now
	for i := range in.Methods {
		if in.Methods[i].ID == "" {
			in.Methods[i].ID = domain.NewSuffixedID("rate", now)
		}
	}
	z.add(ctx, in)
	return in
}

// Update merges a partial zone update; new methods get ids assigned.
func (z *ShippingZones) Update(ctx context.Context, id string, mutate func(*domain.ShippingZone)) (domain.ShippingZone, error) {
	now := time.Now().UTC()
	return z.update(ctx, id, func(zone *domain.ShippingZone) {
		mutate(zone)
		for i := range zone.Methods {
			if zone.Methods[i].ID == "" {
				zone.Methods[i].ID = domain.NewSuffixedID("rate", now)
			}
		}
	})
}

// Remove deletes the zone outright.
func (z *ShippingZones) Remove(ctx context.Context, id string) error { return z.remove(ctx, id) }

// ZoneForState returns the first zone covering the state, in collection
// order. Overlapping zone membership is not defended against.
func (z *ShippingZones) ZoneForState(state string) (domain.ShippingZone, error) {
	if zone, ok := z.find(func(x domain.ShippingZone) bool { return x.Covers(state) }); ok {
		return zone, nil
	}
	return domain.ShippingZone{}, ErrNotFound
}

// RatesForState returns the enabled methods of the state's zone. An uncovered
// state quotes no methods.
func (z *ShippingZones) RatesForState(state string) []domain.ShippingMethod {
	zone, err := z.ZoneForState(state)
	if err != nil {
		return nil
	}
	return zone.EnabledMethods()
}

// SetMethodEnabled toggles one rate method inside a zone.
func (z *ShippingZones) SetMethodEnabled(ctx context.Context, zoneID, methodID string, enabled bool) error {
	_, err := z.updateErr(ctx, zoneID, func(zone *domain.ShippingZone) error {
		for i := range zone.Methods {
			if zone.Methods[i].ID == methodID {
				zone.Methods[i].Enabled = enabled
				return nil
			}
		}
		return ErrNotFound
	})
	return err
}
