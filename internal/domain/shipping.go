package domain

import (
	"strings"
	"time"
)

// ShippingMethod is one rate inside a zone. Disabled methods stay in the
// zone's ordered list but are excluded from storefront quotes.
type ShippingMethod struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Rate          int64  `json:"rate"`
	EstimatedDays string `json:"estimatedDays,omitempty"`
	Enabled       bool   `json:"enabled"`
}

// ShippingZone maps a set of states (regions) to an ordered list of rate
// methods. A state should belong to exactly one zone; when zones overlap, the
// first zone in collection order wins, which mirrors the stored data this
// schema was lifted from.
type ShippingZone struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	States    []string         `json:"states"`
	Methods   []ShippingMethod `json:"methods"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Covers reports whether the zone includes the given state code
// (case-insensitive).
func (z ShippingZone) Covers(state string) bool {
	for _, s := range z.States {
		if strings.EqualFold(s, state) {
			return true
		}
	}
	return false
}

// EnabledMethods returns the zone's enabled methods in stored order.
func (z ShippingZone) EnabledMethods() []ShippingMethod {
	out := make([]ShippingMethod, 0, len(z.Methods))
	for _, m := range z.Methods {
		if m.Enabled {
			out = append(out, m)
		}
	}
	return out
}
