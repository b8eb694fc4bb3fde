package domain

// RegionTaxRate overrides the global default rate for one state/region.
type RegionTaxRate struct {
	State   string  `json:"state"`
	Rate    float64 `json:"rate"`
	Enabled bool    `json:"enabled"`
}

// TaxSettings is the single global tax configuration document. It is the
// authoritative source of the cart engine's flat rate (DefaultRate); the
// per-region overrides and exemptions apply when a region is known.
type TaxSettings struct {
	Enabled          bool            `json:"enabled"`
	DefaultRate      float64         `json:"defaultRate"`
	Label            string          `json:"label"`
	PricesIncludeTax bool            `json:"pricesIncludeTax"`
	RegionRates      []RegionTaxRate `json:"regionRates,omitempty"`
	ExemptProductIDs []string        `json:"exemptProductIds,omitempty"`
	ExemptCategories []string        `json:"exemptCategories,omitempty"`
}

// RateFor resolves the effective tax rate for a product sold into a region.
// Resolution order: globally disabled -> 0; product or category exempt -> 0;
// enabled region override -> its rate; otherwise the global default.
func (t TaxSettings) RateFor(productID, category, state string) float64 {
	if !t.Enabled {
		return 0
	}
	for _, id := range t.ExemptProductIDs {
		if id == productID {
			return 0
		}
	}
	for _, c := range t.ExemptCategories {
		if c == category {
			return 0
		}
	}
	for _, r := range t.RegionRates {
		if r.Enabled && r.State == state {
			return r.Rate
		}
	}
	return t.DefaultRate
}

// EffectiveDefaultRate is the flat rate handed to the cart engine: the global
// default when tax is enabled, zero otherwise.
func (t TaxSettings) EffectiveDefaultRate() float64 {
	if !t.Enabled {
		return 0
	}
	return t.DefaultRate
}
