package pricing

import "github.com/rl1809/ecoscene/internal/core/domain"

// ImpactSummary aggregates the sustainability figures shown next to a quote.
type ImpactSummary struct {
	Certifications int     `json:"certifications"`
	CarbonOffsetKg float64 `json:"carbon_offset_kg"`
}

// Impact counts certifications once per line item and weights the carbon
// footprint by quantity.
func Impact(cart domain.Cart) ImpactSummary {
	var s ImpactSummary
	for _, item := range cart {
		if item.Product == nil {
			continue
		}
		s.Certifications += len(item.Product.Certifications)
		s.CarbonOffsetKg += item.Product.Impact.CarbonFootprint * float64(item.Quantity)
	}
	return s
}
