package domain

// Prices holds one independently authored price per currency.
type Prices map[Currency]float64

// Impact describes the environmental footprint of a product.
type Impact struct {
	BiodiversityScore float64 `json:"biodiversity_score"`
	CarbonFootprint   float64 `json:"carbon_footprint"` // kg CO2; negative = net sequestration
	CommunityBenefit  string  `json:"community_benefit"`
}

type Product struct {
	ID             string   `json:"id"`
	Seller         string   `json:"seller"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          Prices   `json:"price"`
	Certifications []string `json:"certifications"`
	Impact         Impact   `json:"impact"`
	Category       string   `json:"category"`
	InStock        bool     `json:"in_stock"`
	Rating         float64  `json:"rating"`
	Reviews        int      `json:"reviews"`
}

// PriceIn returns the product's price in c and whether one is authored.
func (p *Product) PriceIn(c Currency) (float64, bool) {
	v, ok := p.Price[c]
	return v, ok
}

func (p *Product) HasCertification(label string) bool {
	for _, c := range p.Certifications {
		if c == label {
			return true
		}
	}
	return false
}
