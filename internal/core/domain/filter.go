package domain

// AllCategories matches every product category.
const AllCategories = "All Categories"

// Filter narrows the marketplace listing. Zero values match everything.
type Filter struct {
	Search         string   `json:"search,omitempty"`
	Category       string   `json:"category,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	MinPrice       *float64 `json:"min_price,omitempty"` // USD
	MaxPrice       *float64 `json:"max_price,omitempty"` // USD
}
