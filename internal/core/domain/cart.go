package domain

// LineItem pairs a shared product reference with a quantity. The product is
// never copied or mutated by the cart.
type LineItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// Cart is an ordered sequence of line items, unique by product id.
type Cart []LineItem

// Lines returns the persisted form of the cart.
func (c Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c))
	for _, item := range c {
		lines = append(lines, CartLine{ProductID: item.Product.ID, Quantity: item.Quantity})
	}
	return lines
}

// Find returns the index of the line item for productID, or -1.
func (c Cart) Find(productID string) int {
	for i, item := range c {
		if item.Product != nil && item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// CartLine is the storage representation of a line item.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PricingResult is a cart's monetary breakdown in a single currency, kept at
// full precision. Rounding is a presentation concern.
type PricingResult struct {
	Subtotal    float64 `json:"subtotal"`
	Shipping    float64 `json:"shipping"`
	EcoDiscount float64 `json:"eco_discount"`
	Total       float64 `json:"total"`
}
