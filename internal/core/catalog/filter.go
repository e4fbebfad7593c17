// Package catalog narrows and orders marketplace listings.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortImpact    SortKey = "impact"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortFeatured, nil
	case SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortImpact:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// Apply returns the products matching f ordered by key. The input slice is
// left untouched.
func Apply(products []domain.Product, f domain.Filter, key SortKey) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(&p, f) {
			out = append(out, p)
		}
	}

	usd := func(i int) float64 { return out[i].Price[domain.CurrencyUSD] }

	switch key {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return usd(i) < usd(j) })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return usd(i) > usd(j) })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortImpact:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Impact.BiodiversityScore > out[j].Impact.BiodiversityScore
		})
	}
	return out
}

// Matches reports whether p passes every criterion of f. Certifications match
// when p carries any of the requested labels. Price bounds are inclusive and
// apply to the USD price.
func Matches(p *domain.Product, f domain.Filter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}

	if f.Category != "" && f.Category != domain.AllCategories && p.Category != f.Category {
		return false
	}

	if len(f.Certifications) > 0 {
		found := false
		for _, c := range f.Certifications {
			if p.HasCertification(c) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	price := p.Price[domain.CurrencyUSD]
	if f.MinPrice != nil && price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && price > *f.MaxPrice {
		return false
	}
	return true
}
