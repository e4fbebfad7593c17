package storage

import "github.com/rl1809/ecoscene/internal/core/domain"

func prices(usd, v, y float64) domain.Prices {
	return domain.Prices{domain.CurrencyUSD: usd, domain.CurrencyV: v, domain.CurrencyY: y}
}

// Fixtures returns a fresh copy of the marketplace seed catalog.
func Fixtures() []domain.Product {
	return []domain.Product{
		{
			ID: "product-001", Seller: "Conscious Foods Coop", Name: "Organic Heritage Tomato Seeds",
			Description:    "Heirloom varieties preserved for generations. These seeds produce vibrant, flavorful tomatoes while supporting biodiversity.",
			Price:          prices(12.99, 15, 10),
			Certifications: []string{"USDA Organic", "Non-GMO", "Fair Trade", "Regenerative Organic"},
			Impact:         domain.Impact{BiodiversityScore: 9.2, CarbonFootprint: -2.5, CommunityBenefit: "Supports 5 local seed-saving families"},
			Category:       "Seeds & Plants", InStock: true, Rating: 4.8, Reviews: 127,
		},
		{
			ID: "product-002", Seller: "Earth Crafts Collective", Name: "Handwoven Hemp Basket Set",
			Description:    "Beautiful, durable baskets made from sustainably grown hemp. Perfect for storage or farmers market shopping.",
			Price:          prices(45, 50, 35),
			Certifications: []string{"Fair Trade", "Handmade", "Carbon Neutral"},
			Impact:         domain.Impact{BiodiversityScore: 7.5, CarbonFootprint: -5.0, CommunityBenefit: "Provides income for 10 artisan families"},
			Category:       "Home & Living", InStock: true, Rating: 4.9, Reviews: 89,
		},
		{
			ID: "product-003", Seller: "Sacred Herbs Apothecary", Name: "Wildcrafted Herbal Tea Blend",
			Description:    "A calming blend of chamomile, lavender, and passionflower. Ethically wildcrafted with permission from the land.",
			Price:          prices(18.5, 20, 15),
			Certifications: []string{"USDA Organic", "Wildcrafted", "Women-Owned"},
			Impact:         domain.Impact{BiodiversityScore: 8.8, CarbonFootprint: -3.2, CommunityBenefit: "Preserves traditional herbal knowledge"},
			Category:       "Health & Wellness", InStock: true, Rating: 4.7, Reviews: 234,
		},
		{
			ID: "product-004", Seller: "Regenerative Ranch", Name: "Grass-Fed Beef Share",
			Description:    "Quarter share of regeneratively raised, grass-fed beef. Our cattle help restore prairie ecosystems.",
			Price:          prices(185, 200, 150),
			Certifications: []string{"Regenerative Organic", "Grass-Fed", "Animal Welfare Approved"},
			Impact:         domain.Impact{BiodiversityScore: 8.5, CarbonFootprint: -12.0, CommunityBenefit: "Restores 50 acres of prairie land"},
			Category:       "Food & Beverages", InStock: true, Rating: 4.9, Reviews: 56,
		},
		{
			ID: "product-005", Seller: "Sustainable Threads", Name: "Organic Cotton T-Shirt",
			Description:    "Soft, durable t-shirt made from 100% organic cotton. Dyed with natural plant dyes.",
			Price:          prices(32, 35, 25),
			Certifications: []string{"GOTS Certified", "Fair Trade", "Carbon Neutral"},
			Impact:         domain.Impact{BiodiversityScore: 7.2, CarbonFootprint: -4.5, CommunityBenefit: "Fair wages for 20 garment workers"},
			Category:       "Clothing & Textiles", InStock: true, Rating: 4.6, Reviews: 178,
		},
		{
			ID: "product-006", Seller: "Permaculture Tools", Name: "Broad Fork Garden Tool",
			Description:    "Hand-forged broad fork for aerating soil without tilling. Built to last generations.",
			Price:          prices(120, 130, 95),
			Certifications: []string{"Handmade", "B-Corp", "Lifetime Warranty"},
			Impact:         domain.Impact{BiodiversityScore: 9.0, CarbonFootprint: -8.0, CommunityBenefit: "Supports local blacksmith guild"},
			Category:       "Tools & Equipment", InStock: true, Rating: 5.0, Reviews: 43,
		},
		{
			ID: "product-007", Seller: "Forest School Press", Name: "The Regenerative Garden Book",
			Description:    "Comprehensive guide to creating abundant gardens that heal the earth. Includes permaculture principles.",
			Price:          prices(28, 30, 22),
			Certifications: []string{"FSC Certified", "Carbon Neutral", "Educational"},
			Impact:         domain.Impact{BiodiversityScore: 6.5, CarbonFootprint: -2.0, CommunityBenefit: "Educates 1000+ gardeners annually"},
			Category:       "Education & Books", InStock: true, Rating: 4.8, Reviews: 312,
		},
		{
			ID: "product-008", Seller: "Native Plant Nursery", Name: "Pollinator Garden Starter Kit",
			Description:    "12 native plants selected to support local pollinators. Includes planting guide and care instructions.",
			Price:          prices(65, 70, 50),
			Certifications: []string{"Native Plants", "Organic", "Pollinator Friendly"},
			Impact:         domain.Impact{BiodiversityScore: 9.8, CarbonFootprint: -6.0, CommunityBenefit: "Creates habitat for 30+ pollinator species"},
			Category:       "Seeds & Plants", InStock: true, Rating: 4.9, Reviews: 89,
		},
		{
			ID: "product-009", Seller: "Zero Waste Home", Name: "Beeswax Food Wraps Set",
			Description:    "Reusable food wraps made from organic cotton and local beeswax. Replace 100+ rolls of plastic wrap.",
			Price:          prices(24, 25, 18),
			Certifications: []string{"Plastic Free", "Compostable", "Women-Owned"},
			Impact:         domain.Impact{BiodiversityScore: 7.8, CarbonFootprint: -3.5, CommunityBenefit: "Reduces plastic waste in oceans"},
			Category:       "Home & Living", InStock: false, Rating: 4.7, Reviews: 203,
		},
		{
			ID: "product-010", Seller: "Community Supported Agriculture", Name: "Weekly Organic Veggie Box",
			Description:    "Fresh, seasonal vegetables from local regenerative farms. Subscription-based delivery.",
			Price:          prices(35, 40, 30),
			Certifications: []string{"USDA Organic", "Local", "Regenerative Organic"},
			Impact:         domain.Impact{BiodiversityScore: 9.1, CarbonFootprint: -4.0, CommunityBenefit: "Supports 15 small family farms"},
			Category:       "Food & Beverages", InStock: true, Rating: 4.8, Reviews: 456,
		},
		{
			ID: "product-011", Seller: "Holistic Health Hub", Name: "Adaptogenic Mushroom Blend",
			Description:    "Powerful blend of reishi, chaga, and lions mane. Sustainably wildcrafted from old-growth forests.",
			Price:          prices(42, 45, 35),
			Certifications: []string{"Wildcrafted", "Third-Party Tested", "Forest Stewardship"},
			Impact:         domain.Impact{BiodiversityScore: 8.2, CarbonFootprint: -2.8, CommunityBenefit: "Protects 100 acres of forest"},
			Category:       "Health & Wellness", InStock: true, Rating: 4.9, Reviews: 167,
		},
		{
			ID: "product-012", Seller: "Ethical Electronics", Name: "Solar Phone Charger",
			Description:    "Portable solar charger made from recycled materials. Powers your devices with clean energy.",
			Price:          prices(58, 60, 45),
			Certifications: []string{"B-Corp", "Fair Trade Electronics", "Carbon Neutral"},
			Impact:         domain.Impact{BiodiversityScore: 6.8, CarbonFootprint: -15.0, CommunityBenefit: "Provides solar access to rural communities"},
			Category:       "Tools & Equipment", InStock: true, Rating: 4.5, Reviews: 234,
		},
	}
}
