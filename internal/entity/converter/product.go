package converter

import (
	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"
)

// ProductToSummary projects the shared envelope onto the list shape.
func ProductToSummary(p *db.Product) dto.ProductSummary {
	if p == nil {
		return dto.ProductSummary{}
	}
	out := dto.ProductSummary{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		ProductType: p.ProductType,
		Price:       p.Price,
		Stock:       p.Stock,
		Image:       p.Image,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.SKU != nil {
		out.SKU = *p.SKU
	}
	return out
}

// ProductsToSummaries converts a slice of db.Product to dto.ProductSummary.
func ProductsToSummaries(products []db.Product) []dto.ProductSummary {
	summaries := make([]dto.ProductSummary, len(products))
	for i := range products {
		summaries[i] = ProductToSummary(&products[i])
	}
	return summaries
}

// ProductToFoodDetail joins the envelope with the food variant payload.
// Products without a food payload yield the envelope fields only.
func ProductToFoodDetail(p *db.Product) dto.FoodProductDetail {
	detail := dto.FoodProductDetail{ProductSummary: ProductToSummary(p)}
	if p == nil {
		return detail
	}
	detail.Description = p.Description
	if p.Food == nil {
		return detail
	}
	f := p.Food
	detail.Manufacturer = f.Manufacturer
	detail.OriginCountry = f.OriginCountry
	detail.MinOrderQuantity = f.MinOrderQuantity
	detail.UnitType = f.UnitType
	detail.PricePerUnit = f.PricePerUnit
	detail.Currency = f.Currency
	detail.LeadTime = f.LeadTime
	detail.LeadTimeUnit = f.LeadTimeUnit
	detail.FoodType = f.FoodType
	detail.PackagingType = f.PackagingType
	detail.FlavorTypes = f.FlavorTypes
	detail.Ingredients = f.Ingredients
	detail.Allergens = f.Allergens
	detail.Usage = f.Usage
	detail.ShelfLife = dto.FoodShelfLife{Start: f.ShelfLife.Start, End: f.ShelfLife.End}
	detail.CurrentAvailable = f.CurrentAvailable
	detail.Sustainability = f.Sustainability
	return detail
}
