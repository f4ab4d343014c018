package converter

import (
	"strings"

	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"
)

// FoodProductFromForm projects the client-facing food form onto the canonical
// stored envelope. Three values are deliberately written twice so that base
// list/search queries and the food detail view each read correct data without
// consulting the other shape:
//
//   - manufacturer_name → Product.Brand 和 Food.Manufacturer
//   - current_available → Product.Stock 和 Food.CurrentAvailable
//   - unit_price        → Product.Price 和 Food.PricePerUnit
func FoodProductFromForm(ownerID uint, form *dto.FoodProductForm) *db.Product {
	if form == nil {
		return nil
	}
	manufacturer := strings.TrimSpace(form.ManufacturerName)

	product := &db.Product{
		UserID:      ownerID,
		Name:        strings.TrimSpace(form.Name),
		Brand:       manufacturer,
		Category:    strings.TrimSpace(form.Category),
		Description: strings.TrimSpace(form.Description),
		Price:       form.UnitPrice,
		Stock:       form.CurrentAvailable,
		Image:       strings.TrimSpace(form.Image),
		ProductType: db.ProductTypeFood,
		Food: &db.FoodDetails{
			Manufacturer:     manufacturer,
			OriginCountry:    strings.TrimSpace(form.OriginCountry),
			MinOrderQuantity: form.MinOrderQuantity,
			UnitType:         form.UnitType,
			PricePerUnit:     form.UnitPrice,
			Currency:         strings.ToUpper(strings.TrimSpace(form.Currency)),
			LeadTime:         form.LeadTime,
			LeadTimeUnit:     form.LeadTimeUnit,
			FoodType:         form.FoodType,
			PackagingType:    form.PackagingType,
			FlavorTypes:      form.FlavorTypes,
			Ingredients:      form.Ingredients,
			Allergens:        form.Allergens,
			Usage:            form.Usage,
			ShelfLife:        db.ShelfLife{Start: form.ShelfLife.Start, End: form.ShelfLife.End},
			CurrentAvailable: form.CurrentAvailable,
			Sustainability:   strings.TrimSpace(form.Sustainability),
		},
	}

	if form.SKU != nil {
		if sku := strings.TrimSpace(*form.SKU); sku != "" {
			product.SKU = &sku
		}
	}

	return product
}

// ApplyFoodFormUpdate re-projects the form onto an existing product while
// preserving identity, ownership, rating state, and a previously assigned SKU.
func ApplyFoodFormUpdate(existing *db.Product, form *dto.FoodProductForm) {
	if existing == nil || form == nil {
		return
	}
	updated := FoodProductFromForm(existing.UserID, form)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Rating = existing.Rating
	updated.ReviewCount = existing.ReviewCount
	if existing.SKU != nil {
		updated.SKU = existing.SKU
	}
	*existing = *updated
}
