package converter

import (
	"testing"
	"time"

	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"
)

func sampleForm() dto.FoodProductForm {
	return dto.FoodProductForm{
		Name:             "Sourdough Loaf",
		ManufacturerName: " Hearth Mills ",
		OriginCountry:    "France",
		Category:         "bread",
		CurrentAvailable: 120,
		UnitPrice:        3.5,
		Currency:         "eur",
		MinOrderQuantity: 10,
		UnitType:         "case",
		LeadTime:         5,
		LeadTimeUnit:     "days",
		FoodType:         "bakery",
		PackagingType:    "box",
	}
}

func TestFoodProductFromFormDualWrite(t *testing.T) {
	form := sampleForm()
	product := FoodProductFromForm(42, &form)

	if product.UserID != 42 {
		t.Fatalf("expected owner 42, got %d", product.UserID)
	}
	if product.ProductType != db.ProductTypeFood {
		t.Fatalf("expected food product type, got %s", product.ProductType)
	}
	if product.Food == nil {
		t.Fatal("expected food payload to be populated")
	}

	// 三个双写投影
	if product.Brand != "Hearth Mills" || product.Food.Manufacturer != "Hearth Mills" {
		t.Fatalf("expected manufacturer in both brand and food payload, got %q / %q",
			product.Brand, product.Food.Manufacturer)
	}
	if product.Stock != 120 || product.Food.CurrentAvailable != 120 {
		t.Fatalf("expected availability in both stock and food payload, got %d / %d",
			product.Stock, product.Food.CurrentAvailable)
	}
	if product.Price != 3.5 || product.Food.PricePerUnit != 3.5 {
		t.Fatalf("expected unit price in both price and food payload, got %v / %v",
			product.Price, product.Food.PricePerUnit)
	}

	if product.Food.Currency != "EUR" {
		t.Fatalf("expected upper-cased currency, got %s", product.Food.Currency)
	}
	if product.SKU != nil {
		t.Fatal("expected SKU to stay unset when absent from the form")
	}
}

func TestFoodProductFromFormKeepsExplicitSKU(t *testing.T) {
	form := sampleForm()
	sku := " BAK-001 "
	form.SKU = &sku

	product := FoodProductFromForm(1, &form)
	if product.SKU == nil || *product.SKU != "BAK-001" {
		t.Fatalf("expected trimmed SKU BAK-001, got %v", product.SKU)
	}
}

func TestApplyFoodFormUpdatePreservesIdentity(t *testing.T) {
	existingSKU := "BAK-777"
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	existing := &db.Product{
		ID:          11,
		CreatedAt:   created,
		UserID:      42,
		Name:        "Old Name",
		Rating:      4.2,
		ReviewCount: 17,
		ProductType: db.ProductTypeFood,
		SKU:         &existingSKU,
		Food:        &db.FoodDetails{FoodType: "bakery"},
	}

	form := sampleForm()
	form.Name = "New Name"
	ApplyFoodFormUpdate(existing, &form)

	if existing.ID != 11 {
		t.Fatalf("expected id 11, got %d", existing.ID)
	}
	if !existing.CreatedAt.Equal(created) {
		t.Fatal("expected created_at to be preserved")
	}
	if existing.UserID != 42 {
		t.Fatalf("expected owner to be preserved, got %d", existing.UserID)
	}
	if existing.Rating != 4.2 || existing.ReviewCount != 17 {
		t.Fatalf("expected rating state to be preserved, got %v / %d", existing.Rating, existing.ReviewCount)
	}
	if existing.SKU == nil || *existing.SKU != existingSKU {
		t.Fatalf("expected SKU %s to be preserved, got %v", existingSKU, existing.SKU)
	}
	if existing.Name != "New Name" {
		t.Fatalf("expected name to be replaced, got %s", existing.Name)
	}
}

func TestProductToFoodDetailJoinsEnvelopeAndVariant(t *testing.T) {
	sku := "BAK-123"
	product := &db.Product{
		ID:          5,
		Name:        "Loaf",
		Brand:       "Hearth Mills",
		ProductType: db.ProductTypeFood,
		Price:       3.5,
		Stock:       120,
		SKU:         &sku,
		Description: "stone baked",
		Food: &db.FoodDetails{
			Manufacturer:     "Hearth Mills",
			OriginCountry:    "France",
			PricePerUnit:     3.5,
			Currency:         "EUR",
			FoodType:         "bakery",
			PackagingType:    "box",
			CurrentAvailable: 120,
		},
	}

	detail := ProductToFoodDetail(product)
	if detail.ID != 5 || detail.SKU != sku {
		t.Fatalf("expected envelope fields carried over, got id=%d sku=%s", detail.ID, detail.SKU)
	}
	if detail.Manufacturer != "Hearth Mills" || detail.OriginCountry != "France" {
		t.Fatal("expected variant fields carried over")
	}
	if detail.Description != "stone baked" {
		t.Fatalf("expected description, got %s", detail.Description)
	}

	// 没有变体负载时只返回信封字段
	product.Food = nil
	detail = ProductToFoodDetail(product)
	if detail.Manufacturer != "" || detail.Currency != "" {
		t.Fatal("expected empty variant fields without a food payload")
	}
}
