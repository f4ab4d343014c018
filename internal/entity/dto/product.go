package dto

import (
	"time"

	"foodhub/internal/entity/common"
)

// ProductCreateRequest is the payload for the base product surface.
type ProductCreateRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	ProductType string  `json:"product_type" validate:"required,oneof=food beverage health other"`
	Brand       string  `json:"brand" validate:"omitempty,max=255"`
	Category    string  `json:"category" validate:"omitempty,max=128"`
	Description string  `json:"description" validate:"omitempty,max=5000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Image       string  `json:"image" validate:"omitempty,max=2048"`
	SKU         *string `json:"sku,omitempty" validate:"omitempty,sku"`
}

// ProductUpdateRequest is the payload for mutating a base product.
// The SKU is intentionally absent: it is fixed after creation.
type ProductUpdateRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Brand       *string  `json:"brand,omitempty" validate:"omitempty,max=255"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=128"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Image       *string  `json:"image,omitempty" validate:"omitempty,max=2048"`
}

// ProductQuery filters the shared product collection.
type ProductQuery struct {
	common.BaseParams
	Category     string `json:"category" form:"category" query:"category"`
	ProductType  string `json:"product_type" form:"product_type" query:"product_type"`
	Manufacturer string `json:"manufacturer" form:"manufacturer" query:"manufacturer"`
	Keyword      string `json:"keyword" form:"keyword" query:"keyword"`
	UserID       uint   `json:"-" form:"-" query:"-"`
}

// ProductSummary is the list/search projection over the shared envelope.
type ProductSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	ProductType string    `json:"product_type"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	SKU         string    `json:"sku,omitempty"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse is the response for listing products.
type ProductListResponse struct {
	Products []ProductSummary `json:"products"`
	Meta     *common.Meta     `json:"meta"`
}

// FoodShelfLife carries the optional shelf-life window of the food form.
type FoodShelfLife struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// FoodProductForm is the client-facing shape of the food product surface.
// Field names follow what suppliers type into the form; the converter
// projects them onto the canonical stored envelope.
type FoodProductForm struct {
	Name             string        `json:"name" validate:"required,max=255"`
	ManufacturerName string        `json:"manufacturer_name" validate:"required,max=255"`
	OriginCountry    string        `json:"origin_country" validate:"required,max=128"`
	Category         string        `json:"category" validate:"omitempty,max=128"`
	Description      string        `json:"description" validate:"omitempty,max=5000"`
	CurrentAvailable int           `json:"current_available" validate:"gte=0"`
	UnitPrice        float64       `json:"unit_price" validate:"gte=0"`
	Currency         string        `json:"currency" validate:"required,currency_code"`
	MinOrderQuantity int           `json:"min_order_quantity" validate:"required,gte=1"`
	UnitType         string        `json:"unit_type" validate:"required,oneof=kg g lb ton unit case pallet liter"`
	LeadTime         int           `json:"lead_time" validate:"gte=0"`
	LeadTimeUnit     string        `json:"lead_time_unit" validate:"required,oneof=days weeks months"`
	FoodType         string        `json:"food_type" validate:"required,oneof=bakery dairy snacks confectionery grains sauces frozen canned fresh"`
	PackagingType    string        `json:"packaging_type" validate:"required,oneof=box bag bottle jar can pouch carton bulk"`
	FlavorTypes      []string      `json:"flavor_types,omitempty" validate:"omitempty,dive,oneof=sweet salty sour bitter umami spicy"`
	Ingredients      []string      `json:"ingredients,omitempty" validate:"omitempty,dive,min=1,max=255"`
	Allergens        []string      `json:"allergens,omitempty" validate:"omitempty,dive,oneof=gluten dairy eggs nuts peanuts soy fish shellfish sesame"`
	Usage            []string      `json:"usage,omitempty" validate:"omitempty,dive,min=1,max=255"`
	ShelfLife        FoodShelfLife `json:"shelf_life"`
	SKU              *string       `json:"sku,omitempty" validate:"omitempty,sku"`
	Image            string        `json:"image" validate:"omitempty,max=2048"`
	Sustainability   string        `json:"sustainability" validate:"omitempty,max=5000"`
}

// FoodProductDetail joins the shared envelope with the food variant payload.
type FoodProductDetail struct {
	ProductSummary
	Description      string        `json:"description"`
	Manufacturer     string        `json:"manufacturer"`
	OriginCountry    string        `json:"origin_country"`
	MinOrderQuantity int           `json:"min_order_quantity"`
	UnitType         string        `json:"unit_type"`
	PricePerUnit     float64       `json:"price_per_unit"`
	Currency         string        `json:"currency"`
	LeadTime         int           `json:"lead_time"`
	LeadTimeUnit     string        `json:"lead_time_unit"`
	FoodType         string        `json:"food_type"`
	PackagingType    string        `json:"packaging_type"`
	FlavorTypes      []string      `json:"flavor_types,omitempty"`
	Ingredients      []string      `json:"ingredients,omitempty"`
	Allergens        []string      `json:"allergens,omitempty"`
	Usage            []string      `json:"usage,omitempty"`
	ShelfLife        FoodShelfLife `json:"shelf_life"`
	CurrentAvailable int           `json:"current_available"`
	Sustainability   string        `json:"sustainability,omitempty"`
}
