package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// 产品判别器枚举
const (
	ProductTypeFood     = "food"
	ProductTypeBeverage = "beverage"
	ProductTypeHealth   = "health"
	ProductTypeOther    = "other"
)

const (
	LeadTimeUnitDays   = "days"
	LeadTimeUnitWeeks  = "weeks"
	LeadTimeUnitMonths = "months"
)

var (
	// FoodTypes 是食品类型的封闭枚举。
	FoodTypes = []string{"bakery", "dairy", "snacks", "confectionery", "grains", "sauces", "frozen", "canned", "fresh"}
	// PackagingTypes 是包装类型的封闭枚举。
	PackagingTypes = []string{"box", "bag", "bottle", "jar", "can", "pouch", "carton", "bulk"}
	// FlavorTypes 是风味类型的封闭枚举。
	FlavorTypes = []string{"sweet", "salty", "sour", "bitter", "umami", "spicy"}
	// Allergens 是过敏原的封闭枚举。
	Allergens = []string{"gluten", "dairy", "eggs", "nuts", "peanuts", "soy", "fish", "shellfish", "sesame"}
	// UnitTypes 是计量单位的封闭枚举。
	UnitTypes = []string{"kg", "g", "lb", "ton", "unit", "case", "pallet", "liter"}
)

// ErrShelfLifeWindow 在保质期起始日期不早于结束日期时返回。
var ErrShelfLifeWindow = errors.New("shelf life start date must be before end date")

// ValidProductType 检查判别器取值是否属于允许的枚举。
func ValidProductType(value string) bool {
	switch value {
	case ProductTypeFood, ProductTypeBeverage, ProductTypeHealth, ProductTypeOther:
		return true
	default:
		return false
	}
}

// ShelfLife 描述保质期窗口，两端均可缺省。
type ShelfLife struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// FoodDetails 是 food 判别器对应的变体负载，整体序列化进 products.food 列。
type FoodDetails struct {
	Manufacturer     string    `json:"manufacturer"`
	OriginCountry    string    `json:"origin_country"`
	MinOrderQuantity int       `json:"min_order_quantity"`
	UnitType         string    `json:"unit_type"`
	PricePerUnit     float64   `json:"price_per_unit"`
	Currency         string    `json:"currency"`
	LeadTime         int       `json:"lead_time"`
	LeadTimeUnit     string    `json:"lead_time_unit"`
	FoodType         string    `json:"food_type"`
	PackagingType    string    `json:"packaging_type"`
	FlavorTypes      []string  `json:"flavor_types,omitempty"`
	Ingredients      []string  `json:"ingredients,omitempty"`
	Allergens        []string  `json:"allergens,omitempty"`
	Usage            []string  `json:"usage,omitempty"`
	ShelfLife        ShelfLife `json:"shelf_life"`
	CurrentAvailable int       `json:"current_available"`
	Sustainability   string    `json:"sustainability,omitempty"`
}

// Value 实现 driver.Valuer 接口。
func (d *FoodDetails) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口。
func (d *FoodDetails) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, d)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported type for FoodDetails: %T", value)
	}
}

// Product 是所有产品类型共用的持久化信封。food 类型额外携带 Food 变体负载，
// 其余类型的 Food 为 nil。SKU 为稀疏唯一：仅在设置时参与唯一约束。
type Product struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	UserID      uint         `gorm:"column:user_id;index;not null" json:"user_id"`
	Name        string       `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Brand       string       `gorm:"column:brand;type:varchar(255)" json:"brand"`
	Category    string       `gorm:"column:category;type:varchar(128);index" json:"category"`
	Description string       `gorm:"column:description;type:text" json:"description"`
	Price       float64      `gorm:"column:price;not null;default:0" json:"price"`
	Stock       int          `gorm:"column:stock;not null;default:0" json:"stock"`
	Image       string       `gorm:"column:image;type:text" json:"image"`
	Rating      float64      `gorm:"column:rating;not null;default:0" json:"rating"`
	ReviewCount int          `gorm:"column:review_count;not null;default:0" json:"review_count"`
	ProductType string       `gorm:"column:product_type;type:varchar(32);index;not null;default:'other'" json:"product_type"`
	SKU         *string      `gorm:"column:sku;type:varchar(64);uniqueIndex" json:"sku,omitempty"`
	Food        *FoodDetails `gorm:"column:food;type:json" json:"food,omitempty"`
}

// TableName 指定表名。
func (Product) TableName() string {
	return "products"
}

// BeforeCreate 在首次持久化时生成缺失的 SKU。已有 SKU 永不覆盖。
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ProductType == "" {
		p.ProductType = ProductTypeOther
	}
	if p.ProductType == ProductTypeFood && p.Food != nil && p.SKU == nil {
		sku := GenerateSKU(p.Food.FoodType, time.Now())
		p.SKU = &sku
	}
	return nil
}

// BeforeSave 校验保质期窗口，违反时拒绝写入。
func (p *Product) BeforeSave(tx *gorm.DB) error {
	return p.ValidateShelfLife()
}

// ValidateShelfLife 在保质期起止日期均设置且起始不早于结束时返回错误。
func (p *Product) ValidateShelfLife() error {
	if p.Food == nil {
		return nil
	}
	start, end := p.Food.ShelfLife.Start, p.Food.ShelfLife.End
	if start != nil && end != nil && !start.Before(*end) {
		return ErrShelfLifeWindow
	}
	return nil
}

// GenerateSKU 根据食品类型生成 SKU：三字母类型前缀 + 六位时间后缀。
// 后缀取毫秒时间戳的低六位，周期约 16 分钟，相邻创建不会撞号。
func GenerateSKU(foodType string, now time.Time) string {
	prefix := strings.ToUpper(strings.TrimSpace(foodType))
	if len(prefix) >= 3 {
		prefix = prefix[:3]
	} else if prefix == "" {
		prefix = "GEN"
	}
	for len(prefix) < 3 {
		prefix += "X"
	}
	suffix := now.UnixMilli() % 1000000
	return fmt.Sprintf("%s-%06d", prefix, suffix)
}
