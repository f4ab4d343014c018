package sql

import (
	"context"
	"fmt"
	"strings"

	"foodhub/internal/entity/common"
	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"

	"gorm.io/gorm"
)

// CreateProduct persists a new product; GORM hooks assign the SKU and check
// the shelf-life window before the row is written.
func (r *GormRepository) CreateProduct(ctx context.Context, product *db.Product) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if product == nil {
		return fmt.Errorf("product is nil")
	}
	return r.db.WithContext(ctx).Create(product).Error
}

// SaveProduct writes the full product row back, running the save hooks.
func (r *GormRepository) SaveProduct(ctx context.Context, product *db.Product) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if product == nil || product.ID == 0 {
		return fmt.Errorf("invalid product")
	}
	return r.db.WithContext(ctx).Save(product).Error
}

// UpdateProduct applies a partial column update.
func (r *GormRepository) UpdateProduct(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid product id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&db.Product{}).Where("id = ?", id).Updates(updates).Error
}

// GetProductByID loads a product by ID.
func (r *GormRepository) GetProductByID(ctx context.Context, id uint) (*db.Product, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	var product db.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// productSortColumns 列出产品列表允许排序的字段。
var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"rating":     "rating",
	"created_at": "created_at",
}

// ListProducts returns paginated products filtered over the shared envelope.
func (r *GormRepository) ListProducts(ctx context.Context, params *dto.ProductQuery) ([]db.Product, *common.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&db.Product{})
	if params != nil {
		if trimmed := strings.TrimSpace(params.Category); trimmed != "" {
			query = query.Where("category = ?", trimmed)
		}
		if trimmed := strings.TrimSpace(params.ProductType); trimmed != "" {
			query = query.Where("product_type = ?", trimmed)
		}
		if trimmed := strings.TrimSpace(params.Manufacturer); trimmed != "" {
			// 生产商名称双写进 brand 字段，列表查询只看信封
			query = query.Where("LOWER(brand) = ?", strings.ToLower(trimmed))
		}
		if params.UserID != 0 {
			query = query.Where("user_id = ?", params.UserID)
		}
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", kw, kw)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var page, pageSize int64
	if params != nil {
		page, pageSize = params.Page, params.PageSize
	}
	p, size, offset := pageWindow(page, pageSize)

	order := "id DESC"
	if params != nil {
		order = orderClause(params.BaseParams, productSortColumns, order)
	}

	var products []db.Product
	if err := query.Order(order).Offset(offset).Limit(size).Find(&products).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, p, size)
	return products, meta, nil
}

// DeleteProduct removes a product by ID.
func (r *GormRepository) DeleteProduct(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid product id")
	}
	result := r.db.WithContext(ctx).Delete(&db.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
