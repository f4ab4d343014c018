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

// CreateManufacturer persists a new manufacturer profile.
func (r *GormRepository) CreateManufacturer(ctx context.Context, manufacturer *db.Manufacturer) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if manufacturer == nil {
		return fmt.Errorf("manufacturer is nil")
	}
	return r.db.WithContext(ctx).Create(manufacturer).Error
}

// UpdateManufacturer applies a partial column update.
func (r *GormRepository) UpdateManufacturer(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid manufacturer id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&db.Manufacturer{}).Where("id = ?", id).Updates(updates).Error
}

// GetManufacturerByID loads a manufacturer by ID.
func (r *GormRepository) GetManufacturerByID(ctx context.Context, id uint) (*db.Manufacturer, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid manufacturer id")
	}
	var manufacturer db.Manufacturer
	if err := r.db.WithContext(ctx).First(&manufacturer, id).Error; err != nil {
		return nil, err
	}
	return &manufacturer, nil
}

// manufacturerSortColumns 列出生产商列表允许排序的字段。
var manufacturerSortColumns = map[string]string{
	"name":             "name",
	"established_year": "established_year",
	"created_at":       "created_at",
}

// ListManufacturers returns paginated manufacturers.
func (r *GormRepository) ListManufacturers(ctx context.Context, params *dto.ManufacturerQuery) ([]db.Manufacturer, *common.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&db.Manufacturer{})
	if params != nil {
		if trimmed := strings.TrimSpace(params.Industry); trimmed != "" {
			query = query.Where("industry = ?", trimmed)
		}
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", kw, kw)
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
		order = orderClause(params.BaseParams, manufacturerSortColumns, order)
	}

	var manufacturers []db.Manufacturer
	if err := query.Order(order).Offset(offset).Limit(size).Find(&manufacturers).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, p, size)
	return manufacturers, meta, nil
}

// DeleteManufacturer removes a manufacturer by ID.
func (r *GormRepository) DeleteManufacturer(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid manufacturer id")
	}
	result := r.db.WithContext(ctx).Delete(&db.Manufacturer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
