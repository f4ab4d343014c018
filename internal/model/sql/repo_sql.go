package sql

import (
	"strings"

	"foodhub/internal/entity/common"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// calculatePagination calculates pagination metrics
func (r *GormRepository) calculatePagination(totalCount int64, page, pageSize int) *common.Meta {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	return &common.Meta{
		Total:    totalCount,
		Page:     int64(page),
		PageSize: int64(pageSize),
	}
}

// orderClause maps the requested sort field onto a whitelisted column.
// Unknown fields fall back to the default ordering, so client input never
// reaches the SQL text directly.
func orderClause(params common.BaseParams, sortable map[string]string, fallback string) string {
	column, ok := sortable[strings.TrimSpace(params.SortBy)]
	if !ok {
		return fallback
	}
	if params.SortDesc {
		return column + " DESC"
	}
	return column + " ASC"
}

// pageWindow normalises pagination parameters into page, pageSize, offset.
func pageWindow(page, pageSize int64) (int, int, int) {
	p := 1
	size := 20
	if page > 0 {
		p = int(page)
	}
	if pageSize > 0 {
		size = int(pageSize)
	}
	offset := (p - 1) * size
	if offset < 0 {
		offset = 0
	}
	return p, size, offset
}
