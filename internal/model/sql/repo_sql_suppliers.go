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

// CreateSupplier persists a new supplier profile.
func (r *GormRepository) CreateSupplier(ctx context.Context, supplier *db.Supplier) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if supplier == nil {
		return fmt.Errorf("supplier is nil")
	}
	return r.db.WithContext(ctx).Create(supplier).Error
}

// UpdateSupplier applies a partial column update.
func (r *GormRepository) UpdateSupplier(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid supplier id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&db.Supplier{}).Where("id = ?", id).Updates(updates).Error
}

// GetSupplierByID loads a supplier by ID.
func (r *GormRepository) GetSupplierByID(ctx context.Context, id uint) (*db.Supplier, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid supplier id")
	}
	var supplier db.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// supplierSortColumns 列出供应商列表允许排序的字段。
var supplierSortColumns = map[string]string{
	"name":       "name",
	"location":   "location",
	"created_at": "created_at",
}

// ListSuppliers returns paginated suppliers.
func (r *GormRepository) ListSuppliers(ctx context.Context, params *dto.SupplierQuery) ([]db.Supplier, *common.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&db.Supplier{})
	if params != nil {
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
		order = orderClause(params.BaseParams, supplierSortColumns, order)
	}

	var suppliers []db.Supplier
	if err := query.Order(order).Offset(offset).Limit(size).Find(&suppliers).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, p, size)
	return suppliers, meta, nil
}

// DeleteSupplier removes a supplier by ID.
func (r *GormRepository) DeleteSupplier(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid supplier id")
	}
	result := r.db.WithContext(ctx).Delete(&db.Supplier{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateProject persists a new project.
func (r *GormRepository) CreateProject(ctx context.Context, project *db.Project) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if project == nil {
		return fmt.Errorf("project is nil")
	}
	return r.db.WithContext(ctx).Create(project).Error
}

// UpdateProject applies a partial column update.
func (r *GormRepository) UpdateProject(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid project id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&db.Project{}).Where("id = ?", id).Updates(updates).Error
}

// GetProjectByID loads a project by ID.
func (r *GormRepository) GetProjectByID(ctx context.Context, id uint) (*db.Project, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid project id")
	}
	var project db.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// projectSortColumns 列出项目列表允许排序的字段。
var projectSortColumns = map[string]string{
	"name":       "name",
	"status":     "status",
	"created_at": "created_at",
}

// ListProjects returns paginated projects.
func (r *GormRepository) ListProjects(ctx context.Context, params *dto.ProjectQuery) ([]db.Project, *common.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&db.Project{})
	if params != nil {
		if trimmed := strings.TrimSpace(params.Status); trimmed != "" {
			query = query.Where("status = ?", trimmed)
		}
		if params.UserID != 0 {
			query = query.Where("user_id = ?", params.UserID)
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
		order = orderClause(params.BaseParams, projectSortColumns, order)
	}

	var projects []db.Project
	if err := query.Order(order).Offset(offset).Limit(size).Find(&projects).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, p, size)
	return projects, meta, nil
}

// DeleteProject removes a project by ID.
func (r *GormRepository) DeleteProject(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid project id")
	}
	result := r.db.WithContext(ctx).Delete(&db.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
