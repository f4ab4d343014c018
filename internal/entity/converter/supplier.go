package converter

import (
	"foodhub/internal/entity/common"
	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"
)

// SupplierFromCreate builds a db.Supplier owned by the calling user.
func SupplierFromCreate(ownerID uint, req *dto.SupplierCreateRequest) *db.Supplier {
	if req == nil {
		return nil
	}
	return &db.Supplier{
		UserID:     ownerID,
		Name:       req.Name,
		Location:   req.Location,
		Categories: common.StringArray(req.Categories),
		Contact:    SupplierContactToMap(req.Contact),
	}
}

// SupplierContactToMap flattens the contact block for the JSON column.
func SupplierContactToMap(contact dto.SupplierContact) common.JSONMap {
	return common.JSONMap{
		"phone": contact.Phone,
		"email": contact.Email,
	}
}

// SupplierToItem converts a db.Supplier to its client projection.
func SupplierToItem(s *db.Supplier) dto.SupplierItem {
	if s == nil {
		return dto.SupplierItem{}
	}
	item := dto.SupplierItem{
		ID:         s.ID,
		Name:       s.Name,
		Location:   s.Location,
		Categories: s.Categories.ToSlice(),
		UserID:     s.UserID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	if s.Contact != nil {
		if v, ok := s.Contact["phone"].(string); ok {
			item.Contact.Phone = v
		}
		if v, ok := s.Contact["email"].(string); ok {
			item.Contact.Email = v
		}
	}
	return item
}

// SuppliersToItems converts a slice of db.Supplier.
func SuppliersToItems(suppliers []db.Supplier) []dto.SupplierItem {
	items := make([]dto.SupplierItem, len(suppliers))
	for i := range suppliers {
		items[i] = SupplierToItem(&suppliers[i])
	}
	return items
}

// ProjectToItem converts a db.Project to its client projection.
func ProjectToItem(p *db.Project) dto.ProjectItem {
	if p == nil {
		return dto.ProjectItem{}
	}
	return dto.ProjectItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProjectsToItems converts a slice of db.Project.
func ProjectsToItems(projects []db.Project) []dto.ProjectItem {
	items := make([]dto.ProjectItem, len(projects))
	for i := range projects {
		items[i] = ProjectToItem(&projects[i])
	}
	return items
}
