package converter

import (
	"foodhub/internal/entity/common"
	"foodhub/internal/entity/db"
	"foodhub/internal/entity/dto"
)

// ManufacturerFromCreate builds a db.Manufacturer from the create payload.
func ManufacturerFromCreate(req *dto.ManufacturerCreateRequest) *db.Manufacturer {
	if req == nil {
		return nil
	}
	return &db.Manufacturer{
		Name:            req.Name,
		Location:        req.Location,
		EstablishedYear: req.EstablishedYear,
		Industry:        req.Industry,
		Certification:   req.Certification,
		Contact:         ManufacturerContactToMap(req.Contact),
		Description:     req.Description,
	}
}

// ManufacturerToItem converts a db.Manufacturer to its client projection.
func ManufacturerToItem(m *db.Manufacturer) dto.ManufacturerItem {
	if m == nil {
		return dto.ManufacturerItem{}
	}
	return dto.ManufacturerItem{
		ID:              m.ID,
		Name:            m.Name,
		Location:        m.Location,
		EstablishedYear: m.EstablishedYear,
		Industry:        m.Industry,
		Certification:   m.Certification,
		Contact:         manufacturerContactFromMap(m.Contact),
		Description:     m.Description,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ManufacturersToItems converts a slice of db.Manufacturer.
func ManufacturersToItems(manufacturers []db.Manufacturer) []dto.ManufacturerItem {
	items := make([]dto.ManufacturerItem, len(manufacturers))
	for i := range manufacturers {
		items[i] = ManufacturerToItem(&manufacturers[i])
	}
	return items
}

// ManufacturerContactToMap flattens the contact block for the JSON column.
func ManufacturerContactToMap(contact dto.ManufacturerContact) common.JSONMap {
	return common.JSONMap{
		"phone":   contact.Phone,
		"email":   contact.Email,
		"website": contact.Website,
	}
}

func manufacturerContactFromMap(m common.JSONMap) dto.ManufacturerContact {
	contact := dto.ManufacturerContact{}
	if m == nil {
		return contact
	}
	if v, ok := m["phone"].(string); ok {
		contact.Phone = v
	}
	if v, ok := m["email"].(string); ok {
		contact.Email = v
	}
	if v, ok := m["website"].(string); ok {
		contact.Website = v
	}
	return contact
}
