package dto

import (
	"time"

	"foodhub/internal/entity/common"
)

// ManufacturerContact is the nested contact block of a manufacturer profile.
type ManufacturerContact struct {
	Phone   string `json:"phone" validate:"omitempty,max=64"`
	Email   string `json:"email" validate:"omitempty,email"`
	Website string `json:"website" validate:"omitempty,url"`
}

// ManufacturerCreateRequest is the payload for creating a manufacturer profile.
type ManufacturerCreateRequest struct {
	Name            string              `json:"name" validate:"required,max=255"`
	Location        string              `json:"location" validate:"omitempty,max=255"`
	EstablishedYear int                 `json:"established_year" validate:"omitempty,established_year"`
	Industry        string              `json:"industry" validate:"omitempty,max=128"`
	Certification   string              `json:"certification" validate:"omitempty,max=255"`
	Contact         ManufacturerContact `json:"contact"`
	Description     string              `json:"description" validate:"omitempty,max=5000"`
}

// ManufacturerUpdateRequest is the payload for updating a manufacturer profile.
type ManufacturerUpdateRequest struct {
	Name            *string              `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Location        *string              `json:"location,omitempty" validate:"omitempty,max=255"`
	EstablishedYear *int                 `json:"established_year,omitempty" validate:"omitempty,established_year"`
	Industry        *string              `json:"industry,omitempty" validate:"omitempty,max=128"`
	Certification   *string              `json:"certification,omitempty" validate:"omitempty,max=255"`
	Contact         *ManufacturerContact `json:"contact,omitempty"`
	Description     *string              `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// ManufacturerQuery supports listing manufacturers.
type ManufacturerQuery struct {
	common.BaseParams
	Industry string `json:"industry" form:"industry" query:"industry"`
	Keyword  string `json:"keyword" form:"keyword" query:"keyword"`
}

// ManufacturerItem is the manufacturer projection returned to clients.
type ManufacturerItem struct {
	ID              uint                `json:"id"`
	Name            string              `json:"name"`
	Location        string              `json:"location"`
	EstablishedYear int                 `json:"established_year"`
	Industry        string              `json:"industry"`
	Certification   string              `json:"certification"`
	Contact         ManufacturerContact `json:"contact"`
	Description     string              `json:"description"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ManufacturerListResponse is the response for listing manufacturers.
type ManufacturerListResponse struct {
	Manufacturers []ManufacturerItem `json:"manufacturers"`
	Meta          *common.Meta       `json:"meta"`
}
