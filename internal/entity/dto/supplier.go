package dto

import (
	"time"

	"foodhub/internal/entity/common"
)

// SupplierContact is the nested contact block of a supplier profile.
type SupplierContact struct {
	Phone string `json:"phone" validate:"omitempty,max=64"`
	Email string `json:"email" validate:"omitempty,email"`
}

// SupplierCreateRequest is the payload for creating a supplier profile.
type SupplierCreateRequest struct {
	Name       string          `json:"name" validate:"required,max=255"`
	Location   string          `json:"location" validate:"omitempty,max=255"`
	Categories []string        `json:"categories,omitempty" validate:"omitempty,dive,min=1,max=128"`
	Contact    SupplierContact `json:"contact"`
}

// SupplierUpdateRequest is the payload for updating a supplier profile.
type SupplierUpdateRequest struct {
	Name       *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Location   *string          `json:"location,omitempty" validate:"omitempty,max=255"`
	Categories []string         `json:"categories,omitempty" validate:"omitempty,dive,min=1,max=128"`
	Contact    *SupplierContact `json:"contact,omitempty"`
}

// SupplierItem is the supplier projection returned to clients.
type SupplierItem struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Categories []string        `json:"categories"`
	Contact    SupplierContact `json:"contact"`
	UserID     uint            `json:"user_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SupplierListResponse is the response for listing suppliers.
type SupplierListResponse struct {
	Suppliers []SupplierItem `json:"suppliers"`
	Meta      *common.Meta   `json:"meta"`
}

// ProjectCreateRequest is the payload for creating a project.
type ProjectCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}

// ProjectUpdateRequest is the payload for updating a project.
type ProjectUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=open closed archived"`
}

// ProjectItem is the project projection returned to clients.
type ProjectItem struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectListResponse is the response for listing projects.
type ProjectListResponse struct {
	Projects []ProjectItem `json:"projects"`
	Meta     *common.Meta  `json:"meta"`
}

// SupplierQuery supports listing suppliers.
type SupplierQuery struct {
	common.BaseParams
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
}

// ProjectQuery supports listing projects.
type ProjectQuery struct {
	common.BaseParams
	Status string `json:"status" form:"status" query:"status"`
	UserID uint   `json:"-" form:"-" query:"-"`
}
