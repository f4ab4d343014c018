package dto

import (
	"time"

	"foodhub/internal/entity/common"
)

// UserSummary is a lightweight user description returned to clients.
// The password hash never leaves the persistence layer.
type UserSummary struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CompanyName string    `json:"company_name,omitempty"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	common.BaseParams
	Role    string `json:"role" form:"role" query:"role"`
	Status  string `json:"status" form:"status" query:"status"`
	Keyword string `json:"keyword" form:"keyword" query:"keyword"`
}

// UserCreateRequest is the payload for an admin creating a user.
type UserCreateRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"omitempty,max=255"`
	Role        string `json:"role" validate:"required,oneof=manufacturer brand retailer admin"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive pending suspended"`
}

// UserUpdateRequest is the payload for an admin updating a user.
type UserUpdateRequest struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=255"`
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=manufacturer brand retailer admin"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending suspended"`
}

// UserListResponse is the response for listing users.
type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Meta  *common.Meta  `json:"meta"`
}
