package db

import "time"

const (
	UserRoleManufacturer = "manufacturer"
	UserRoleBrand        = "brand"
	UserRoleRetailer     = "retailer"
	UserRoleAdmin        = "admin"
)

const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusPending   = "pending"
	UserStatusSuspended = "suspended"
)

// User 表示持久化的用户账户。
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	DisplayName  string    `gorm:"column:display_name;type:varchar(255)" json:"display_name"`
	Role         string    `gorm:"column:role;type:varchar(50);index;not null" json:"role"`
	Status       string    `gorm:"column:status;type:varchar(50);index;not null;default:'pending'" json:"status"`
	CompanyName  string    `gorm:"column:company_name;type:varchar(255)" json:"company_name"`
}

// TableName 指定表名。
func (User) TableName() string {
	return "users"
}

// IsActive 报告账户是否可以登录。
func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}

// ValidRole 检查角色是否属于允许的枚举。
func ValidRole(role string) bool {
	switch role {
	case UserRoleManufacturer, UserRoleBrand, UserRoleRetailer, UserRoleAdmin:
		return true
	default:
		return false
	}
}

// ValidStatus 检查状态是否属于允许的枚举。
func ValidStatus(status string) bool {
	switch status {
	case UserStatusActive, UserStatusInactive, UserStatusPending, UserStatusSuspended:
		return true
	default:
		return false
	}
}
