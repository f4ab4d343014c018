package db

import (
	"time"

	"foodhub/internal/entity/common"
)

// Supplier 表示供应商档案。
type Supplier struct {
	ID         uint               `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	UserID     uint               `gorm:"column:user_id;index" json:"user_id"`
	Name       string             `gorm:"column:name;type:varchar(255);index;not null" json:"name"`
	Location   string             `gorm:"column:location;type:varchar(255)" json:"location"`
	Categories common.StringArray `gorm:"column:categories;type:json" json:"categories"`
	Contact    common.JSONMap     `gorm:"column:contact;type:json" json:"contact"`
}

// TableName 指定表名。
func (Supplier) TableName() string {
	return "suppliers"
}

// Project 表示采购/合作项目。
type Project struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Status      string    `gorm:"column:status;type:varchar(50);default:'open'" json:"status"`
}

// TableName 指定表名。
func (Project) TableName() string {
	return "projects"
}
