package db

import (
	"time"

	"foodhub/internal/entity/common"
)

// Manufacturer 表示独立的生产商档案，与用户仅通过名称弱关联。
type Manufacturer struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Name            string         `gorm:"column:name;type:varchar(255);index;not null" json:"name"`
	Location        string         `gorm:"column:location;type:varchar(255)" json:"location"`
	EstablishedYear int            `gorm:"column:established_year" json:"established_year"`
	Industry        string         `gorm:"column:industry;type:varchar(128)" json:"industry"`
	Certification   string         `gorm:"column:certification;type:varchar(255)" json:"certification"`
	Contact         common.JSONMap `gorm:"column:contact;type:json" json:"contact"`
	Description     string         `gorm:"column:description;type:text" json:"description"`
}

// TableName 指定表名。
func (Manufacturer) TableName() string {
	return "manufacturers"
}
