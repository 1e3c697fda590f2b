package model

import "gorm.io/gorm"

type Company struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	Employees []Employee `json:"-"`
	Devices   []Device   `json:"-"`
}
