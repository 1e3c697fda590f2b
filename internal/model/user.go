package model

import "gorm.io/gorm"

// User akun login API (admin HR)
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Username string `json:"username" gorm:"unique;not null"`
	Password string `json:"-"`
}
