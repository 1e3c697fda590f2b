package model

import "gorm.io/gorm"

// Employee adalah entri direktori pegawai. CRUD lengkapnya dikelola modul HR
// lain; modul sinkronisasi hanya membaca.
type Employee struct {
	gorm.Model
	CompanyID      uint   `json:"company_id" gorm:"index;not null"`
	FullName       string `json:"full_name"`
	EmployeeNumber string `json:"employee_number" gorm:"index"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`

	Company Company `json:"-" gorm:"foreignKey:CompanyID"`
}
