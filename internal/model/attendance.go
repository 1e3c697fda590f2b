package model

import "gorm.io/gorm"

// Attendance adalah rekap harian per pegawai (satu baris per pegawai per
// tanggal). Tanggal dan jam disimpan sebagai string ("2006-01-02" dan
// "15:04:05") supaya gampang dibandingkan dan di-query per hari.
type Attendance struct {
	gorm.Model
	CompanyID  uint   `json:"company_id" gorm:"index;not null"`
	EmployeeID uint   `json:"employee_id" gorm:"uniqueIndex:idx_employee_date;not null"`
	Date       string `json:"date" gorm:"uniqueIndex:idx_employee_date;size:10;not null"`

	CheckIn      string  `json:"check_in" gorm:"size:8"`  // jam pertama masuk
	CheckOut     string  `json:"check_out" gorm:"size:8"` // jam terakhir pulang
	WorkingHours float64 `json:"working_hours"`
	Status       string  `json:"status" gorm:"default:present"`
	Source       string  `json:"source" gorm:"default:biometric"` // biometric/manual

	Employee Employee `json:"-" gorm:"foreignKey:EmployeeID"`
}
