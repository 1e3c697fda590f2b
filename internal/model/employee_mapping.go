package model

import (
	"time"

	"gorm.io/gorm"
)

// EmployeeMapping menghubungkan pegawai dengan nomor user di mesin absensi.
// DeviceID nil berarti mapping berlaku untuk semua perangkat perusahaan.
type EmployeeMapping struct {
	gorm.Model
	CompanyID      uint   `json:"company_id" gorm:"index;not null"`
	EmployeeID     uint   `json:"employee_id" gorm:"uniqueIndex:idx_employee_device;not null"`
	DeviceID       *uint  `json:"device_id" gorm:"uniqueIndex:idx_employee_device;uniqueIndex:idx_device_terminal"`
	TerminalUserID string `json:"terminal_user_id" gorm:"uniqueIndex:idx_device_terminal;size:50;not null"`

	IsEnrolled bool       `json:"is_enrolled" gorm:"default:false"`
	EnrolledAt *time.Time `json:"enrolled_at"`
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	Notes      string     `json:"notes"`

	Employee Employee `json:"-" gorm:"foreignKey:EmployeeID"`
	Device   *Device  `json:"-" gorm:"foreignKey:DeviceID"`
}
