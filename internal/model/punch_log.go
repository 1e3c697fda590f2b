package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Jenis punch dari mesin
const (
	PunchTypeIn          = "in"
	PunchTypeOut         = "out"
	PunchTypeBreakOut    = "break_out"
	PunchTypeBreakIn     = "break_in"
	PunchTypeOvertimeIn  = "overtime_in"
	PunchTypeOvertimeOut = "overtime_out"
)

// Jenis verifikasi di mesin
const (
	VerifyTypeFingerprint = "fingerprint"
	VerifyTypePassword    = "password"
	VerifyTypeCard        = "card"
	VerifyTypeFace        = "face"
)

// PunchLog adalah log absensi mentah dari perangkat. Natural key
// (device, terminal_user_id, punch_time) unik supaya fetch ulang tidak
// menduplikasi data. Log tidak pernah dihapus (jejak audit).
type PunchLog struct {
	gorm.Model
	CompanyID      uint      `json:"company_id" gorm:"index;not null"`
	DeviceID       uint      `json:"device_id" gorm:"uniqueIndex:idx_punch_natural;not null"`
	EmployeeID     *uint     `json:"employee_id" gorm:"index"` // nil = belum terhubung ke pegawai
	TerminalUserID string    `json:"terminal_user_id" gorm:"uniqueIndex:idx_punch_natural;size:50;not null"`
	PunchTime      time.Time `json:"punch_time" gorm:"uniqueIndex:idx_punch_natural;not null"`
	PunchType      string    `json:"punch_type" gorm:"default:in"`
	VerifyType     string    `json:"verify_type" gorm:"default:fingerprint"`

	IsProcessed  bool       `json:"is_processed" gorm:"default:false;index"`
	ProcessedAt  *time.Time `json:"processed_at"`
	AttendanceID *uint      `json:"attendance_id"`

	// Payload mentah untuk audit, tidak pernah diparse ulang
	RawData datatypes.JSON `json:"raw_data"`

	Device     Device      `json:"-" gorm:"foreignKey:DeviceID"`
	Employee   *Employee   `json:"-" gorm:"foreignKey:EmployeeID"`
	Attendance *Attendance `json:"-" gorm:"foreignKey:AttendanceID"`
}
