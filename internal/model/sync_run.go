package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status satu kali proses sinkronisasi
const (
	SyncStatusRunning   = "running"
	SyncStatusCompleted = "completed"
	SyncStatusPartial   = "partial"
	SyncStatusFailed    = "failed"
)

// Jenis pemicu sinkronisasi
const (
	SyncTypeManual    = "manual"
	SyncTypeScheduled = "scheduled"
)

// SyncRun adalah catatan audit satu kali sinkronisasi perangkat.
// Dibuat saat mulai, difinalisasi saat selesai, setelah itu tidak diubah.
type SyncRun struct {
	gorm.Model
	RunID     string `json:"run_id" gorm:"size:36;index"` // UUID korelasi
	CompanyID uint   `json:"company_id" gorm:"index;not null"`
	DeviceID  uint   `json:"device_id" gorm:"index;not null"`
	SyncType  string `json:"sync_type" gorm:"default:manual"`
	Status    string `json:"status" gorm:"default:running"`

	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	RecordsFetched   int `json:"records_fetched"`
	RecordsProcessed int `json:"records_processed"`
	RecordsFailed    int `json:"records_failed"`
	NewAttendance    int `json:"new_attendance"`

	ErrorMessage string         `json:"error_message"`
	Details      datatypes.JSON `json:"details"`

	Device Device `json:"-" gorm:"foreignKey:DeviceID"`
}
