package model

import (
	"time"

	"gorm.io/gorm"
)

// Status jaringan perangkat
const (
	DeviceStatusActive      = "active"
	DeviceStatusOffline     = "offline"
	DeviceStatusMaintenance = "maintenance"
)

type Device struct {
	gorm.Model
	CompanyID    uint   `json:"company_id" gorm:"index;not null"`
	Name         string `json:"name" gorm:"not null"`
	DeviceType   string `json:"device_type" gorm:"default:zkteco"` // zkteco, hikvision, suprema, anviz
	SerialNumber string `json:"serial_number"`
	IPAddress    string `json:"ip_address"`
	Port         int    `json:"port" gorm:"default:4370"`
	Password     string `json:"-"` // Password koneksi perangkat (opsional)
	Location     string `json:"location"`

	Status   string `json:"status" gorm:"default:active"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	// Pengaturan sinkronisasi
	AutoSync     bool `json:"auto_sync" gorm:"default:true"`
	SyncInterval int  `json:"sync_interval" gorm:"default:15"` // menit

	LastSync       *time.Time `json:"last_sync"`
	LastConnection *time.Time `json:"last_connection"`

	Company Company `json:"-" gorm:"foreignKey:CompanyID"`
}

// IsDue melaporkan apakah jadwal sinkronisasi perangkat sudah lewat.
func (d *Device) IsDue(now time.Time) bool {
	if d.LastSync == nil {
		return true
	}
	next := d.LastSync.Add(time.Duration(d.SyncInterval) * time.Minute)
	return !now.Before(next)
}
