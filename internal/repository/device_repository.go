package repository

import (
	"time"

	"hr-biometric-backend/internal/model"

	"gorm.io/gorm"
)

type DeviceRepository interface {
	Create(device *model.Device) error
	GetByID(id uint) (*model.Device, error)
	GetAll(companyID uint) ([]model.Device, error)
	GetSyncable(companyID uint) ([]model.Device, error)
	Update(device *model.Device) error
	UpdateStatus(id uint, status string) error
	MarkConnected(id uint, at time.Time) error
	MarkSynced(id uint, at time.Time) error
}

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db}
}

func (r *deviceRepository) Create(device *model.Device) error {
	return r.db.Create(device).Error
}

func (r *deviceRepository) GetByID(id uint) (*model.Device, error) {
	var device model.Device
	err := r.db.First(&device, id).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) GetAll(companyID uint) ([]model.Device, error) {
	var devices []model.Device
	q := r.db.Order("name")
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	err := q.Find(&devices).Error
	return devices, err
}

// GetSyncable mengambil perangkat aktif yang boleh disinkronkan. Perangkat
// offline ikut disertakan supaya dicoba lagi di siklus berikutnya; yang
// berstatus maintenance dilewati.
func (r *deviceRepository) GetSyncable(companyID uint) ([]model.Device, error) {
	var devices []model.Device
	q := r.db.Where("is_active = ? AND status IN ?", true,
		[]string{model.DeviceStatusActive, model.DeviceStatusOffline})
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	err := q.Order("name").Find(&devices).Error
	return devices, err
}

func (r *deviceRepository) Update(device *model.Device) error {
	return r.db.Save(device).Error
}

func (r *deviceRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.Device{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *deviceRepository) MarkConnected(id uint, at time.Time) error {
	return r.db.Model(&model.Device{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          model.DeviceStatusActive,
			"last_connection": at,
		}).Error
}

func (r *deviceRepository) MarkSynced(id uint, at time.Time) error {
	return r.db.Model(&model.Device{}).Where("id = ?", id).
		Update("last_sync", at).Error
}
