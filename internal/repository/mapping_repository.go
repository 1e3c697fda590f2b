package repository

import (
	"hr-biometric-backend/internal/model"

	"gorm.io/gorm"
)

type MappingRepository interface {
	GetForDevice(companyID, deviceID uint, terminalUserID string) ([]model.EmployeeMapping, error)
	GetCompanyWide(companyID uint, terminalUserID string) ([]model.EmployeeMapping, error)
}

type mappingRepository struct {
	db *gorm.DB
}

func NewMappingRepository(db *gorm.DB) MappingRepository {
	return &mappingRepository{db}
}

// GetForDevice mengambil mapping aktif yang terikat ke perangkat tertentu.
func (r *mappingRepository) GetForDevice(companyID, deviceID uint, terminalUserID string) ([]model.EmployeeMapping, error) {
	var mappings []model.EmployeeMapping
	err := r.db.
		Where("company_id = ? AND device_id = ? AND terminal_user_id = ? AND is_active = ?",
			companyID, deviceID, terminalUserID, true).
		Find(&mappings).Error
	return mappings, err
}

// GetCompanyWide mengambil mapping aktif yang berlaku untuk semua perangkat
// perusahaan (device_id NULL).
func (r *mappingRepository) GetCompanyWide(companyID uint, terminalUserID string) ([]model.EmployeeMapping, error) {
	var mappings []model.EmployeeMapping
	err := r.db.
		Where("company_id = ? AND device_id IS NULL AND terminal_user_id = ? AND is_active = ?",
			companyID, terminalUserID, true).
		Find(&mappings).Error
	return mappings, err
}
