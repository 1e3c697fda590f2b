package repository

import (
	"errors"
	"time"

	"hr-biometric-backend/internal/model"

	"gorm.io/gorm"
)

type PunchLogRepository interface {
	Create(log *model.PunchLog) error
	Exists(deviceID uint, terminalUserID string, punchTime time.Time) (bool, error)
	GetUnprocessed(companyID uint) ([]model.PunchLog, error)
	GetUnprocessedByIDs(ids []uint) ([]model.PunchLog, error)
	GetUnmatched(companyID uint) ([]model.PunchLog, error)
	AttachEmployee(logID uint, employeeID uint) error
	MarkProcessed(logID uint, attendanceID uint, at time.Time) error
}

type punchLogRepository struct {
	db *gorm.DB
}

func NewPunchLogRepository(db *gorm.DB) PunchLogRepository {
	return &punchLogRepository{db}
}

func (r *punchLogRepository) Create(log *model.PunchLog) error {
	return r.db.Create(log).Error
}

func (r *punchLogRepository) Exists(deviceID uint, terminalUserID string, punchTime time.Time) (bool, error) {
	var log model.PunchLog
	err := r.db.Select("id").
		Where("device_id = ? AND terminal_user_id = ? AND punch_time = ?",
			deviceID, terminalUserID, punchTime).
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetUnprocessed mengambil log yang sudah terhubung ke pegawai tapi belum
// direkonsiliasi, urut waktu punch.
func (r *punchLogRepository) GetUnprocessed(companyID uint) ([]model.PunchLog, error) {
	var logs []model.PunchLog
	q := r.db.Where("is_processed = ? AND employee_id IS NOT NULL", false)
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	err := q.Order("punch_time").Find(&logs).Error
	return logs, err
}

func (r *punchLogRepository) GetUnprocessedByIDs(ids []uint) ([]model.PunchLog, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var logs []model.PunchLog
	err := r.db.Where("id IN ? AND is_processed = ?", ids, false).
		Order("punch_time").Find(&logs).Error
	return logs, err
}

// GetUnmatched mengambil log tanpa pegawai, untuk diproses ulang setelah
// mapping baru ditambahkan.
func (r *punchLogRepository) GetUnmatched(companyID uint) ([]model.PunchLog, error) {
	var logs []model.PunchLog
	q := r.db.Where("employee_id IS NULL AND is_processed = ?", false)
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	err := q.Order("punch_time").Find(&logs).Error
	return logs, err
}

func (r *punchLogRepository) AttachEmployee(logID uint, employeeID uint) error {
	return r.db.Model(&model.PunchLog{}).Where("id = ?", logID).
		Update("employee_id", employeeID).Error
}

func (r *punchLogRepository) MarkProcessed(logID uint, attendanceID uint, at time.Time) error {
	return r.db.Model(&model.PunchLog{}).Where("id = ?", logID).
		Updates(map[string]interface{}{
			"is_processed":  true,
			"processed_at":  at,
			"attendance_id": attendanceID,
		}).Error
}
