package repository

import (
	"errors"

	"hr-biometric-backend/internal/model"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	GetByEmployeeAndDate(employeeID uint, date string) (*model.Attendance, error)
	Create(attendance *model.Attendance) error
	Update(attendance *model.Attendance) error
	GetRange(employeeID uint, from, to string) ([]model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) GetByEmployeeAndDate(employeeID uint, date string) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.Where("employee_id = ? AND date = ?", employeeID, date).
		First(&attendance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepository) Create(attendance *model.Attendance) error {
	return r.db.Create(attendance).Error
}

func (r *attendanceRepository) Update(attendance *model.Attendance) error {
	return r.db.Save(attendance).Error
}

// GetRange membaca rekap harian satu pegawai di rentang tanggal inklusif.
// Ini antarmuka baca yang dipakai modul payroll.
func (r *attendanceRepository) GetRange(employeeID uint, from, to string) ([]model.Attendance, error) {
	var list []model.Attendance
	q := r.db.Where("employee_id = ?", employeeID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	err := q.Order("date").Find(&list).Error
	return list, err
}
