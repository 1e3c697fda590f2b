package repository

import (
	"hr-biometric-backend/internal/model"

	"gorm.io/gorm"
)

// EmployeeRepository adalah antarmuka baca ke direktori pegawai.
type EmployeeRepository interface {
	Lookup(companyID, employeeID uint) (*model.Employee, error)
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db}
}

func (r *employeeRepository) Lookup(companyID, employeeID uint) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.Where("id = ? AND company_id = ?", employeeID, companyID).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}
