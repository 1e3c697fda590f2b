package usecase

import (
	"errors"
	"fmt"

	"hr-biometric-backend/internal/model"
	"hr-biometric-backend/internal/repository"

	"gorm.io/gorm"
)

// MappingResolver mencari pegawai dari nomor user terminal. Urutan prioritas:
// mapping yang terikat ke perangkat itu dulu, baru mapping company-wide
// (device_id NULL). Di tiap tingkat hanya boleh ada satu mapping aktif.
type MappingResolver struct {
	mappings  repository.MappingRepository
	employees repository.EmployeeRepository
}

func NewMappingResolver(mappings repository.MappingRepository, employees repository.EmployeeRepository) *MappingResolver {
	return &MappingResolver{mappings: mappings, employees: employees}
}

// Resolve mengembalikan pegawai untuk (company, device, terminal user), atau
// nil kalau tidak ada mapping. Pegawai nonaktif dianggap tidak ter-mapping.
func (s *MappingResolver) Resolve(companyID, deviceID uint, terminalUserID string) (*model.Employee, error) {
	scoped, err := s.mappings.GetForDevice(companyID, deviceID, terminalUserID)
	if err != nil {
		return nil, err
	}
	if len(scoped) > 1 {
		return nil, fmt.Errorf("%w: device %d, terminal user %s", ErrDuplicateMapping, deviceID, terminalUserID)
	}
	if len(scoped) == 1 {
		return s.lookup(companyID, scoped[0].EmployeeID)
	}

	wide, err := s.mappings.GetCompanyWide(companyID, terminalUserID)
	if err != nil {
		return nil, err
	}
	if len(wide) > 1 {
		return nil, fmt.Errorf("%w: company %d, terminal user %s", ErrDuplicateMapping, companyID, terminalUserID)
	}
	if len(wide) == 1 {
		return s.lookup(companyID, wide[0].EmployeeID)
	}

	return nil, nil
}

func (s *MappingResolver) lookup(companyID, employeeID uint) (*model.Employee, error) {
	employee, err := s.employees.Lookup(companyID, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, nil
	}
	return employee, nil
}
