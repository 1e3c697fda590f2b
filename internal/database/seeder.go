package database

import (
	"log"

	"hr-biometric-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedAll(db *gorm.DB) {
	// 1. Seed Company
	company := model.Company{Name: "PT Maju Bersama Sejahtera", IsActive: true}
	db.FirstOrCreate(&company, model.Company{Name: company.Name})

	// 2. Seed Akun Admin
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := model.User{
		Name:     "Administrator HR",
		Username: "admin",
		Password: string(hashedPassword),
	}
	result := db.FirstOrCreate(&admin, model.User{Username: admin.Username})
	if result.Error == nil {
		// Paksa update password agar selalu sinkron dengan "admin123" meskipun user sudah ada
		db.Model(&admin).Update("password", string(hashedPassword))
		log.Println("Seeding Admin berhasil!")
	}

	// 3. Seed Pegawai contoh
	employees := []model.Employee{
		{CompanyID: company.ID, FullName: "Budi Santoso", EmployeeNumber: "EMP-001", IsActive: true},
		{CompanyID: company.ID, FullName: "Siti Rahayu", EmployeeNumber: "EMP-002", IsActive: true},
		{CompanyID: company.ID, FullName: "Agus Wijaya", EmployeeNumber: "EMP-003", IsActive: true},
	}
	for i := range employees {
		db.FirstOrCreate(&employees[i], model.Employee{EmployeeNumber: employees[i].EmployeeNumber})
	}

	// 4. Seed Perangkat Absensi
	device := model.Device{
		CompanyID:    company.ID,
		Name:         "Mesin Absensi Lobby",
		DeviceType:   "zkteco",
		SerialNumber: "ZK-2024-0001",
		IPAddress:    "192.168.1.201",
		Port:         4370,
		Location:     "Lobby Lantai 1",
		Status:       model.DeviceStatusActive,
		IsActive:     true,
		AutoSync:     true,
		SyncInterval: 15,
	}
	db.FirstOrCreate(&device, model.Device{SerialNumber: device.SerialNumber})

	// 5. Seed Mapping Pegawai ke Mesin
	// Mapping pertama company-wide (berlaku semua perangkat), sisanya per perangkat
	mappings := []model.EmployeeMapping{
		{CompanyID: company.ID, EmployeeID: employees[0].ID, DeviceID: nil, TerminalUserID: "1", IsEnrolled: true, IsActive: true},
		{CompanyID: company.ID, EmployeeID: employees[1].ID, DeviceID: &device.ID, TerminalUserID: "2", IsEnrolled: true, IsActive: true},
		{CompanyID: company.ID, EmployeeID: employees[2].ID, DeviceID: &device.ID, TerminalUserID: "3", IsEnrolled: false, IsActive: true},
	}
	for i := range mappings {
		db.FirstOrCreate(&mappings[i], model.EmployeeMapping{
			EmployeeID: mappings[i].EmployeeID,
			DeviceID:   mappings[i].DeviceID,
		})
	}

	log.Println("Seeding data master selesai.")
}
