package config

import (
	"fmt"
	"log"

	"hr-biometric-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	// Format: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=UTC
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASS", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "hr_biometric_db"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Auto Migration: membuat tabel otomatis berdasarkan struct di folder model
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.Company{})
	db.AutoMigrate(&model.Employee{})
	db.AutoMigrate(&model.Device{})
	db.AutoMigrate(&model.EmployeeMapping{})
	db.AutoMigrate(&model.PunchLog{})
	db.AutoMigrate(&model.Attendance{})
	db.AutoMigrate(&model.SyncRun{})

	DB = db
}
