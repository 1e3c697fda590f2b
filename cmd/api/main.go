package main

import (
	"fmt"

	"hr-biometric-backend/config"
	"hr-biometric-backend/internal/routes"
	"hr-biometric-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("1. Memulai aplikasi... Mencoba load .env...")
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}

	fmt.Println("2. Mencoba koneksi ke Database...")
	config.ConnectDB()
	fmt.Println("3. Database berhasil terhubung! Menyiapkan routes...")

	app := fiber.New()

	// Middleware Global
	app.Use(cors.New())
	app.Use(logger.New())

	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupDeviceRoutes(app, config.DB)
	routes.SetupSyncRoutes(app, config.DB)
	routes.SetupAttendanceRoutes(app, config.DB)

	// Sinkronisasi otomatis perangkat auto-sync yang sudah jatuh tempo
	if config.GetEnv("SYNC_SCHEDULER", "true") == "true" {
		scheduler := usecase.NewScheduler(routes.BuildOrchestrator(config.DB))
		if err := scheduler.Start(); err != nil {
			fmt.Println("Warning: scheduler gagal dimulai:", err)
		}
	}

	port := config.GetEnv("APP_PORT", "3000")
	fmt.Println("4. Server siap! Menunggu request di port :" + port)
	app.Listen(":" + port)
}
