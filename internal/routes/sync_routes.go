package routes

import (
	"hr-biometric-backend/config"
	"hr-biometric-backend/internal/handler"
	"hr-biometric-backend/internal/middleware"
	"hr-biometric-backend/internal/repository"
	"hr-biometric-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BuildOrchestrator merakit seluruh pipeline sinkronisasi di atas satu
// koneksi database. Dipakai route sync, scheduler, dan CLI.
func BuildOrchestrator(db *gorm.DB) *usecase.Orchestrator {
	deviceRepo := repository.NewDeviceRepository(db)
	runRepo := repository.NewSyncRunRepository(db)
	logRepo := repository.NewPunchLogRepository(db)
	mappingRepo := repository.NewMappingRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	resolver := usecase.NewMappingResolver(mappingRepo, employeeRepo)
	ingestion := usecase.NewIngestion(logRepo, resolver)
	reconciler := usecase.NewReconciler(logRepo, attendanceRepo)

	workers := config.GetEnvAsInt("SYNC_WORKERS", 4)
	return usecase.NewOrchestrator(deviceRepo, runRepo, logRepo,
		ingestion, reconciler, resolver, usecase.DefaultTerminalFactory, workers)
}

func SetupSyncRoutes(app *fiber.App, db *gorm.DB) {
	runRepo := repository.NewSyncRunRepository(db)
	hdl := handler.NewSyncHandler(BuildOrchestrator(db), runRepo)

	api := app.Group("/api/sync", middleware.Auth)

	api.Post("/run", hdl.Run)
	api.Post("/reprocess", hdl.Reprocess)
	api.Get("/runs", hdl.GetRuns)

	// Sinkronisasi satu perangkat langsung dari halaman perangkat
	app.Post("/api/devices/:id/sync", middleware.Auth, hdl.RunDevice)
}
