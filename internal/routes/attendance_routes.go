package routes

import (
	"hr-biometric-backend/internal/handler"
	"hr-biometric-backend/internal/middleware"
	"hr-biometric-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB) {
	attendanceRepo := repository.NewAttendanceRepository(db)
	logRepo := repository.NewPunchLogRepository(db)
	hdl := handler.NewAttendanceHandler(attendanceRepo, logRepo)

	api := app.Group("/api/attendance", middleware.Auth)
	api.Get("/", hdl.GetRange)

	app.Get("/api/logs/unprocessed", middleware.Auth, hdl.GetUnprocessedLogs)
}
