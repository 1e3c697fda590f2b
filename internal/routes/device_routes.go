package routes

import (
	"hr-biometric-backend/internal/handler"
	"hr-biometric-backend/internal/middleware"
	"hr-biometric-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDeviceRoutes(app *fiber.App, db *gorm.DB) {
	deviceRepo := repository.NewDeviceRepository(db)
	hdl := handler.NewDeviceHandler(deviceRepo)

	api := app.Group("/api/devices", middleware.Auth)

	api.Get("/", hdl.GetAll)
	api.Post("/", hdl.Create)
	api.Get("/:id", hdl.GetByID)
	api.Put("/:id", hdl.Update)
	api.Post("/:id/test", hdl.TestConnection)
}
