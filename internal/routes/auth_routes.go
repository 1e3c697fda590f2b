package routes

import (
	"hr-biometric-backend/internal/handler"
	"hr-biometric-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	userRepo := repository.NewUserRepository(db)
	hdl := handler.NewAuthHandler(userRepo)

	api := app.Group("/api/auth")
	api.Post("/login", hdl.Login)
}
