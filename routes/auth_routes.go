package routes

import (
	"github.com/Dasakami/course-wor-ruslan/auth"
	"github.com/Dasakami/course-wor-ruslan/handlers"
	"github.com/Dasakami/course-wor-ruslan/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler, db *gorm.DB, tokens *auth.TokenService) {
	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/refresh", h.Refresh)
	authGroup.Get("/users/me", middleware.Protected(tokens), middleware.CurrentUser(db), h.GetMe)
}
