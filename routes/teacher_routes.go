package routes

import (
	"github.com/Dasakami/course-wor-ruslan/auth"
	"github.com/Dasakami/course-wor-ruslan/handlers"
	"github.com/Dasakami/course-wor-ruslan/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func TeacherRoutes(app *fiber.App, h *handlers.TeacherHandler, db *gorm.DB, tokens *auth.TokenService) {
	api := app.Group("/api/v1")

	api.Get("/teachers", h.ListTeachers)
	api.Get("/teachers/:teacherId/availability", h.GetTeacherAvailability)

	availability := api.Group("/teacher/availability",
		middleware.Protected(tokens), middleware.CurrentUser(db), middleware.TeacherRequired())
	availability.Post("", h.CreateAvailabilitySlot)
	availability.Get("/me", h.GetMyAvailability)
	availability.Put("/:slotId", h.UpdateAvailabilitySlot)
	availability.Delete("/:slotId", h.DeleteAvailabilitySlot)
}
