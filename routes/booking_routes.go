package routes

import (
	"github.com/Dasakami/course-wor-ruslan/auth"
	"github.com/Dasakami/course-wor-ruslan/handlers"
	"github.com/Dasakami/course-wor-ruslan/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func BookingRoutes(app *fiber.App, h *handlers.BookingHandler, db *gorm.DB, tokens *auth.TokenService) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected(tokens), middleware.CurrentUser(db))
	booking.Post("", middleware.StudentRequired(), h.CreateBooking)
	booking.Get("/me", h.GetMyBookings)
	booking.Put("/:bookingId/confirm", middleware.TeacherRequired(), h.ConfirmBooking)
	booking.Delete("/:bookingId", h.CancelBooking)

	students := api.Group("/students", middleware.Protected(tokens), middleware.CurrentUser(db), middleware.StudentRequired())
	students.Get("/my-bookings", h.GetMyBookings)
}
