package handlers

import (
	"errors"

	"github.com/Dasakami/course-wor-ruslan/models"
	"github.com/Dasakami/course-wor-ruslan/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BookingHandler struct {
	Bookings *services.BookingService
}

type CreateBookingRequest struct {
	AvailabilityID string `json:"availability_id" validate:"required,uuid"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	student := c.Locals("currentUser").(models.User)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slotID, _ := uuid.Parse(req.AvailabilityID)

	booking, err := h.Bookings.Reserve(slotID, student.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability slot not found"})
		case errors.Is(err, services.ErrAlreadyBooked):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This slot is already booked"})
		case errors.Is(err, services.ErrPastSlot):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot book a time slot in the past"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *BookingHandler) GetMyBookings(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(models.User)

	bookings, err := h.Bookings.ListForUser(user.ID, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(bookings)
}

func (h *BookingHandler) ConfirmBooking(c *fiber.Ctx) error {
	teacher := c.Locals("currentUser").(models.User)
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	booking, err := h.Bookings.Confirm(bookingID, teacher.ID)
	if err != nil {
		return bookingError(c, err, "confirm")
	}
	return c.JSON(booking)
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(models.User)
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if _, err := h.Bookings.Cancel(bookingID, user.ID); err != nil {
		return bookingError(c, err, "cancel")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func bookingError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to " + action + " this booking"})
	case errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Booking status does not allow this transition"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
}
