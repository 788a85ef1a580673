package handlers

import (
	"errors"
	"time"

	"github.com/Dasakami/course-wor-ruslan/models"
	"github.com/Dasakami/course-wor-ruslan/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherHandler struct {
	DB           *gorm.DB
	Availability *services.AvailabilityService
}

type CreateAvailabilityRequest struct {
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type UpdateAvailabilityRequest struct {
	StartTime *string `json:"start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   *string `json:"end_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (h *TeacherHandler) ListTeachers(c *fiber.Ctx) error {
	var teachers []models.User
	if err := h.DB.Where("role = ?", models.RoleTeacher).Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	response := make([]UserResponse, 0, len(teachers))
	for _, t := range teachers {
		response = append(response, toUserResponse(t))
	}
	return c.JSON(response)
}

func (h *TeacherHandler) GetTeacherAvailability(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	slots, err := h.Availability.ListPublic(teacherID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(slots)
}

func (h *TeacherHandler) CreateAvailabilitySlot(c *fiber.Ctx) error {
	teacher := c.Locals("currentUser").(models.User)

	var req CreateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	slot, err := h.Availability.Create(teacher.ID, startTime, endTime)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRange):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End time must be after start time"})
		case errors.Is(err, services.ErrPastStart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot create availability in the past"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create availability slot"})
	}

	return c.Status(fiber.StatusCreated).JSON(slot)
}

func (h *TeacherHandler) GetMyAvailability(c *fiber.Ctx) error {
	teacher := c.Locals("currentUser").(models.User)

	slots, err := h.Availability.ListOwn(teacher.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(slots)
}

func (h *TeacherHandler) UpdateAvailabilitySlot(c *fiber.Ctx) error {
	teacher := c.Locals("currentUser").(models.User)
	slotID, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability not found"})
	}

	var req UpdateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var startTime, endTime *time.Time
	if req.StartTime != nil {
		t, _ := time.Parse(time.RFC3339, *req.StartTime)
		startTime = &t
	}
	if req.EndTime != nil {
		t, _ := time.Parse(time.RFC3339, *req.EndTime)
		endTime = &t
	}

	slot, err := h.Availability.Update(slotID, teacher.ID, startTime, endTime)
	if err != nil {
		return availabilityError(c, err, "update")
	}
	return c.JSON(slot)
}

func (h *TeacherHandler) DeleteAvailabilitySlot(c *fiber.Ctx) error {
	teacher := c.Locals("currentUser").(models.User)
	slotID, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability not found"})
	}

	if err := h.Availability.Delete(slotID, teacher.ID); err != nil {
		return availabilityError(c, err, "delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func availabilityError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot " + action + " another teacher's availability"})
	case errors.Is(err, services.ErrAlreadyBooked):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot " + action + " a booked slot"})
	case errors.Is(err, services.ErrInvalidRange):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End time must be after start time"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
}
