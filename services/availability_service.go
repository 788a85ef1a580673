package services

import (
	"errors"
	"time"

	"github.com/Dasakami/course-wor-ruslan/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityService owns CRUD over a teacher's availability slots. Edits
// and deletes lock the slot row so the is-booked check and the mutation are
// one atomic unit with respect to a concurrent reserve.
type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

func (s *AvailabilityService) Create(teacherID uuid.UUID, startTime, endTime time.Time) (models.Availability, error) {
	if !startTime.Before(endTime) {
		return models.Availability{}, ErrInvalidRange
	}
	if startTime.Before(time.Now().UTC()) {
		return models.Availability{}, ErrPastStart
	}

	slot := models.Availability{
		TeacherID: teacherID,
		StartTime: startTime.UTC(),
		EndTime:   endTime.UTC(),
		IsBooked:  false,
	}
	if err := s.db.Create(&slot).Error; err != nil {
		return models.Availability{}, err
	}
	return slot, nil
}

func (s *AvailabilityService) Update(slotID, callerID uuid.UUID, startTime, endTime *time.Time) (models.Availability, error) {
	var slot models.Availability
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if slot.TeacherID != callerID {
			return ErrForbidden
		}
		if slot.IsBooked {
			return ErrAlreadyBooked
		}

		if startTime != nil {
			slot.StartTime = startTime.UTC()
		}
		if endTime != nil {
			slot.EndTime = endTime.UTC()
		}
		if !slot.StartTime.Before(slot.EndTime) {
			return ErrInvalidRange
		}
		return tx.Save(&slot).Error
	})
	if err != nil {
		return models.Availability{}, err
	}
	return slot, nil
}

func (s *AvailabilityService) Delete(slotID, callerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var slot models.Availability
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if slot.TeacherID != callerID {
			return ErrForbidden
		}
		if slot.IsBooked {
			return ErrAlreadyBooked
		}
		return tx.Delete(&slot).Error
	})
}

// ListPublic returns the slots a student can still reserve: unbooked and in
// the future. Fails with ErrNotFound when teacherID is not a teacher.
func (s *AvailabilityService) ListPublic(teacherID uuid.UUID) ([]models.Availability, error) {
	var teacher models.User
	err := s.db.Where("id = ? AND role = ?", teacherID, models.RoleTeacher).First(&teacher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var slots []models.Availability
	err = s.db.
		Where("teacher_id = ? AND is_booked = ? AND start_time > ?", teacherID, false, time.Now().UTC()).
		Order("start_time asc").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *AvailabilityService) ListOwn(teacherID uuid.UUID) ([]models.Availability, error) {
	var slots []models.Availability
	err := s.db.
		Where("teacher_id = ?", teacherID).
		Order("start_time asc").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
