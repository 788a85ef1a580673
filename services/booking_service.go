package services

import (
	"errors"
	"log"
	"time"

	"github.com/Dasakami/course-wor-ruslan/models"
	"github.com/Dasakami/course-wor-ruslan/notifications"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService is the state machine over a booking and its slot.
//
// Reserve, Confirm and Cancel each run the precondition check and the
// mutation inside one transaction, with the affected rows locked, so two
// concurrent calls on the same slot or booking cannot both pass the check.
// The slot's IsBooked flag is only ever written in the same transaction as
// the booking status it mirrors.
//
// strictStatus gates the transitions the original system left unguarded:
// with it on, Confirm is legal only from pending and Cancel rejects a
// booking that is already cancelled.
type BookingService struct {
	db           *gorm.DB
	notifier     notifications.Notifier
	strictStatus bool
}

func NewBookingService(db *gorm.DB, notifier notifications.Notifier, strictStatus bool) *BookingService {
	return &BookingService{
		db:           db,
		notifier:     notifier,
		strictStatus: strictStatus,
	}
}

// BookingDetails is a booking joined with its slot's time range and both
// parties' display names, the shape list endpoints return.
type BookingDetails struct {
	ID             uuid.UUID `json:"id"`
	AvailabilityID uuid.UUID `json:"availability_id"`
	StudentID      uuid.UUID `json:"student_id"`
	TeacherID      uuid.UUID `json:"teacher_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	TeacherName    string    `json:"teacher_name"`
	StudentName    string    `json:"student_name"`
}

// Reserve books a free future slot for a student. The slot row is locked
// for the duration of the check-then-set, so N concurrent reserves on one
// slot yield exactly one booking.
func (s *BookingService) Reserve(slotID, studentID uuid.UUID) (models.Booking, error) {
	var booking models.Booking
	var slot models.Availability

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if slot.IsBooked {
			return ErrAlreadyBooked
		}
		if slot.StartTime.Before(time.Now().UTC()) {
			return ErrPastSlot
		}

		booking = models.Booking{
			AvailabilityID: slot.ID,
			StudentID:      studentID,
			TeacherID:      slot.TeacherID,
			Status:         models.BookingStatusPending,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		slot.IsBooked = true
		return tx.Save(&slot).Error
	})
	if err != nil {
		return models.Booking{}, err
	}

	go s.notifyCreated(booking.ID, slot.StartTime)

	return booking, nil
}

// Confirm moves a booking to confirmed. Only the booking's teacher may
// confirm; with the strict guard enabled only a pending booking can be.
func (s *BookingService) Confirm(bookingID, callerID uuid.UUID) (models.Booking, error) {
	var booking models.Booking

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if booking.TeacherID != callerID {
			return ErrForbidden
		}
		if s.strictStatus && booking.Status != models.BookingStatusPending {
			return ErrInvalidStatus
		}

		booking.Status = models.BookingStatusConfirmed
		return tx.Save(&booking).Error
	})
	if err != nil {
		return models.Booking{}, err
	}

	go s.notifyConfirmed(booking.ID)

	return booking, nil
}

// Cancel moves a booking to cancelled and frees its slot, in one
// transaction. Either party may cancel, regardless of confirmation.
func (s *BookingService) Cancel(bookingID, callerID uuid.UUID) (models.Booking, error) {
	var booking models.Booking
	var slot models.Availability

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if booking.StudentID != callerID && booking.TeacherID != callerID {
			return ErrForbidden
		}
		if s.strictStatus && booking.Status == models.BookingStatusCancelled {
			return ErrInvalidStatus
		}

		booking.Status = models.BookingStatusCancelled
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", booking.AvailabilityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Slot gone (teacher deleted the account); the booking
				// record still flips to cancelled.
				return nil
			}
			return err
		}
		slot.IsBooked = false
		return tx.Save(&slot).Error
	})
	if err != nil {
		return models.Booking{}, err
	}

	go s.notifyCancelled(booking.ID, callerID)

	return booking, nil
}

// ListForUser returns the bookings the user participates in: as the teacher
// when role is teacher, as the student otherwise.
func (s *BookingService) ListForUser(userID uuid.UUID, role string) ([]BookingDetails, error) {
	column := "student_id"
	if role == models.RoleTeacher {
		column = "teacher_id"
	}

	var bookings []models.Booking
	err := s.db.
		Preload("Availability").
		Preload("Student").
		Preload("Teacher").
		Where(column+" = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	details := make([]BookingDetails, 0, len(bookings))
	for _, b := range bookings {
		details = append(details, BookingDetails{
			ID:             b.ID,
			AvailabilityID: b.AvailabilityID,
			StudentID:      b.StudentID,
			TeacherID:      b.TeacherID,
			Status:         b.Status,
			CreatedAt:      b.CreatedAt,
			StartTime:      b.Availability.StartTime,
			EndTime:        b.Availability.EndTime,
			TeacherName:    b.Teacher.FullName,
			StudentName:    b.Student.FullName,
		})
	}
	return details, nil
}

func (s *BookingService) loadParties(bookingID uuid.UUID) (models.Booking, error) {
	var booking models.Booking
	err := s.db.
		Preload("Availability").
		Preload("Student").
		Preload("Teacher").
		First(&booking, "id = ?", bookingID).Error
	return booking, err
}

func (s *BookingService) notifyCreated(bookingID uuid.UUID, startTime time.Time) {
	booking, err := s.loadParties(bookingID)
	if err != nil {
		log.Printf("🔥 Failed to load booking %s for notification: %v", bookingID, err)
		return
	}
	s.notifier.NotifyCreated(booking.Teacher.FullName, booking.Teacher.Email, booking.Student.FullName, startTime)
}

func (s *BookingService) notifyConfirmed(bookingID uuid.UUID) {
	booking, err := s.loadParties(bookingID)
	if err != nil {
		log.Printf("🔥 Failed to load booking %s for notification: %v", bookingID, err)
		return
	}
	s.notifier.NotifyConfirmed(booking.Student.FullName, booking.Student.Email, booking.Teacher.FullName, booking.Availability.StartTime)
}

// notifyCancelled goes to the party that did not cancel.
func (s *BookingService) notifyCancelled(bookingID, cancelledBy uuid.UUID) {
	booking, err := s.loadParties(bookingID)
	if err != nil {
		log.Printf("🔥 Failed to load booking %s for notification: %v", bookingID, err)
		return
	}
	other := booking.Teacher
	if cancelledBy == booking.TeacherID {
		other = booking.Student
	}
	s.notifier.NotifyCancelled(other.FullName, other.Email, booking.Availability.StartTime)
}
