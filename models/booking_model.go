package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking ties one student to one availability slot. TeacherID is copied
// from the slot at reservation time; all three references are immutable
// after creation, only Status moves.
type Booking struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AvailabilityID uuid.UUID `gorm:"not null;index" json:"availability_id"`
	StudentID      uuid.UUID `gorm:"not null;index" json:"student_id"`
	TeacherID      uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	Status         string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	Availability Availability `gorm:"foreignkey:AvailabilityID" json:"-"`
	Student      User         `gorm:"foreignkey:StudentID" json:"-"`
	Teacher      User         `gorm:"foreignkey:TeacherID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
