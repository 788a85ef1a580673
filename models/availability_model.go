package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability is a single non-recurring time window [StartTime, EndTime)
// owned by one teacher. IsBooked is only ever flipped inside the same
// transaction as the booking status change it reflects.
type Availability struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TeacherID uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	IsBooked  bool      `gorm:"not null;default:false" json:"is_booked"`

	Teacher User `gorm:"foreignkey:TeacherID" json:"-"`
}

func (a *Availability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
