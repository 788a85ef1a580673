package jobs

import (
	"log"
	"time"

	"github.com/Dasakami/course-wor-ruslan/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReleaseStalePendingBookings cancels pending bookings whose slot start time
// has already passed: the teacher never confirmed, nobody can attend, and
// leaving them pending clutters every list view. Each booking and its slot
// are updated in one transaction, same as a manual cancel.
func ReleaseStalePendingBookings(db *gorm.DB) {
	log.Println("Running job: ReleaseStalePendingBookings...")

	var stale []models.Booking
	err := db.
		Joins("JOIN availabilities ON bookings.availability_id = availabilities.id").
		Where("bookings.status = ? AND availabilities.start_time < ?", models.BookingStatusPending, time.Now().UTC()).
		Find(&stale).Error
	if err != nil {
		log.Printf("Error checking for stale pending bookings: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	released := 0
	for _, booking := range stale {
		err := db.Transaction(func(tx *gorm.DB) error {
			var current models.Booking
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, "id = ?", booking.ID).Error; err != nil {
				return err
			}
			// Re-check under the lock; the teacher may have confirmed or a
			// party cancelled since the sweep query ran.
			if current.Status != models.BookingStatusPending {
				return nil
			}

			current.Status = models.BookingStatusCancelled
			if err := tx.Save(&current).Error; err != nil {
				return err
			}

			var slot models.Availability
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", current.AvailabilityID).Error; err != nil {
				return err
			}
			slot.IsBooked = false
			return tx.Save(&slot).Error
		})
		if err != nil {
			log.Printf("Error releasing stale booking %s: %v", booking.ID, err)
			continue
		}
		released++
	}

	log.Printf("✅ Released %d stale pending booking(s).", released)
}
