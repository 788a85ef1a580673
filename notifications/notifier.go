package notifications

import (
	"fmt"
	"time"
)

// Notifier is invoked after a booking transition has committed. All three
// calls are best-effort: implementations must never block or fail the
// transition that triggered them.
type Notifier interface {
	NotifyCreated(teacherName, teacherEmail, studentName string, startTime time.Time)
	NotifyConfirmed(studentName, studentEmail, teacherName string, startTime time.Time)
	NotifyCancelled(name, email string, startTime time.Time)
}

type EmailNotifier struct{}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{}
}

func (n *EmailNotifier) NotifyCreated(teacherName, teacherEmail, studentName string, startTime time.Time) {
	SendEmail(
		teacherName,
		teacherEmail,
		"New Booking Request",
		fmt.Sprintf("<h1>New Booking Request</h1><p>%s has requested a booking for %s. Please confirm or cancel it.</p>",
			studentName, startTime.Format(time.RFC1123)),
	)
}

func (n *EmailNotifier) NotifyConfirmed(studentName, studentEmail, teacherName string, startTime time.Time) {
	SendEmail(
		studentName,
		studentEmail,
		"Booking Confirmed",
		fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your booking with %s for %s has been confirmed.</p>",
			teacherName, startTime.Format(time.RFC1123)),
	)
}

func (n *EmailNotifier) NotifyCancelled(name, email string, startTime time.Time) {
	SendEmail(
		name,
		email,
		"Booking Cancelled",
		fmt.Sprintf("<h1>Booking Cancelled</h1><p>The booking for %s has been cancelled.</p>",
			startTime.Format(time.RFC1123)),
	)
}
