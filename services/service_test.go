package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Dasakami/course-wor-ruslan/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway file-backed sqlite database. _txlock=immediate
// makes every transaction take the write lock up front, so concurrent
// reserve attempts serialize the same way they do on postgres row locks.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=10000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Availability{}, &models.Booking{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role, fullName string) models.User {
	t.Helper()

	user := models.User{
		FullName: fullName,
		Email:    uuid.NewString() + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createSlot(t *testing.T, db *gorm.DB, teacherID uuid.UUID, start, end time.Time) models.Availability {
	t.Helper()

	slot := models.Availability{
		TeacherID: teacherID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	}
	require.NoError(t, db.Create(&slot).Error)
	return slot
}

type notifierEvent struct {
	kind  string
	name  string
	email string
	start time.Time
}

type fakeNotifier struct {
	events chan notifierEvent
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{events: make(chan notifierEvent, 32)}
}

func (f *fakeNotifier) NotifyCreated(teacherName, teacherEmail, studentName string, startTime time.Time) {
	f.events <- notifierEvent{kind: "created", name: teacherName, email: teacherEmail, start: startTime}
}

func (f *fakeNotifier) NotifyConfirmed(studentName, studentEmail, teacherName string, startTime time.Time) {
	f.events <- notifierEvent{kind: "confirmed", name: studentName, email: studentEmail, start: startTime}
}

func (f *fakeNotifier) NotifyCancelled(name, email string, startTime time.Time) {
	f.events <- notifierEvent{kind: "cancelled", name: name, email: email, start: startTime}
}

func (f *fakeNotifier) wait(t *testing.T) notifierEvent {
	t.Helper()

	select {
	case ev := <-f.events:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for notification")
		return notifierEvent{}
	}
}
