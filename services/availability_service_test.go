package services

import (
	"testing"
	"time"

	"github.com/Dasakami/course-wor-ruslan/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	teacher := createUser(t, db, models.RoleTeacher, "Teacher T")

	now := time.Now().UTC()

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"valid future slot", now.Add(time.Hour), now.Add(2 * time.Hour), nil},
		{"end equals start", now.Add(time.Hour), now.Add(time.Hour), ErrInvalidRange},
		{"end before start", now.Add(2 * time.Hour), now.Add(time.Hour), ErrInvalidRange},
		{"start in the past", now.Add(-time.Hour), now.Add(time.Hour), ErrPastStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := svc.Create(teacher.ID, tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, teacher.ID, slot.TeacherID)
			assert.False(t, slot.IsBooked)
			assert.NotEqual(t, uuid.Nil, slot.ID)
		})
	}
}

func TestAvailabilityCreate_ListedUntilBooked(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	bookings := NewBookingService(db, newFakeNotifier(), true)

	teacher := createUser(t, db, models.RoleTeacher, "Teacher T")
	student := createUser(t, db, models.RoleStudent, "Student S")

	now := time.Now().UTC()
	slot, err := svc.Create(teacher.ID, now.Add(time.Hour), now.Add(2*time.Hour))
	require.NoError(t, err)

	listed, err := svc.ListPublic(teacher.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, slot.ID, listed[0].ID)

	_, err = bookings.Reserve(slot.ID, student.ID)
	require.NoError(t, err)

	listed, err = svc.ListPublic(teacher.ID)
	require.NoError(t, err)
	assert.Empty(t, listed, "a booked slot must disappear from public listing")
}

func TestAvailabilityListPublic_FutureUnbookedOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	teacher := createUser(t, db, models.RoleTeacher, "Teacher T")
	now := time.Now().UTC()

	future := createSlot(t, db, teacher.ID, now.Add(time.Hour), now.Add(2*time.Hour))
	createSlot(t, db, teacher.ID, now.Add(-2*time.Hour), now.Add(-time.Hour))
	booked := createSlot(t, db, teacher.ID, now.Add(3*time.Hour), now.Add(4*time.Hour))
	require.NoError(t, db.Model(&models.Availability{}).Where("id = ?", booked.ID).Update("is_booked", true).Error)

	listed, err := svc.ListPublic(teacher.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, future.ID, listed[0].ID)
}

func TestAvailabilityListPublic_UnknownTeacher(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	student := createUser(t, db, models.RoleStudent, "Student S")

	_, err := svc.ListPublic(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	// A real user who is not a teacher is also not found.
	_, err = svc.ListPublic(student.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailabilityUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	teacher := createUser(t, db, models.RoleTeacher, "Teacher T")
	other := createUser(t, db, models.RoleTeacher, "Other Teacher")
	now := time.Now().UTC()
	slot := createSlot(t, db, teacher.ID, now.Add(time.Hour), now.Add(2*time.Hour))

	newStart := now.Add(3 * time.Hour)
	newEnd := now.Add(4 * time.Hour)

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(uuid.New(), teacher.ID, &newStart, &newEnd)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("not the owner", func(t *testing.T) {
		_, err := svc.Update(slot.ID, other.ID, &newStart, &newEnd)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("invalid resulting range", func(t *testing.T) {
		bad := now.Add(30 * time.Minute)
		_, err := svc.Update(slot.ID, teacher.ID, &newStart, &bad)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("partial update keeps the other bound", func(t *testing.T) {
		updated, err := svc.Update(slot.ID, teacher.ID, nil, &newEnd)
		require.NoError(t, err)
		assert.Equal(t, slot.StartTime.Unix(), updated.StartTime.Unix())
		assert.Equal(t, newEnd.Unix(), updated.EndTime.Unix())
	})

	t.Run("booked slot is frozen", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Availability{}).Where("id = ?", slot.ID).Update("is_booked", true).Error)
		_, err := svc.Update(slot.ID, teacher.ID, &newStart, &newEnd)
		assert.ErrorIs(t, err, ErrAlreadyBooked)
	})
}

func TestAvailabilityDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	teacher := createUser(t, db, models.RoleTeacher, "Teacher T")
	other := createUser(t, db, models.RoleTeacher, "Other Teacher")
	now := time.Now().UTC()

	t.Run("owner deletes unbooked slot", func(t *testing.T) {
		slot := createSlot(t, db, teacher.ID, now.Add(time.Hour), now.Add(2*time.Hour))
		require.NoError(t, svc.Delete(slot.ID, teacher.ID))

		var count int64
		require.NoError(t, db.Model(&models.Availability{}).Where("id = ?", slot.ID).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	t.Run("not the owner", func(t *testing.T) {
		slot := createSlot(t, db, teacher.ID, now.Add(time.Hour), now.Add(2*time.Hour))
		assert.ErrorIs(t, svc.Delete(slot.ID, other.ID), ErrForbidden)
	})

	t.Run("booked slot", func(t *testing.T) {
		slot := createSlot(t, db, teacher.ID, now.Add(time.Hour), now.Add(2*time.Hour))
		require.NoError(t, db.Model(&models.Availability{}).Where("id = ?", slot.ID).Update("is_booked", true).Error)
		assert.ErrorIs(t, svc.Delete(slot.ID, teacher.ID), ErrAlreadyBooked)
	})

	t.Run("not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(uuid.New(), teacher.ID), ErrNotFound)
	})
}
