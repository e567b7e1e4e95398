package scheduling

import (
	"testing"
	"time"

	"healthlink/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConflict(t *testing.T) {
	at := func(hour, minute int) time.Time {
		return time.Date(2026, 1, 5, hour, minute, 0, 0, time.UTC)
	}

	booked := entity.Appointment{
		ID:              uuid.New(),
		StartTime:       at(10, 0),
		DurationMinutes: 30,
		Status:          entity.AppointmentStatusScheduled,
	}
	existing := []entity.Appointment{booked}

	t.Run("overlapping slot conflicts", func(t *testing.T) {
		conflict := FindConflict(existing, at(10, 15), 30, uuid.Nil)
		require.NotNil(t, conflict)
		assert.Equal(t, booked.ID, conflict.ID)
	})

	t.Run("candidate containing the booked slot conflicts", func(t *testing.T) {
		assert.NotNil(t, FindConflict(existing, at(9, 45), 60, uuid.Nil))
	})

	t.Run("back to back after is free", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, at(10, 30), 30, uuid.Nil))
	})

	t.Run("back to back before is free", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, at(9, 30), 30, uuid.Nil))
	})

	t.Run("excluded appointment is skipped", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, at(10, 15), 30, booked.ID))
	})

	t.Run("inactive appointments do not block", func(t *testing.T) {
		cancelled := booked
		cancelled.Status = entity.AppointmentStatusCancelled
		completed := booked
		completed.ID = uuid.New()
		completed.Status = entity.AppointmentStatusCompleted

		assert.Nil(t, FindConflict([]entity.Appointment{cancelled, completed}, at(10, 15), 30, uuid.Nil))
	})

	t.Run("confirmed appointments block", func(t *testing.T) {
		confirmed := booked
		confirmed.Status = entity.AppointmentStatusConfirmed
		assert.NotNil(t, FindConflict([]entity.Appointment{confirmed}, at(10, 15), 30, uuid.Nil))
	})
}
