package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{AppointmentStatusScheduled, AppointmentStatusCompleted, true},
		{AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusNoShow, true},
		{AppointmentStatusConfirmed, AppointmentStatusScheduled, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{AppointmentStatusNoShow, AppointmentStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			appointment := Appointment{Status: tt.from}
			assert.Equal(t, tt.allowed, appointment.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentIsActive(t *testing.T) {
	assert.True(t, (&Appointment{Status: AppointmentStatusScheduled}).IsActive())
	assert.True(t, (&Appointment{Status: AppointmentStatusConfirmed}).IsActive())
	assert.False(t, (&Appointment{Status: AppointmentStatusCancelled}).IsActive())
	assert.False(t, (&Appointment{Status: AppointmentStatusCompleted}).IsActive())
	assert.False(t, (&Appointment{Status: AppointmentStatusNoShow}).IsActive())
}

func TestAppointmentOverlaps(t *testing.T) {
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	appointment := Appointment{StartTime: start, DurationMinutes: 30}

	assert.True(t, appointment.Overlaps(start.Add(15*time.Minute), 30))
	assert.True(t, appointment.Overlaps(start.Add(-15*time.Minute), 30))
	assert.True(t, appointment.Overlaps(start.Add(-15*time.Minute), 60))

	// The slot is half-open, so touching boundaries do not overlap.
	assert.False(t, appointment.Overlaps(start.Add(30*time.Minute), 30))
	assert.False(t, appointment.Overlaps(start.Add(-30*time.Minute), 30))
}

func TestAppointmentEnd(t *testing.T) {
	start := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	appointment := Appointment{StartTime: start, DurationMinutes: 45}
	assert.True(t, appointment.End().Equal(start.Add(45*time.Minute)))
}
