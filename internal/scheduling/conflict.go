package scheduling

import (
	"time"

	"github.com/google/uuid"

	"healthlink/internal/domain/entity"
)

// FindConflict returns the first active appointment whose slot intersects
// the half-open candidate slot [start, start+duration), or nil when the
// slot is free. An appointment matching excludeID is skipped so a
// reschedule never conflicts with itself.
//
// Two slots intersect iff existing.start < candidate.end and
// candidate.start < existing.end.
func FindConflict(existing []entity.Appointment, start time.Time, durationMinutes int, excludeID uuid.UUID) *entity.Appointment {
	for i := range existing {
		appt := &existing[i]
		if appt.ID == excludeID {
			continue
		}
		if !appt.IsActive() {
			continue
		}
		if appt.Overlaps(start, durationMinutes) {
			return appt
		}
	}
	return nil
}
