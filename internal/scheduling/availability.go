// Package scheduling holds the slot validation rules for appointments.
//
// All slot math is done in UTC: the weekday and minute-of-day of a
// requested start are resolved after converting to UTC, and working-hour
// rules are declared in UTC. Windows never wrap across midnight.
package scheduling

import (
	"errors"
	"time"

	"healthlink/internal/domain/entity"
)

var (
	// ErrPractitionerUnavailable means no usable working-hour rule exists
	// for the requested weekday.
	ErrPractitionerUnavailable = errors.New("practitioner is not available on this day")

	// ErrOutsideWorkingHours means the requested slot does not fit inside
	// the practitioner's declared window for that weekday.
	ErrOutsideWorkingHours = errors.New("requested slot is outside working hours")
)

// CheckAvailability validates the half-open slot [start, start+duration)
// against the practitioner's working-hour rules.
func CheckAvailability(rules []entity.WorkingHours, start time.Time, durationMinutes int) error {
	utcStart := start.UTC()
	weekday := utcStart.Weekday()

	var rule *entity.WorkingHours
	for i := range rules {
		if rules[i].Weekday == weekday {
			rule = &rules[i]
			break
		}
	}

	if rule == nil || !rule.IsAvailable {
		return ErrPractitionerUnavailable
	}

	startMinute := utcStart.Hour()*60 + utcStart.Minute()
	endMinute := startMinute + durationMinutes

	// End is boundary-inclusive: a slot ending exactly at the window end
	// is allowed.
	if startMinute < rule.StartMinute || endMinute > rule.EndMinute {
		return ErrOutsideWorkingHours
	}

	return nil
}
