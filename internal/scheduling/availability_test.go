package scheduling

import (
	"testing"
	"time"

	"healthlink/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

// Monday 09:00-17:00 UTC.
func mondayRules() []entity.WorkingHours {
	return []entity.WorkingHours{
		{
			Weekday:     time.Monday,
			StartMinute: 9 * 60,
			EndMinute:   17 * 60,
			IsAvailable: true,
		},
	}
}

// 2026-01-05 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2026, 1, 5, hour, minute, 0, 0, time.UTC)
}

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		duration int
		wantErr  error
	}{
		{
			name:     "inside window",
			start:    monday(10, 0),
			duration: 30,
		},
		{
			name:     "starts at window open",
			start:    monday(9, 0),
			duration: 30,
		},
		{
			name:     "ends exactly at window close",
			start:    monday(16, 30),
			duration: 30,
		},
		{
			name:     "runs past window close",
			start:    monday(16, 45),
			duration: 30,
			wantErr:  ErrOutsideWorkingHours,
		},
		{
			name:     "starts before window open",
			start:    monday(8, 45),
			duration: 30,
			wantErr:  ErrOutsideWorkingHours,
		},
		{
			name:     "no rule for weekday",
			start:    time.Date(2026, 1, 4, 10, 0, 0, 0, time.UTC), // Sunday
			duration: 30,
			wantErr:  ErrPractitionerUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAvailability(mondayRules(), tt.start, tt.duration)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckAvailabilityUnavailableRule(t *testing.T) {
	rules := mondayRules()
	rules[0].IsAvailable = false

	err := CheckAvailability(rules, monday(10, 0), 30)
	assert.ErrorIs(t, err, ErrPractitionerUnavailable)
}

// The weekday and window are resolved in UTC regardless of the zone the
// caller passed the start time in.
func TestCheckAvailabilityConvertsToUTC(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	// Monday 17:00 in UTC+7 is Monday 10:00 UTC.
	inside := time.Date(2026, 1, 5, 17, 0, 0, 0, jakarta)
	assert.NoError(t, CheckAvailability(mondayRules(), inside, 30))

	// Tuesday 01:00 in UTC+7 is still Monday 18:00 UTC, outside the window.
	outside := time.Date(2026, 1, 6, 1, 0, 0, 0, jakarta)
	assert.ErrorIs(t, CheckAvailability(mondayRules(), outside, 30), ErrOutsideWorkingHours)
}
