package usecase

import (
	"context"
	"testing"

	"healthlink/internal/delivery/dto"
	"healthlink/internal/repository"
	"healthlink/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkingHoursEnv(t *testing.T) (*testEnv, WorkingHoursUsecase) {
	t.Helper()

	env := newTestEnv(t)
	uc := NewWorkingHoursUsecase(
		env.db, testLogger(),
		repository.NewWorkingHoursRepository(),
		repository.NewPractitionerProfileRepository(),
		service.NewAuditService(env.db, testLogger(), repository.NewAuditLogRepository()),
	)
	return env, uc
}

func TestSetWorkingHours(t *testing.T) {
	env, uc := newWorkingHoursEnv(t)
	ctx := context.Background()

	practitionerID := seedPractitioner(t, env.db)

	result, err := uc.SetWorkingHours(ctx, practitionerID, &dto.SetWorkingHoursRequest{
		PractitionerID: practitionerID,
		Rules: []dto.WorkingHoursRule{
			{Weekday: 1, StartTime: "09:00", EndTime: "17:00"},
			{Weekday: 2, StartTime: "13:30", EndTime: "18:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, "09:00", result.Rules[0].StartTime)
	assert.Equal(t, "17:00", result.Rules[0].EndTime)

	// A later call replaces the full rule set rather than merging.
	result, err = uc.SetWorkingHours(ctx, practitionerID, &dto.SetWorkingHoursRequest{
		PractitionerID: practitionerID,
		Rules: []dto.WorkingHoursRule{
			{Weekday: 3, StartTime: "08:00", EndTime: "12:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 3, result.Rules[0].Weekday)
}

func TestSetWorkingHoursValidation(t *testing.T) {
	env, uc := newWorkingHoursEnv(t)
	ctx := context.Background()

	practitionerID := seedPractitioner(t, env.db)

	request := func(rules ...dto.WorkingHoursRule) *dto.SetWorkingHoursRequest {
		return &dto.SetWorkingHoursRequest{PractitionerID: practitionerID, Rules: rules}
	}

	t.Run("duplicate weekday", func(t *testing.T) {
		_, err := uc.SetWorkingHours(ctx, practitionerID, request(
			dto.WorkingHoursRule{Weekday: 1, StartTime: "09:00", EndTime: "12:00"},
			dto.WorkingHoursRule{Weekday: 1, StartTime: "13:00", EndTime: "17:00"},
		))
		assert.ErrorIs(t, err, ErrDuplicateWeekday)
	})

	t.Run("malformed clock", func(t *testing.T) {
		_, err := uc.SetWorkingHours(ctx, practitionerID, request(
			dto.WorkingHoursRule{Weekday: 1, StartTime: "nine", EndTime: "17:00"},
		))
		assert.ErrorIs(t, err, ErrInvalidClockFormat)
	})

	t.Run("clock out of range", func(t *testing.T) {
		_, err := uc.SetWorkingHours(ctx, practitionerID, request(
			dto.WorkingHoursRule{Weekday: 1, StartTime: "09:00", EndTime: "24:30"},
		))
		assert.ErrorIs(t, err, ErrInvalidClockFormat)
	})

	t.Run("window start after end", func(t *testing.T) {
		_, err := uc.SetWorkingHours(ctx, practitionerID, request(
			dto.WorkingHoursRule{Weekday: 1, StartTime: "17:00", EndTime: "09:00"},
		))
		assert.ErrorIs(t, err, ErrInvalidTimeWindow)
	})

	t.Run("unknown practitioner", func(t *testing.T) {
		_, err := uc.SetWorkingHours(ctx, practitionerID, &dto.SetWorkingHoursRequest{
			PractitionerID: uuid.New(),
			Rules:          []dto.WorkingHoursRule{{Weekday: 1, StartTime: "09:00", EndTime: "17:00"}},
		})
		assert.ErrorIs(t, err, ErrPractitionerNotFound)
	})
}

func TestParseClock(t *testing.T) {
	minutes, err := parseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = parseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	minutes, err = parseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, minutes)

	for _, bad := range []string{"", "25:00", "09:75", "noon", "-1:30"} {
		_, err := parseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidClockFormat, bad)
	}
}
