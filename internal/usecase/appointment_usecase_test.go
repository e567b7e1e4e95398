package usecase

import (
	"context"
	"testing"
	"time"

	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
	"healthlink/internal/repository"
	"healthlink/internal/scheduling"
	"healthlink/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// busyLocker simulates another request holding the practitioner lock.
type busyLocker struct{}

func (l *busyLocker) WithPractitionerLock(ctx context.Context, practitionerID uuid.UUID, fn func(ctx context.Context) error) error {
	return service.ErrLockNotAcquired
}

func createRequest(practitionerID uuid.UUID, start time.Time) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		PractitionerID: practitionerID,
		StartTime:      start.Format(time.RFC3339),
		Reason:         "routine checkup",
	}
}

func TestCreateAppointment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	start := futureAt(10, 0)
	result, err := env.appointments.Create(ctx, patientID, createRequest(practitionerID, start))
	require.NoError(t, err)

	assert.Equal(t, string(entity.AppointmentStatusScheduled), result.Status)
	assert.Equal(t, 30, result.DurationMinutes)
	assert.True(t, result.StartTime.Equal(start))
	assert.True(t, result.EndTime.Equal(start.Add(30*time.Minute)))
	assert.Equal(t, []string{service.EventAppointmentCreated}, env.dispatcher.eventTypes())
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	otherPatientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	_, err := env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(10, 0)))
	require.NoError(t, err)

	// Overlapping slot is rejected, even for a different patient.
	_, err = env.appointments.Create(ctx, otherPatientID, createRequest(practitionerID, futureAt(10, 15)))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Back to back is fine, the slot boundary is half open.
	_, err = env.appointments.Create(ctx, otherPatientID, createRequest(practitionerID, futureAt(10, 30)))
	assert.NoError(t, err)
}

func TestCreateAppointmentOutsideWorkingHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	_, err := env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(18, 0)))
	assert.ErrorIs(t, err, scheduling.ErrOutsideWorkingHours)
}

func TestCreateAppointmentUnavailableWeekday(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)

	// Seed every weekday except the one the slot falls on.
	start := futureAt(10, 0)
	var weekdays []time.Weekday
	for _, wd := range allWeekdays() {
		if wd != start.Weekday() {
			weekdays = append(weekdays, wd)
		}
	}
	practitionerID := seedPractitioner(t, env.db, weekdays...)

	_, err := env.appointments.Create(ctx, patientID, createRequest(practitionerID, start))
	assert.ErrorIs(t, err, scheduling.ErrPractitionerUnavailable)
}

func TestCreateAppointmentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	t.Run("malformed start time", func(t *testing.T) {
		request := createRequest(practitionerID, futureAt(10, 0))
		request.StartTime = "tomorrow at noon"
		_, err := env.appointments.Create(ctx, patientID, request)
		assert.ErrorIs(t, err, ErrInvalidStartTime)
	})

	t.Run("start time in the past", func(t *testing.T) {
		request := createRequest(practitionerID, time.Now().UTC().AddDate(0, 0, -1))
		_, err := env.appointments.Create(ctx, patientID, request)
		assert.ErrorIs(t, err, ErrStartTimeInPast)
	})

	t.Run("duration below minimum", func(t *testing.T) {
		request := createRequest(practitionerID, futureAt(10, 0))
		tooShort := 10
		request.DurationMinutes = &tooShort
		_, err := env.appointments.Create(ctx, patientID, request)
		assert.ErrorIs(t, err, ErrDurationTooShort)
	})

	t.Run("unknown practitioner", func(t *testing.T) {
		_, err := env.appointments.Create(ctx, patientID, createRequest(uuid.New(), futureAt(10, 0)))
		assert.ErrorIs(t, err, ErrPractitionerNotFound)
	})

	t.Run("unknown patient", func(t *testing.T) {
		_, err := env.appointments.Create(ctx, uuid.New(), createRequest(practitionerID, futureAt(10, 0)))
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestCreateAppointmentLockBusy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	busy := NewAppointmentUsecase(
		env.db, testLogger(), testSchedulingConfig(),
		repository.NewAppointmentRepository(),
		repository.NewPatientProfileRepository(),
		repository.NewPractitionerProfileRepository(),
		NewConsistencyCoordinator(testLogger(), repository.NewReferralRepository()),
		&busyLocker{}, env.dispatcher, service.NewAuditService(env.db, testLogger(), repository.NewAuditLogRepository()),
	)

	_, err := busy.Create(ctx, patientID, createRequest(practitionerID, futureAt(10, 0)))
	assert.ErrorIs(t, err, ErrSlotBusy)
}

func TestCreateAppointmentFromReferral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)
	referral := seedReferral(t, env.db, patientID, referringID, &practitionerID)

	request := createRequest(practitionerID, futureAt(10, 0))
	request.ReferralID = &referral.ID

	result, err := env.appointments.Create(ctx, patientID, request)
	require.NoError(t, err)

	updated := env.loadReferral(t, referral.ID)
	assert.Equal(t, entity.ReferralStatusAccepted, updated.Status)
	assert.True(t, updated.AppointmentCreated)
	require.NotNil(t, updated.AppointmentID)
	assert.Equal(t, result.ID, *updated.AppointmentID)
}

func TestCreateAppointmentReferralAlreadyLinked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)
	referral := seedReferral(t, env.db, patientID, referringID, &practitionerID)

	request := createRequest(practitionerID, futureAt(10, 0))
	request.ReferralID = &referral.ID
	_, err := env.appointments.Create(ctx, patientID, request)
	require.NoError(t, err)

	second := createRequest(practitionerID, futureAt(11, 0))
	second.ReferralID = &referral.ID
	_, err = env.appointments.Create(ctx, patientID, second)
	assert.ErrorIs(t, err, ErrReferralAlreadyLinked)

	// The rejected booking must not leave an appointment behind.
	var count int64
	require.NoError(t, env.db.Model(&entity.Appointment{}).Where("practitioner_id = ?", practitionerID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateAppointmentReferralPatientMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	otherPatientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)
	referral := seedReferral(t, env.db, otherPatientID, referringID, &practitionerID)

	request := createRequest(practitionerID, futureAt(10, 0))
	request.ReferralID = &referral.ID

	_, err := env.appointments.Create(ctx, patientID, request)
	assert.ErrorIs(t, err, ErrReferralPatientMismatch)
}

func TestCancelAppointmentReopensReferral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)
	referral := seedReferral(t, env.db, patientID, referringID, &practitionerID)

	request := createRequest(practitionerID, futureAt(10, 0))
	request.ReferralID = &referral.ID
	created, err := env.appointments.Create(ctx, patientID, request)
	require.NoError(t, err)

	result, err := env.appointments.Cancel(ctx, patientID, entity.RoleIDPatient, created.ID, &dto.CancelAppointmentRequest{Reason: "schedule change"})
	require.NoError(t, err)

	assert.Equal(t, string(entity.AppointmentStatusCancelled), result.Status)
	assert.Equal(t, entity.CancelledByPatient, result.CancelledBy)
	assert.NotNil(t, result.CancelledAt)

	// The referral goes back to pending so the patient can rebook.
	updated := env.loadReferral(t, referral.ID)
	assert.Equal(t, entity.ReferralStatusPending, updated.Status)
	assert.False(t, updated.AppointmentCreated)
	assert.Nil(t, updated.AppointmentID)

	assert.Contains(t, env.dispatcher.eventTypes(), service.EventAppointmentCancelled)

	// The slot is free again.
	_, err = env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(10, 0)))
	assert.NoError(t, err)
}

func TestCompleteAppointmentCompletesReferral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)
	referral := seedReferral(t, env.db, patientID, referringID, &practitionerID)

	request := createRequest(practitionerID, futureAt(10, 0))
	request.ReferralID = &referral.ID
	created, err := env.appointments.Create(ctx, patientID, request)
	require.NoError(t, err)

	complete := &dto.CompleteAppointmentRequest{
		Diagnosis: "benign arrhythmia",
		Treatment: "beta blockers",
	}
	result, err := env.appointments.Complete(ctx, practitionerID, entity.RoleIDPractitioner, created.ID, complete)
	require.NoError(t, err)

	assert.Equal(t, string(entity.AppointmentStatusCompleted), result.Status)
	assert.NotNil(t, result.CompletedAt)

	updated := env.loadReferral(t, referral.ID)
	assert.Equal(t, entity.ReferralStatusCompleted, updated.Status)

	// A completed appointment cannot be completed again.
	_, err = env.appointments.Complete(ctx, practitionerID, entity.RoleIDPractitioner, created.ID, complete)
	assert.ErrorIs(t, err, ErrAppointmentInvalidState)
}

func TestCancelAppointmentInvalidState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	created, err := env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(10, 0)))
	require.NoError(t, err)

	_, err = env.appointments.Complete(ctx, practitionerID, entity.RoleIDPractitioner, created.ID, &dto.CompleteAppointmentRequest{Diagnosis: "d", Treatment: "t"})
	require.NoError(t, err)

	_, err = env.appointments.Cancel(ctx, patientID, entity.RoleIDPatient, created.ID, &dto.CancelAppointmentRequest{})
	assert.ErrorIs(t, err, ErrAppointmentInvalidState)
}

func TestMarkNoShow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)
	referral := seedReferral(t, env.db, patientID, referringID, &practitionerID)

	request := createRequest(practitionerID, futureAt(10, 0))
	request.ReferralID = &referral.ID
	created, err := env.appointments.Create(ctx, patientID, request)
	require.NoError(t, err)

	result, err := env.appointments.MarkNoShow(ctx, practitionerID, entity.RoleIDPractitioner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusNoShow), result.Status)

	// A no-show does not reopen or complete the referral.
	updated := env.loadReferral(t, referral.ID)
	assert.Equal(t, entity.ReferralStatusAccepted, updated.Status)
	assert.True(t, updated.AppointmentCreated)

	_, err = env.appointments.MarkNoShow(ctx, practitionerID, entity.RoleIDPractitioner, created.ID)
	assert.ErrorIs(t, err, ErrAppointmentInvalidState)
}

func TestRescheduleAppointment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	created, err := env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(10, 0)))
	require.NoError(t, err)

	newStart := futureAt(14, 0)
	result, err := env.appointments.Reschedule(ctx, patientID, entity.RoleIDPatient, created.ID, &dto.RescheduleAppointmentRequest{
		StartTime: newStart.Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.True(t, result.StartTime.Equal(newStart))
	assert.Equal(t, string(entity.AppointmentStatusScheduled), result.Status)
}

func TestRescheduleAppointmentConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	first, err := env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(10, 0)))
	require.NoError(t, err)
	_, err = env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(11, 0)))
	require.NoError(t, err)

	// Moving onto the other appointment fails.
	_, err = env.appointments.Reschedule(ctx, patientID, entity.RoleIDPatient, first.ID, &dto.RescheduleAppointmentRequest{
		StartTime: futureAt(11, 15).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Keeping the same slot is a no-op, not a self-conflict.
	result, err := env.appointments.Reschedule(ctx, patientID, entity.RoleIDPatient, first.ID, &dto.RescheduleAppointmentRequest{
		StartTime: futureAt(10, 0).Format(time.RFC3339),
	})
	require.NoError(t, err)
	assert.True(t, result.StartTime.Equal(futureAt(10, 0)))
}

func TestRescheduleAppointmentNotActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	created, err := env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(10, 0)))
	require.NoError(t, err)
	_, err = env.appointments.Cancel(ctx, patientID, entity.RoleIDPatient, created.ID, &dto.CancelAppointmentRequest{})
	require.NoError(t, err)

	_, err = env.appointments.Reschedule(ctx, patientID, entity.RoleIDPatient, created.ID, &dto.RescheduleAppointmentRequest{
		StartTime: futureAt(14, 0).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrAppointmentInvalidState)
}

func TestAppointmentOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	otherPatientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)
	otherPractitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	created, err := env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(10, 0)))
	require.NoError(t, err)

	_, err = env.appointments.Cancel(ctx, otherPatientID, entity.RoleIDPatient, created.ID, &dto.CancelAppointmentRequest{})
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)

	_, err = env.appointments.Complete(ctx, otherPractitionerID, entity.RoleIDPractitioner, created.ID, &dto.CompleteAppointmentRequest{Diagnosis: "d", Treatment: "t"})
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)

	// An admin may act on anyone's appointment.
	adminID := seedUser(t, env.db, entity.RoleIDAdmin)
	result, err := env.appointments.Cancel(ctx, adminID, entity.RoleIDAdmin, created.ID, &dto.CancelAppointmentRequest{Reason: "practitioner sick"})
	require.NoError(t, err)
	assert.Equal(t, entity.CancelledByAdmin, result.CancelledBy)
}

func TestAppointmentQueries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	practitionerID := seedPractitioner(t, env.db, allWeekdays()...)

	created, err := env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(10, 0)))
	require.NoError(t, err)
	_, err = env.appointments.Create(ctx, patientID, createRequest(practitionerID, futureAt(11, 0)))
	require.NoError(t, err)

	byID, err := env.appointments.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	_, err = env.appointments.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	byPatient, err := env.appointments.GetByPatient(ctx, patientID)
	require.NoError(t, err)
	assert.Equal(t, 2, byPatient.Total)

	byPractitioner, err := env.appointments.GetByPractitioner(ctx, practitionerID)
	require.NoError(t, err)
	assert.Equal(t, 2, byPractitioner.Total)
}
