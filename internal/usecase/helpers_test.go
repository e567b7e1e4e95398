package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"healthlink/config"
	"healthlink/internal/domain/entity"
	"healthlink/internal/repository"
	"healthlink/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeLocker runs the critical section without any locking. Concurrency is
// exercised against Redis in integration, not here.
type fakeLocker struct{}

func (l *fakeLocker) WithPractitionerLock(ctx context.Context, practitionerID uuid.UUID, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []service.Event
}

func (d *recordingDispatcher) Notify(ctx context.Context, event service.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) eventTypes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	types := make([]string, len(d.events))
	for i, e := range d.events {
		types[i] = e.Type
	}
	return types
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.PatientProfile{},
		&entity.PractitionerProfile{},
		&entity.WorkingHours{},
		&entity.Facility{},
		&entity.Referral{},
		&entity.Appointment{},
		&entity.AuditLog{},
	))

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDPractitioner, RoleName: entity.RolePractitioner},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}
	require.NoError(t, db.Create(&roles).Error)

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testSchedulingConfig() *config.SchedulingConfig {
	return &config.SchedulingConfig{
		DefaultDurationMinutes: 30,
		MinDurationMinutes:     15,
		ReferralExpiryDays:     30,
		SlotLockTTL:            time.Second,
	}
}

func seedUser(t *testing.T, db *gorm.DB, roleID int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	isActive := true
	user := entity.User{
		ID:       id,
		RoleID:   roleID,
		Email:    fmt.Sprintf("%s@example.com", id),
		Password: "hashed",
		FullName: "Test User",
		IsActive: &isActive,
	}
	require.NoError(t, db.Create(&user).Error)

	return id
}

func seedPatient(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	id := seedUser(t, db, entity.RoleIDPatient)
	profile := entity.PatientProfile{
		UserID:          id,
		MedicalRecordNo: fmt.Sprintf("MRN-%s", id),
		DateOfBirth:     time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:          entity.GenderFemale,
	}
	require.NoError(t, db.Create(&profile).Error)

	return id
}

// seedPractitioner creates a practitioner available 09:00-17:00 UTC on the
// given weekdays.
func seedPractitioner(t *testing.T, db *gorm.DB, weekdays ...time.Weekday) uuid.UUID {
	t.Helper()

	id := seedUser(t, db, entity.RoleIDPractitioner)
	profile := entity.PractitionerProfile{
		UserID:         id,
		LicenseNumber:  fmt.Sprintf("LIC-%s", id),
		Specialization: "cardiology",
	}
	require.NoError(t, db.Create(&profile).Error)

	for _, wd := range weekdays {
		rule := entity.WorkingHours{
			PractitionerID: id,
			Weekday:        wd,
			StartMinute:    9 * 60,
			EndMinute:      17 * 60,
			IsAvailable:    true,
		}
		require.NoError(t, db.Create(&rule).Error)
	}

	return id
}

func allWeekdays() []time.Weekday {
	return []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
}

// futureAt returns a UTC instant a few days out at the given clock time,
// safely inside the 09:00-17:00 seeded window when hour is within it.
func futureAt(hour, minute int) time.Time {
	base := time.Now().UTC().AddDate(0, 0, 3)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, time.UTC)
}

func seedReferral(t *testing.T, db *gorm.DB, patientID, referringID uuid.UUID, referredID *uuid.UUID) *entity.Referral {
	t.Helper()

	referral := &entity.Referral{
		ID:                      uuid.New(),
		PatientID:               patientID,
		ReferringPractitionerID: referringID,
		ReferredPractitionerID:  referredID,
		Specialty:               "cardiology",
		Reason:                  "persistent arrhythmia",
		Urgency:                 entity.UrgencyRoutine,
		Status:                  entity.ReferralStatusPending,
		ExpiryDate:              time.Now().UTC().AddDate(0, 0, 30),
		InsuranceStatus:         entity.InsurancePending,
	}
	require.NoError(t, db.Create(referral).Error)

	return referral
}

type testEnv struct {
	db           *gorm.DB
	dispatcher   *recordingDispatcher
	appointments AppointmentUsecase
	referrals    ReferralUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := testLogger()
	cfg := testSchedulingConfig()
	dispatcher := &recordingDispatcher{}

	patientRepo := repository.NewPatientProfileRepository()
	practitionerRepo := repository.NewPractitionerProfileRepository()
	facilityRepo := repository.NewFacilityRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	referralRepo := repository.NewReferralRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(db, log, auditLogRepo)
	coordinator := NewConsistencyCoordinator(log, referralRepo)

	return &testEnv{
		db:         db,
		dispatcher: dispatcher,
		appointments: NewAppointmentUsecase(
			db, log, cfg, appointmentRepo, patientRepo, practitionerRepo,
			coordinator, &fakeLocker{}, dispatcher, auditService,
		),
		referrals: NewReferralUsecase(
			db, log, cfg, referralRepo, patientRepo, practitionerRepo,
			facilityRepo, dispatcher, auditService,
		),
	}
}

func (e *testEnv) loadReferral(t *testing.T, id uuid.UUID) *entity.Referral {
	t.Helper()

	var referral entity.Referral
	require.NoError(t, e.db.Where("id = ?", id).First(&referral).Error)
	return &referral
}

func (e *testEnv) loadAppointment(t *testing.T, id uuid.UUID) *entity.Appointment {
	t.Helper()

	var appointment entity.Appointment
	require.NoError(t, e.db.Where("id = ?", id).First(&appointment).Error)
	return &appointment
}
