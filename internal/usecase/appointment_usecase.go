package usecase

import (
	"context"
	"errors"
	"time"

	"healthlink/config"
	"healthlink/internal/converter"
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
	"healthlink/internal/domain/repository"
	"healthlink/internal/scheduling"
	"healthlink/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotOwned     = errors.New("appointment does not belong to this user")
	ErrAppointmentInvalidState = errors.New("appointment status does not allow this operation")
	ErrPractitionerNotFound    = errors.New("practitioner not found")
	ErrPatientNotFound         = errors.New("patient not found")
	ErrSlotConflict            = errors.New("slot conflicts with an existing appointment")
	ErrSlotBusy                = errors.New("slot is being booked by another request")
	ErrInvalidStartTime        = errors.New("invalid start time format")
	ErrStartTimeInPast         = errors.New("start time is in the past")
	ErrDurationTooShort        = errors.New("duration is below the minimum")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, patientID uuid.UUID, request *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID, request *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID, request *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID, request *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetByPractitioner(ctx context.Context, practitionerID uuid.UUID) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	cfg              *config.SchedulingConfig
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientProfileRepository
	practitionerRepo repository.PractitionerProfileRepository
	coordinator      *ConsistencyCoordinator
	locker           service.SlotLocker
	dispatcher       service.NotificationDispatcher
	auditService     service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg *config.SchedulingConfig,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientProfileRepository,
	practitionerRepo repository.PractitionerProfileRepository,
	coordinator *ConsistencyCoordinator,
	locker service.SlotLocker,
	dispatcher service.NotificationDispatcher,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		cfg:              cfg,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		practitionerRepo: practitionerRepo,
		coordinator:      coordinator,
		locker:           locker,
		dispatcher:       dispatcher,
		auditService:     auditService,
	}
}

// Create books a slot for the patient. The conflict check and the insert
// run inside the practitioner lock and a single transaction, so two
// concurrent requests for the same slot cannot both succeed. The database
// exclusion constraint backs this up as a second line of defense.
func (u *appointmentUsecase) Create(ctx context.Context, patientID uuid.UUID, request *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByUserID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	practitioner, err := u.practitionerRepo.FindByUserID(db, request.PractitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner: %+v", err)
		return nil, err
	}
	if practitioner == nil {
		return nil, ErrPractitionerNotFound
	}

	start, duration, err := u.resolveSlot(request.StartTime, request.DurationMinutes)
	if err != nil {
		return nil, err
	}

	if err := scheduling.CheckAvailability(practitioner.WorkingHours, start, duration); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		PractitionerID:  request.PractitionerID,
		ReferralID:      request.ReferralID,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          entity.AppointmentStatusScheduled,
		Reason:          request.Reason,
		Notes:           request.Notes,
	}

	err = u.locker.WithPractitionerLock(ctx, request.PractitionerID, func(lockCtx context.Context) error {
		return u.db.WithContext(lockCtx).Transaction(func(tx *gorm.DB) error {
			existing, err := u.appointmentRepo.FindActiveInRange(tx, request.PractitionerID, start, appointment.End())
			if err != nil {
				u.log.Warnf("Failed to load appointments for conflict check: %+v", err)
				return err
			}
			if conflict := scheduling.FindConflict(existing, start, duration, uuid.Nil); conflict != nil {
				return ErrSlotConflict
			}

			if err := u.appointmentRepo.Create(tx, appointment); err != nil {
				if isExclusionViolation(err) {
					return ErrSlotConflict
				}
				u.log.Warnf("Failed to create appointment: %+v", err)
				return err
			}

			if err := u.coordinator.OnAppointmentCreatedFromReferral(tx, appointment); err != nil {
				return err
			}

			return u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment)
		})
	})
	if errors.Is(err, service.ErrLockNotAcquired) {
		return nil, ErrSlotBusy
	}
	if err != nil {
		return nil, err
	}

	u.dispatcher.Notify(ctx, service.Event{
		Type:           service.EventAppointmentCreated,
		AppointmentID:  &appointment.ID,
		ReferralID:     appointment.ReferralID,
		PatientID:      appointment.PatientID,
		PractitionerID: appointment.PractitionerID,
		OccurredAt:     time.Now().UTC(),
	})

	return converter.AppointmentToResponse(appointment), nil
}

// Reschedule moves an active appointment to a new slot. Omitted fields keep
// their current value, and a request that changes nothing is a no-op.
func (u *appointmentUsecase) Reschedule(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID, request *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.loadOwned(db, actorID, roleID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.IsActive() {
		return nil, ErrAppointmentInvalidState
	}

	newStart := appointment.StartTime
	if request.StartTime != "" {
		parsed, err := time.Parse(time.RFC3339, request.StartTime)
		if err != nil {
			return nil, ErrInvalidStartTime
		}
		newStart = parsed.UTC()
	}

	newDuration := appointment.DurationMinutes
	if request.DurationMinutes != nil {
		newDuration = *request.DurationMinutes
	}
	if newDuration < u.cfg.MinDurationMinutes {
		return nil, ErrDurationTooShort
	}

	if newStart.Equal(appointment.StartTime) && newDuration == appointment.DurationMinutes {
		return converter.AppointmentToResponse(appointment), nil
	}

	if newStart.Before(time.Now().UTC()) {
		return nil, ErrStartTimeInPast
	}

	practitioner, err := u.practitionerRepo.FindByUserID(db, appointment.PractitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner: %+v", err)
		return nil, err
	}
	if practitioner == nil {
		return nil, ErrPractitionerNotFound
	}

	if err := scheduling.CheckAvailability(practitioner.WorkingHours, newStart, newDuration); err != nil {
		return nil, err
	}

	oldSlot := map[string]interface{}{
		"start_time":       appointment.StartTime,
		"duration_minutes": appointment.DurationMinutes,
	}
	newEnd := newStart.Add(time.Duration(newDuration) * time.Minute)

	err = u.locker.WithPractitionerLock(ctx, appointment.PractitionerID, func(lockCtx context.Context) error {
		return u.db.WithContext(lockCtx).Transaction(func(tx *gorm.DB) error {
			existing, err := u.appointmentRepo.FindActiveInRange(tx, appointment.PractitionerID, newStart, newEnd)
			if err != nil {
				u.log.Warnf("Failed to load appointments for conflict check: %+v", err)
				return err
			}
			if conflict := scheduling.FindConflict(existing, newStart, newDuration, appointment.ID); conflict != nil {
				return ErrSlotConflict
			}

			appointment.StartTime = newStart
			appointment.DurationMinutes = newDuration

			if err := u.appointmentRepo.Update(tx, appointment); err != nil {
				if isExclusionViolation(err) {
					return ErrSlotConflict
				}
				u.log.Warnf("Failed to update appointment: %+v", err)
				return err
			}

			return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentReschedule, "appointment", appointment.ID.String(), oldSlot, appointment)
		})
	})
	if errors.Is(err, service.ErrLockNotAcquired) {
		return nil, ErrSlotBusy
	}
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// Cancel releases the slot. When the appointment was booked from a
// referral, the referral is reopened in the same transaction.
func (u *appointmentUsecase) Cancel(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID, request *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.loadOwned(db, actorID, roleID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.CanTransitionTo(entity.AppointmentStatusCancelled) {
		return nil, ErrAppointmentInvalidState
	}

	now := time.Now().UTC()
	oldStatus := appointment.Status

	appointment.Status = entity.AppointmentStatusCancelled
	appointment.CancelledBy = cancelledByForRole(roleID)
	appointment.CancellationReason = request.Reason
	appointment.CancelledAt = &now

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			u.log.Warnf("Failed to cancel appointment: %+v", err)
			return err
		}

		if err := u.coordinator.OnAppointmentCancelled(tx, appointment); err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(), oldStatus, appointment.Status)
	})
	if err != nil {
		return nil, err
	}

	u.dispatcher.Notify(ctx, service.Event{
		Type:           service.EventAppointmentCancelled,
		AppointmentID:  &appointment.ID,
		ReferralID:     appointment.ReferralID,
		PatientID:      appointment.PatientID,
		PractitionerID: appointment.PractitionerID,
		OccurredAt:     now,
	})

	return converter.AppointmentToResponse(appointment), nil
}

// Complete records the consultation outcome. A linked referral is marked
// fulfilled in the same transaction.
func (u *appointmentUsecase) Complete(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID, request *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.loadOwned(db, actorID, roleID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.CanTransitionTo(entity.AppointmentStatusCompleted) {
		return nil, ErrAppointmentInvalidState
	}

	now := time.Now().UTC()
	oldStatus := appointment.Status

	appointment.Status = entity.AppointmentStatusCompleted
	appointment.Diagnosis = request.Diagnosis
	appointment.Treatment = request.Treatment
	appointment.Prescription = request.Prescription
	appointment.FollowUp = request.FollowUp
	appointment.CompletedAt = &now
	if request.Notes != "" {
		appointment.Notes = request.Notes
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			u.log.Warnf("Failed to complete appointment: %+v", err)
			return err
		}

		if err := u.coordinator.OnAppointmentCompleted(tx, appointment); err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentComplete, "appointment", appointment.ID.String(), oldStatus, appointment.Status)
	})
	if err != nil {
		return nil, err
	}

	u.dispatcher.Notify(ctx, service.Event{
		Type:           service.EventAppointmentCompleted,
		AppointmentID:  &appointment.ID,
		ReferralID:     appointment.ReferralID,
		PatientID:      appointment.PatientID,
		PractitionerID: appointment.PractitionerID,
		OccurredAt:     now,
	})

	return converter.AppointmentToResponse(appointment), nil
}

// MarkNoShow flags a patient who did not turn up. The linked referral, if
// any, is left untouched.
func (u *appointmentUsecase) MarkNoShow(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.loadOwned(db, actorID, roleID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.CanTransitionTo(entity.AppointmentStatusNoShow) {
		return nil, ErrAppointmentInvalidState
	}

	oldStatus := appointment.Status
	appointment.Status = entity.AppointmentStatusNoShow

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			u.log.Warnf("Failed to mark appointment as no-show: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentNoShow, "appointment", appointment.ID.String(), oldStatus, appointment.Status)
	})
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetByPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetByPractitioner(ctx context.Context, practitionerID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPractitionerID(u.db.WithContext(ctx), practitionerID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// resolveSlot parses the requested start and applies the duration default
// and minimum.
func (u *appointmentUsecase) resolveSlot(startTime string, durationMinutes *int) (time.Time, int, error) {
	start, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return time.Time{}, 0, ErrInvalidStartTime
	}
	start = start.UTC()

	if start.Before(time.Now().UTC()) {
		return time.Time{}, 0, ErrStartTimeInPast
	}

	duration := u.cfg.DefaultDurationMinutes
	if durationMinutes != nil {
		duration = *durationMinutes
	}
	if duration < u.cfg.MinDurationMinutes {
		return time.Time{}, 0, ErrDurationTooShort
	}

	return start, duration, nil
}

// loadOwned fetches the appointment and enforces ownership: a patient may
// only touch their own appointments, a practitioner only those on their
// calendar. Admins may touch any.
func (u *appointmentUsecase) loadOwned(db *gorm.DB, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch roleID {
	case entity.RoleIDPatient:
		if appointment.PatientID != actorID {
			return nil, ErrAppointmentNotOwned
		}
	case entity.RoleIDPractitioner:
		if appointment.PractitionerID != actorID {
			return nil, ErrAppointmentNotOwned
		}
	}

	return appointment, nil
}

func cancelledByForRole(roleID int) string {
	switch roleID {
	case entity.RoleIDPractitioner:
		return entity.CancelledByPractitioner
	case entity.RoleIDAdmin:
		return entity.CancelledByAdmin
	default:
		return entity.CancelledByPatient
	}
}

// isExclusionViolation detects the no-overlap exclusion constraint firing,
// which means another transaction grabbed the slot between our conflict
// check and the insert.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
