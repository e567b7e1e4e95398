package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthlink/internal/converter"
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
	"healthlink/internal/domain/repository"
	"healthlink/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidClockFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeWindow  = errors.New("start time must be before end time")
	ErrDuplicateWeekday   = errors.New("duplicate weekday in rule set")
)

type WorkingHoursUsecase interface {
	SetWorkingHours(ctx context.Context, actorID uuid.UUID, request *dto.SetWorkingHoursRequest) (*dto.WorkingHoursListResponse, error)
	GetWorkingHours(ctx context.Context, practitionerID uuid.UUID) (*dto.WorkingHoursListResponse, error)
}

type workingHoursUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	workingHoursRepo repository.WorkingHoursRepository
	practitionerRepo repository.PractitionerProfileRepository
	auditService     service.AuditService
}

func NewWorkingHoursUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	workingHoursRepo repository.WorkingHoursRepository,
	practitionerRepo repository.PractitionerProfileRepository,
	auditService service.AuditService,
) WorkingHoursUsecase {
	return &workingHoursUsecase{
		db:               db,
		log:              log,
		workingHoursRepo: workingHoursRepo,
		practitionerRepo: practitionerRepo,
		auditService:     auditService,
	}
}

// SetWorkingHours replaces the practitioner's full weekly rule set. Times
// are HH:MM in UTC and a window never wraps across midnight.
func (u *workingHoursUsecase) SetWorkingHours(ctx context.Context, actorID uuid.UUID, request *dto.SetWorkingHoursRequest) (*dto.WorkingHoursListResponse, error) {
	db := u.db.WithContext(ctx)

	practitioner, err := u.practitionerRepo.FindByUserID(db, request.PractitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner: %+v", err)
		return nil, err
	}
	if practitioner == nil {
		return nil, ErrPractitionerNotFound
	}

	seen := make(map[int]bool)
	rules := make([]entity.WorkingHours, 0, len(request.Rules))
	for _, r := range request.Rules {
		if seen[r.Weekday] {
			return nil, ErrDuplicateWeekday
		}
		seen[r.Weekday] = true

		startMinute, err := parseClock(r.StartTime)
		if err != nil {
			return nil, err
		}
		endMinute, err := parseClock(r.EndTime)
		if err != nil {
			return nil, err
		}
		if startMinute >= endMinute {
			return nil, ErrInvalidTimeWindow
		}

		isAvailable := true
		if r.IsAvailable != nil {
			isAvailable = *r.IsAvailable
		}

		rules = append(rules, entity.WorkingHours{
			PractitionerID: request.PractitionerID,
			Weekday:        time.Weekday(r.Weekday),
			StartMinute:    startMinute,
			EndMinute:      endMinute,
			IsAvailable:    isAvailable,
		})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := u.workingHoursRepo.ReplaceForPractitioner(tx, request.PractitionerID, rules); err != nil {
			u.log.Warnf("Failed to replace working hours: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionWorkingHoursUpdate, "working_hours", request.PractitionerID.String(), nil, request.Rules)
	})
	if err != nil {
		return nil, err
	}

	return u.GetWorkingHours(ctx, request.PractitionerID)
}

func (u *workingHoursUsecase) GetWorkingHours(ctx context.Context, practitionerID uuid.UUID) (*dto.WorkingHoursListResponse, error) {
	rules, err := u.workingHoursRepo.FindByPractitionerID(u.db.WithContext(ctx), practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find working hours: %+v", err)
		return nil, err
	}

	return &dto.WorkingHoursListResponse{
		PractitionerID: practitionerID,
		Rules:          converter.WorkingHoursToResponses(rules),
		Total:          len(rules),
	}, nil
}

// parseClock converts HH:MM into minutes of day.
func parseClock(clock string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hours, &minutes); err != nil {
		return 0, ErrInvalidClockFormat
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidClockFormat
	}
	return hours*60 + minutes, nil
}
