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
	"healthlink/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReferralNotOwned       = errors.New("referral is not addressed to this practitioner")
	ErrReferralTargetRequired = errors.New("referral needs a receiving practitioner or facility")
	ErrReferralExpired        = errors.New("referral has expired")
	ErrFacilityNotFound       = errors.New("facility not found")
	ErrSpecialtyNotOffered    = errors.New("facility does not offer the requested specialty")
	ErrFacilityNotAccepting   = errors.New("facility is not accepting new patients")
)

type ReferralUsecase interface {
	Create(ctx context.Context, referringPractitionerID uuid.UUID, request *dto.CreateReferralRequest) (*dto.ReferralResponse, error)
	Decide(ctx context.Context, actorID uuid.UUID, roleID int, referralID uuid.UUID, request *dto.DecideReferralRequest) (*dto.ReferralResponse, error)
	Complete(ctx context.Context, actorID uuid.UUID, referralID uuid.UUID, request *dto.CompleteReferralRequest) (*dto.ReferralResponse, error)
	VerifyInsurance(ctx context.Context, actorID uuid.UUID, referralID uuid.UUID, request *dto.VerifyInsuranceRequest) (*dto.ReferralResponse, error)
	GetByID(ctx context.Context, referralID uuid.UUID) (*dto.ReferralResponse, error)
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*dto.ReferralListResponse, error)
	GetOutgoing(ctx context.Context, practitionerID uuid.UUID) (*dto.ReferralListResponse, error)
	GetIncoming(ctx context.Context, practitionerID uuid.UUID) (*dto.ReferralListResponse, error)
}

type referralUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	cfg              *config.SchedulingConfig
	referralRepo     repository.ReferralRepository
	patientRepo      repository.PatientProfileRepository
	practitionerRepo repository.PractitionerProfileRepository
	facilityRepo     repository.FacilityRepository
	dispatcher       service.NotificationDispatcher
	auditService     service.AuditService
}

func NewReferralUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg *config.SchedulingConfig,
	referralRepo repository.ReferralRepository,
	patientRepo repository.PatientProfileRepository,
	practitionerRepo repository.PractitionerProfileRepository,
	facilityRepo repository.FacilityRepository,
	dispatcher service.NotificationDispatcher,
	auditService service.AuditService,
) ReferralUsecase {
	return &referralUsecase{
		db:               db,
		log:              log,
		cfg:              cfg,
		referralRepo:     referralRepo,
		patientRepo:      patientRepo,
		practitionerRepo: practitionerRepo,
		facilityRepo:     facilityRepo,
		dispatcher:       dispatcher,
		auditService:     auditService,
	}
}

// Create writes a new pending referral. A facility target must offer the
// requested specialty and be open to new patients.
func (u *referralUsecase) Create(ctx context.Context, referringPractitionerID uuid.UUID, request *dto.CreateReferralRequest) (*dto.ReferralResponse, error) {
	db := u.db.WithContext(ctx)

	if request.ReferredPractitionerID == nil && request.FacilityID == nil {
		return nil, ErrReferralTargetRequired
	}

	referring, err := u.practitionerRepo.FindByUserID(db, referringPractitionerID)
	if err != nil {
		u.log.Warnf("Failed to find referring practitioner: %+v", err)
		return nil, err
	}
	if referring == nil {
		return nil, ErrPractitionerNotFound
	}

	patient, err := u.patientRepo.FindByUserID(db, request.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if request.ReferredPractitionerID != nil {
		referred, err := u.practitionerRepo.FindByUserID(db, *request.ReferredPractitionerID)
		if err != nil {
			u.log.Warnf("Failed to find referred practitioner: %+v", err)
			return nil, err
		}
		if referred == nil {
			return nil, ErrPractitionerNotFound
		}
	}

	if request.FacilityID != nil {
		facility, err := u.facilityRepo.FindByID(db, *request.FacilityID)
		if err != nil {
			u.log.Warnf("Failed to find facility: %+v", err)
			return nil, err
		}
		if facility == nil {
			return nil, ErrFacilityNotFound
		}
		if !facility.OffersSpecialty(request.Specialty) {
			return nil, ErrSpecialtyNotOffered
		}
		if !facility.IsAcceptingPatients() {
			return nil, ErrFacilityNotAccepting
		}
	}

	now := time.Now().UTC()
	referral := &entity.Referral{
		ID:                      uuid.New(),
		PatientID:               request.PatientID,
		ReferringPractitionerID: referringPractitionerID,
		ReferredPractitionerID:  request.ReferredPractitionerID,
		FacilityID:              request.FacilityID,
		Specialty:               request.Specialty,
		Reason:                  request.Reason,
		Urgency:                 entity.ReferralUrgency(request.Urgency),
		Status:                  entity.ReferralStatusPending,
		Notes:                   request.Notes,
		ExpiryDate:              now.AddDate(0, 0, u.cfg.ReferralExpiryDays),
		InsuranceStatus:         entity.InsurancePending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := u.referralRepo.Create(tx, referral); err != nil {
			u.log.Warnf("Failed to create referral: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, tx, &referringPractitionerID, entity.AuditActionReferralCreate, "referral", referral.ID.String(), referral)
	})
	if err != nil {
		return nil, err
	}

	u.dispatcher.Notify(ctx, service.Event{
		Type:           service.EventReferralCreated,
		ReferralID:     &referral.ID,
		PatientID:      referral.PatientID,
		PractitionerID: referral.ReferringPractitionerID,
		OccurredAt:     now,
	})

	return converter.ReferralToResponse(referral), nil
}

// Decide records the receiving side's accept or reject. Only pending,
// unexpired referrals can be decided, and only by the practitioner the
// referral is addressed to (or an admin).
func (u *referralUsecase) Decide(ctx context.Context, actorID uuid.UUID, roleID int, referralID uuid.UUID, request *dto.DecideReferralRequest) (*dto.ReferralResponse, error) {
	db := u.db.WithContext(ctx)

	referral, err := u.referralRepo.FindByID(db, referralID)
	if err != nil {
		u.log.Warnf("Failed to find referral: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	if roleID != entity.RoleIDAdmin && referral.ReferredPractitionerID != nil && *referral.ReferredPractitionerID != actorID {
		return nil, ErrReferralNotOwned
	}

	if !referral.IsPending() {
		return nil, ErrReferralInvalidState
	}
	if referral.IsExpired(time.Now().UTC()) {
		return nil, ErrReferralExpired
	}

	oldStatus := referral.Status
	switch request.Decision {
	case "accept":
		referral.Status = entity.ReferralStatusAccepted
	case "reject":
		referral.Status = entity.ReferralStatusRejected
	default:
		return nil, ErrReferralInvalidState
	}
	referral.DecisionNotes = request.Notes

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := u.referralRepo.Update(tx, referral); err != nil {
			u.log.Warnf("Failed to update referral: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionReferralDecide, "referral", referral.ID.String(), oldStatus, referral.Status)
	})
	if err != nil {
		return nil, err
	}

	u.dispatcher.Notify(ctx, service.Event{
		Type:           service.EventReferralDecided,
		ReferralID:     &referral.ID,
		PatientID:      referral.PatientID,
		PractitionerID: referral.ReferringPractitionerID,
		OccurredAt:     time.Now().UTC(),
	})

	return converter.ReferralToResponse(referral), nil
}

// Complete closes out an accepted referral with an outcome summary. The
// usual path is through appointment completion; this covers care delivered
// outside the booking system.
func (u *referralUsecase) Complete(ctx context.Context, actorID uuid.UUID, referralID uuid.UUID, request *dto.CompleteReferralRequest) (*dto.ReferralResponse, error) {
	db := u.db.WithContext(ctx)

	referral, err := u.referralRepo.FindByID(db, referralID)
	if err != nil {
		u.log.Warnf("Failed to find referral: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	if !referral.CanTransitionTo(entity.ReferralStatusCompleted) {
		return nil, ErrReferralInvalidState
	}

	oldStatus := referral.Status
	referral.Status = entity.ReferralStatusCompleted
	referral.Summary = request.Summary

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := u.referralRepo.Update(tx, referral); err != nil {
			u.log.Warnf("Failed to complete referral: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionReferralComplete, "referral", referral.ID.String(), oldStatus, referral.Status)
	})
	if err != nil {
		return nil, err
	}

	return converter.ReferralToResponse(referral), nil
}

// VerifyInsurance updates the insurance sub-state. It is allowed in every
// referral status and is idempotent: re-submitting the same status only
// appends notes.
func (u *referralUsecase) VerifyInsurance(ctx context.Context, actorID uuid.UUID, referralID uuid.UUID, request *dto.VerifyInsuranceRequest) (*dto.ReferralResponse, error) {
	db := u.db.WithContext(ctx)

	referral, err := u.referralRepo.FindByID(db, referralID)
	if err != nil {
		u.log.Warnf("Failed to find referral: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	oldStatus := referral.InsuranceStatus
	referral.InsuranceStatus = entity.InsuranceStatus(request.Status)
	if request.Notes != "" {
		if referral.InsuranceNotes != "" {
			referral.InsuranceNotes += "\n"
		}
		referral.InsuranceNotes += request.Notes
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := u.referralRepo.Update(tx, referral); err != nil {
			u.log.Warnf("Failed to update insurance status: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionReferralVerifyInsurance, "referral", referral.ID.String(), oldStatus, referral.InsuranceStatus)
	})
	if err != nil {
		return nil, err
	}

	return converter.ReferralToResponse(referral), nil
}

func (u *referralUsecase) GetByID(ctx context.Context, referralID uuid.UUID) (*dto.ReferralResponse, error) {
	referral, err := u.referralRepo.FindByID(u.db.WithContext(ctx), referralID)
	if err != nil {
		u.log.Warnf("Failed to find referral: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	return converter.ReferralToResponse(referral), nil
}

func (u *referralUsecase) GetByPatient(ctx context.Context, patientID uuid.UUID) (*dto.ReferralListResponse, error) {
	referrals, err := u.referralRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list referrals: %+v", err)
		return nil, err
	}

	return &dto.ReferralListResponse{
		Referrals: converter.ReferralsToResponses(referrals),
		Total:     len(referrals),
	}, nil
}

func (u *referralUsecase) GetOutgoing(ctx context.Context, practitionerID uuid.UUID) (*dto.ReferralListResponse, error) {
	referrals, err := u.referralRepo.FindOutgoing(u.db.WithContext(ctx), practitionerID)
	if err != nil {
		u.log.Warnf("Failed to list outgoing referrals: %+v", err)
		return nil, err
	}

	return &dto.ReferralListResponse{
		Referrals: converter.ReferralsToResponses(referrals),
		Total:     len(referrals),
	}, nil
}

func (u *referralUsecase) GetIncoming(ctx context.Context, practitionerID uuid.UUID) (*dto.ReferralListResponse, error) {
	referrals, err := u.referralRepo.FindIncoming(u.db.WithContext(ctx), practitionerID)
	if err != nil {
		u.log.Warnf("Failed to list incoming referrals: %+v", err)
		return nil, err
	}

	return &dto.ReferralListResponse{
		Referrals: converter.ReferralsToResponses(referrals),
		Total:     len(referrals),
	}, nil
}
