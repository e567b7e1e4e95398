package usecase

import (
	"context"

	"healthlink/internal/converter"
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
	"healthlink/internal/domain/repository"
	"healthlink/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type FacilityUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, request *dto.CreateFacilityRequest) (*dto.FacilityResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, facilityID uuid.UUID, request *dto.UpdateFacilityRequest) (*dto.FacilityResponse, error)
	GetByID(ctx context.Context, facilityID uuid.UUID) (*dto.FacilityResponse, error)
	GetAll(ctx context.Context) (*dto.FacilityListResponse, error)
	Delete(ctx context.Context, facilityID uuid.UUID) error
}

type facilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	facilityRepo repository.FacilityRepository
	auditService service.AuditService
}

func NewFacilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	facilityRepo repository.FacilityRepository,
	auditService service.AuditService,
) FacilityUsecase {
	return &facilityUsecase{
		db:           db,
		log:          log,
		facilityRepo: facilityRepo,
		auditService: auditService,
	}
}

func (u *facilityUsecase) Create(ctx context.Context, actorID uuid.UUID, request *dto.CreateFacilityRequest) (*dto.FacilityResponse, error) {
	accepting := true
	if request.AcceptingPatients != nil {
		accepting = *request.AcceptingPatients
	}

	facility := &entity.Facility{
		ID:                uuid.New(),
		Name:              request.Name,
		Address:           request.Address,
		PhoneNumber:       request.PhoneNumber,
		Email:             request.Email,
		Specialties:       request.Specialties,
		AcceptingPatients: &accepting,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.facilityRepo.Create(tx, facility); err != nil {
			u.log.Warnf("Failed to create facility: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionFacilityCreate, "facility", facility.ID.String(), facility)
	})
	if err != nil {
		return nil, err
	}

	return converter.FacilityToResponse(facility), nil
}

func (u *facilityUsecase) Update(ctx context.Context, actorID uuid.UUID, facilityID uuid.UUID, request *dto.UpdateFacilityRequest) (*dto.FacilityResponse, error) {
	db := u.db.WithContext(ctx)

	facility, err := u.facilityRepo.FindByID(db, facilityID)
	if err != nil {
		u.log.Warnf("Failed to find facility: %+v", err)
		return nil, err
	}
	if facility == nil {
		return nil, ErrFacilityNotFound
	}

	if request.Name != "" {
		facility.Name = request.Name
	}
	if request.Address != "" {
		facility.Address = request.Address
	}
	if request.PhoneNumber != "" {
		facility.PhoneNumber = request.PhoneNumber
	}
	if request.Email != "" {
		facility.Email = request.Email
	}
	if len(request.Specialties) > 0 {
		facility.Specialties = request.Specialties
	}
	if request.AcceptingPatients != nil {
		facility.AcceptingPatients = request.AcceptingPatients
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := u.facilityRepo.Update(tx, facility); err != nil {
			u.log.Warnf("Failed to update facility: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionFacilityUpdate, "facility", facility.ID.String(), nil, facility)
	})
	if err != nil {
		return nil, err
	}

	return converter.FacilityToResponse(facility), nil
}

func (u *facilityUsecase) GetByID(ctx context.Context, facilityID uuid.UUID) (*dto.FacilityResponse, error) {
	facility, err := u.facilityRepo.FindByID(u.db.WithContext(ctx), facilityID)
	if err != nil {
		u.log.Warnf("Failed to find facility: %+v", err)
		return nil, err
	}
	if facility == nil {
		return nil, ErrFacilityNotFound
	}

	return converter.FacilityToResponse(facility), nil
}

func (u *facilityUsecase) GetAll(ctx context.Context) (*dto.FacilityListResponse, error) {
	facilities, err := u.facilityRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list facilities: %+v", err)
		return nil, err
	}

	return &dto.FacilityListResponse{
		Facilities: converter.FacilitiesToResponses(facilities),
		Total:      len(facilities),
	}, nil
}

func (u *facilityUsecase) Delete(ctx context.Context, facilityID uuid.UUID) error {
	rows, err := u.facilityRepo.Delete(u.db.WithContext(ctx), facilityID)
	if err != nil {
		u.log.Warnf("Failed to delete facility: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrFacilityNotFound
	}

	return nil
}
