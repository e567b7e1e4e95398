package usecase

import (
	"context"

	"healthlink/internal/converter"
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PractitionerUsecase interface {
	GetAll(ctx context.Context) (*dto.PractitionerListResponse, error)
	GetByID(ctx context.Context, practitionerID uuid.UUID) (*dto.PractitionerResponse, error)
	Update(ctx context.Context, practitionerID uuid.UUID, request *dto.UpdatePractitionerRequest) (*dto.PractitionerResponse, error)
}

type practitionerUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	practitionerRepo repository.PractitionerProfileRepository
	userRepo         repository.UserRepository
}

func NewPractitionerUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	practitionerRepo repository.PractitionerProfileRepository,
	userRepo repository.UserRepository,
) PractitionerUsecase {
	return &practitionerUsecase{
		db:               db,
		log:              log,
		practitionerRepo: practitionerRepo,
		userRepo:         userRepo,
	}
}

func (u *practitionerUsecase) GetAll(ctx context.Context) (*dto.PractitionerListResponse, error) {
	practitioners, err := u.practitionerRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list practitioners: %+v", err)
		return nil, err
	}

	return &dto.PractitionerListResponse{
		Practitioners: converter.PractitionersToResponses(practitioners),
		Total:         len(practitioners),
	}, nil
}

func (u *practitionerUsecase) GetByID(ctx context.Context, practitionerID uuid.UUID) (*dto.PractitionerResponse, error) {
	practitioner, err := u.practitionerRepo.FindByUserID(u.db.WithContext(ctx), practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner: %+v", err)
		return nil, err
	}
	if practitioner == nil {
		return nil, ErrPractitionerNotFound
	}

	return converter.PractitionerToResponse(practitioner), nil
}

func (u *practitionerUsecase) Update(ctx context.Context, practitionerID uuid.UUID, request *dto.UpdatePractitionerRequest) (*dto.PractitionerResponse, error) {
	db := u.db.WithContext(ctx)

	practitioner, err := u.practitionerRepo.FindByUserID(db, practitionerID)
	if err != nil {
		u.log.Warnf("Failed to find practitioner: %+v", err)
		return nil, err
	}
	if practitioner == nil {
		return nil, ErrPractitionerNotFound
	}

	if request.LicenseNumber != "" {
		practitioner.LicenseNumber = request.LicenseNumber
	}
	if request.Specialization != "" {
		practitioner.Specialization = request.Specialization
	}
	if request.Biography != "" {
		practitioner.Biography = request.Biography
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if request.Email != "" || request.FullName != "" || request.IsActive != nil {
			user, err := u.userRepo.FindByID(tx, practitionerID)
			if err != nil {
				return err
			}
			if user == nil {
				return ErrUserNotFound
			}

			if request.Email != "" {
				user.Email = request.Email
			}
			if request.FullName != "" {
				user.FullName = request.FullName
			}
			if request.IsActive != nil {
				user.IsActive = request.IsActive
			}

			if err := tx.Save(user).Error; err != nil {
				if isDuplicateKeyError(err, "email") {
					return ErrEmailAlreadyExists
				}
				u.log.Warnf("Failed to update user: %+v", err)
				return err
			}
		}

		if err := u.practitionerRepo.Update(tx, practitioner); err != nil {
			if isDuplicateKeyError(err, "license_number") {
				return ErrLicenseAlreadyExists
			}
			u.log.Warnf("Failed to update practitioner profile: %+v", err)
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.GetByID(ctx, practitionerID)
}
