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

type PatientUsecase interface {
	GetAll(ctx context.Context) ([]dto.PatientResponse, error)
	GetByID(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, patientID uuid.UUID, request *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientProfileRepository
	userRepo    repository.UserRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientProfileRepository,
	userRepo repository.UserRepository,
) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		userRepo:    userRepo,
	}
}

func (u *patientUsecase) GetAll(ctx context.Context) ([]dto.PatientResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) GetByID(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, patientID uuid.UUID, request *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByUserID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if request.PhoneNumber != "" {
		patient.PhoneNumber = request.PhoneNumber
	}
	if request.Address != "" {
		patient.Address = request.Address
	}
	if request.InsuranceNumber != "" {
		patient.InsuranceNumber = request.InsuranceNumber
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if request.FullName != "" {
			user, err := u.userRepo.FindByID(tx, patientID)
			if err != nil {
				return err
			}
			if user == nil {
				return ErrUserNotFound
			}

			user.FullName = request.FullName
			if err := tx.Save(user).Error; err != nil {
				u.log.Warnf("Failed to update user: %+v", err)
				return err
			}
		}

		if err := u.patientRepo.Update(tx, patient); err != nil {
			u.log.Warnf("Failed to update patient profile: %+v", err)
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.GetByID(ctx, patientID)
}
