package repository

import (
	"errors"

	"healthlink/internal/domain/entity"
	domainRepo "healthlink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type referralRepository struct{}

func NewReferralRepository() domainRepo.ReferralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(db *gorm.DB, referral *entity.Referral) error {
	return db.Create(referral).Error
}

func (r *referralRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Referral, error) {
	var referral entity.Referral
	err := db.Preload("Patient.User").
		Preload("ReferringPractitioner.User").
		Preload("Facility").
		Where("id = ?", id).
		First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Referral, error) {
	var referrals []entity.Referral
	err := db.Preload("ReferringPractitioner.User").
		Preload("Facility").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&referrals).Error
	if err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *referralRepository) FindOutgoing(db *gorm.DB, practitionerID uuid.UUID) ([]entity.Referral, error) {
	var referrals []entity.Referral
	err := db.Preload("Patient.User").
		Preload("Facility").
		Where("referring_practitioner_id = ?", practitionerID).
		Order("created_at DESC").
		Find(&referrals).Error
	if err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *referralRepository) FindIncoming(db *gorm.DB, practitionerID uuid.UUID) ([]entity.Referral, error) {
	var referrals []entity.Referral
	err := db.Preload("Patient.User").
		Preload("ReferringPractitioner.User").
		Where("referred_practitioner_id = ?", practitionerID).
		Order("created_at DESC").
		Find(&referrals).Error
	if err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *referralRepository) Update(db *gorm.DB, referral *entity.Referral) error {
	return db.Omit("Patient", "ReferringPractitioner", "ReferredPractitioner", "Facility").Save(referral).Error
}
