package repository

import (
	"healthlink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferralRepository interface {
	Create(db *gorm.DB, referral *entity.Referral) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Referral, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Referral, error)
	// FindOutgoing lists referrals written by the practitioner.
	FindOutgoing(db *gorm.DB, practitionerID uuid.UUID) ([]entity.Referral, error)
	// FindIncoming lists referrals addressed to the practitioner.
	FindIncoming(db *gorm.DB, practitionerID uuid.UUID) ([]entity.Referral, error)
	Update(db *gorm.DB, referral *entity.Referral) error
}
