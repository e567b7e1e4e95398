package repository

import (
	"healthlink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PractitionerProfileRepository interface {
	Create(db *gorm.DB, profile *entity.PractitionerProfile) error
	// FindByUserID loads the profile with its working-hour rules.
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PractitionerProfile, error)
	FindAll(db *gorm.DB) ([]entity.PractitionerProfile, error)
	Update(db *gorm.DB, profile *entity.PractitionerProfile) error
	Delete(db *gorm.DB, userID uuid.UUID) error
}
