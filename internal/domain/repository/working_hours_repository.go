package repository

import (
	"healthlink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkingHoursRepository interface {
	FindByPractitionerID(db *gorm.DB, practitionerID uuid.UUID) ([]entity.WorkingHours, error)
	// ReplaceForPractitioner swaps the practitioner's full weekly rule set.
	ReplaceForPractitioner(db *gorm.DB, practitionerID uuid.UUID, rules []entity.WorkingHours) error
}
