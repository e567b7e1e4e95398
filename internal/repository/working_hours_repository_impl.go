package repository

import (
	"healthlink/internal/domain/entity"
	domainRepo "healthlink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type workingHoursRepository struct{}

func NewWorkingHoursRepository() domainRepo.WorkingHoursRepository {
	return &workingHoursRepository{}
}

func (r *workingHoursRepository) FindByPractitionerID(db *gorm.DB, practitionerID uuid.UUID) ([]entity.WorkingHours, error) {
	var rules []entity.WorkingHours
	err := db.Where("practitioner_id = ?", practitionerID).Order("weekday ASC").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// ReplaceForPractitioner deletes and re-inserts the weekly rule set in one
// statement pair; callers wrap it in a transaction together with other
// writes when needed.
func (r *workingHoursRepository) ReplaceForPractitioner(db *gorm.DB, practitionerID uuid.UUID, rules []entity.WorkingHours) error {
	if err := db.Where("practitioner_id = ?", practitionerID).Delete(&entity.WorkingHours{}).Error; err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}
	for i := range rules {
		rules[i].ID = 0
		rules[i].PractitionerID = practitionerID
	}
	return db.Create(&rules).Error
}
