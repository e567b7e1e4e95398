package repository

import (
	"errors"

	"healthlink/internal/domain/entity"
	domainRepo "healthlink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type practitionerProfileRepository struct{}

func NewPractitionerProfileRepository() domainRepo.PractitionerProfileRepository {
	return &practitionerProfileRepository{}
}

func (r *practitionerProfileRepository) Create(db *gorm.DB, profile *entity.PractitionerProfile) error {
	return db.Create(profile).Error
}

func (r *practitionerProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PractitionerProfile, error) {
	var profile entity.PractitionerProfile
	err := db.Preload("User").Preload("WorkingHours").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *practitionerProfileRepository) FindAll(db *gorm.DB) ([]entity.PractitionerProfile, error) {
	var profiles []entity.PractitionerProfile
	err := db.Preload("User").Preload("WorkingHours").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *practitionerProfileRepository) Update(db *gorm.DB, profile *entity.PractitionerProfile) error {
	return db.Omit("User", "WorkingHours").Save(profile).Error
}

func (r *practitionerProfileRepository) Delete(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&entity.PractitionerProfile{}).Error
}
