package repository

import (
	"errors"

	"healthlink/internal/domain/entity"
	domainRepo "healthlink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type facilityRepository struct{}

func NewFacilityRepository() domainRepo.FacilityRepository {
	return &facilityRepository{}
}

func (r *facilityRepository) Create(db *gorm.DB, facility *entity.Facility) error {
	return db.Create(facility).Error
}

func (r *facilityRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Facility, error) {
	var facility entity.Facility
	err := db.Where("id = ?", id).First(&facility).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &facility, nil
}

func (r *facilityRepository) FindAll(db *gorm.DB) ([]entity.Facility, error) {
	var facilities []entity.Facility
	err := db.Order("name ASC").Find(&facilities).Error
	if err != nil {
		return nil, err
	}
	return facilities, nil
}

func (r *facilityRepository) Update(db *gorm.DB, facility *entity.Facility) error {
	return db.Save(facility).Error
}

func (r *facilityRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Facility{})
	return affected.RowsAffected, affected.Error
}
