package repository

import (
	"time"

	"healthlink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByPractitionerID(db *gorm.DB, practitionerID uuid.UUID) ([]entity.Appointment, error)
	// FindActiveInRange returns scheduled/confirmed appointments of the
	// practitioner whose slots intersect [from, to).
	FindActiveInRange(db *gorm.DB, practitionerID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)
	FindActiveByReferralID(db *gorm.DB, referralID uuid.UUID) (*entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
}
