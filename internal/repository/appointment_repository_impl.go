package repository

import (
	"errors"
	"time"

	"healthlink/internal/domain/entity"
	domainRepo "healthlink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Practitioner.User").Preload("Patient.User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Practitioner.User").
		Where("patient_id = ?", patientID).
		Order("start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPractitionerID(db *gorm.DB, practitionerID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").
		Where("practitioner_id = ?", practitionerID).
		Order("start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindActiveInRange returns active appointments intersecting [from, to).
// The interval test uses minute-granularity slot arithmetic in SQL so the
// result matches the in-memory half-open overlap check.
func (r *appointmentRepository) FindActiveInRange(db *gorm.DB, practitionerID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("practitioner_id = ? AND status IN ?", practitionerID,
		[]entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusConfirmed}).
		Where("start_time < ?", to).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	// Trailing bound is filtered in memory: end = start + duration is not a
	// stored column and duration varies per row.
	active := appointments[:0]
	for i := range appointments {
		if appointments[i].End().After(from) {
			active = append(active, appointments[i])
		}
	}
	return active, nil
}

func (r *appointmentRepository) FindActiveByReferralID(db *gorm.DB, referralID uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("referral_id = ? AND status IN ?", referralID,
		[]entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusConfirmed}).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Practitioner", "Referral").Save(appointment).Error
}
