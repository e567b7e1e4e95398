package dto

import (
	"time"

	"github.com/google/uuid"
)

// PatientProfileResponse represents patient profile data in responses
type PatientProfileResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	MedicalRecordNo string    `json:"medical_record_no"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	DateOfBirth     string    `json:"date_of_birth"`
	Gender          string    `json:"gender"`
	Address         string    `json:"address,omitempty"`
	InsuranceNumber string    `json:"insurance_number,omitempty"`
}

// PatientResponse represents a patient user with profile data
type PatientResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	MedicalRecordNo string    `json:"medical_record_no"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	DateOfBirth     string    `json:"date_of_birth"`
	Gender          string    `json:"gender"`
	Address         string    `json:"address,omitempty"`
	InsuranceNumber string    `json:"insurance_number,omitempty"`
	IsActive        *bool     `json:"is_active,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type UpdatePatientRequest struct {
	FullName        string `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Address         string `json:"address" validate:"omitempty"`
	InsuranceNumber string `json:"insurance_number" validate:"omitempty"`
}
