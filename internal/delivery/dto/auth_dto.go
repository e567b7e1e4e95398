package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID                  uuid.UUID                    `json:"id"`
	Email               string                       `json:"email"`
	FullName            string                       `json:"full_name"`
	Role                string                       `json:"role"`
	PractitionerProfile *PractitionerProfileResponse `json:"practitioner_profile,omitempty"`
	PatientProfile      *PatientProfileResponse      `json:"patient_profile,omitempty"`
	CreatedAt           time.Time                    `json:"created_at"`
	UpdatedAt           time.Time                    `json:"updated_at"`
}

// Role-specific Registration Request DTOs

type RegisterPatientRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	FullName        string `json:"full_name" validate:"required,min=2"`
	MedicalRecordNo string `json:"medical_record_no" validate:"required"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	DateOfBirth     string `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	Gender          string `json:"gender" validate:"required,oneof=M F"`
	Address         string `json:"address" validate:"omitempty"`
	InsuranceNumber string `json:"insurance_number" validate:"omitempty"`
}

type RegisterPractitionerRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FullName       string `json:"full_name" validate:"required,min=2"`
	LicenseNumber  string `json:"license_number" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	Biography      string `json:"biography" validate:"omitempty"`
}
