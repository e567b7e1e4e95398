package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreatePractitionerRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FullName       string `json:"full_name" validate:"required,min=2"`
	LicenseNumber  string `json:"license_number" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	Biography      string `json:"biography" validate:"omitempty"`
}

type UpdatePractitionerRequest struct {
	Email          string `json:"email" validate:"omitempty,email"`
	FullName       string `json:"full_name" validate:"omitempty,min=2"`
	LicenseNumber  string `json:"license_number" validate:"omitempty"`
	Specialization string `json:"specialization" validate:"omitempty"`
	Biography      string `json:"biography" validate:"omitempty"`
	IsActive       *bool  `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type PractitionerProfileResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	LicenseNumber  string    `json:"license_number"`
	Specialization string    `json:"specialization"`
	Biography      string    `json:"biography,omitempty"`
}

type PractitionerResponse struct {
	ID             uuid.UUID              `json:"id"`
	Email          string                 `json:"email"`
	FullName       string                 `json:"full_name"`
	LicenseNumber  string                 `json:"license_number"`
	Specialization string                 `json:"specialization"`
	Biography      string                 `json:"biography,omitempty"`
	IsActive       *bool                  `json:"is_active"`
	WorkingHours   []WorkingHoursResponse `json:"working_hours,omitempty"`
}

type PractitionerListResponse struct {
	Practitioners []PractitionerResponse `json:"practitioners"`
	Total         int                    `json:"total"`
}
