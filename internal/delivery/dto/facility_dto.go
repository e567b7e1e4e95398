package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateFacilityRequest struct {
	Name              string   `json:"name" validate:"required,min=2"`
	Address           string   `json:"address" validate:"omitempty"`
	PhoneNumber       string   `json:"phone_number" validate:"omitempty"`
	Email             string   `json:"email" validate:"omitempty,email"`
	Specialties       []string `json:"specialties" validate:"required,min=1"`
	AcceptingPatients *bool    `json:"accepting_patients" validate:"omitempty"`
}

type UpdateFacilityRequest struct {
	Name              string   `json:"name" validate:"omitempty,min=2"`
	Address           string   `json:"address" validate:"omitempty"`
	PhoneNumber       string   `json:"phone_number" validate:"omitempty"`
	Email             string   `json:"email" validate:"omitempty,email"`
	Specialties       []string `json:"specialties" validate:"omitempty,min=1"`
	AcceptingPatients *bool    `json:"accepting_patients" validate:"omitempty"`
}

// Response DTOs

type FacilityResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address,omitempty"`
	PhoneNumber       string    `json:"phone_number,omitempty"`
	Email             string    `json:"email,omitempty"`
	Specialties       []string  `json:"specialties"`
	AcceptingPatients *bool     `json:"accepting_patients"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	Total      int                `json:"total"`
}
