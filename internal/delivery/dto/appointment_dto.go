package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PractitionerID  uuid.UUID  `json:"practitioner_id" validate:"required"`
	StartTime       string     `json:"start_time" validate:"required"` // Format: RFC3339
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,min=15"`
	Reason          string     `json:"reason" validate:"required"`
	Notes           string     `json:"notes" validate:"omitempty"`
	ReferralID      *uuid.UUID `json:"referral_id" validate:"omitempty"`
}

type RescheduleAppointmentRequest struct {
	StartTime       string `json:"start_time" validate:"omitempty"` // Format: RFC3339
	DurationMinutes *int   `json:"duration_minutes" validate:"omitempty,min=15"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"omitempty"`
}

type CompleteAppointmentRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"required"`
	Treatment    string `json:"treatment" validate:"required"`
	Prescription string `json:"prescription" validate:"omitempty"`
	FollowUp     string `json:"follow_up" validate:"omitempty"`
	Notes        string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID             `json:"id"`
	PatientID       uuid.UUID             `json:"patient_id"`
	PractitionerID  uuid.UUID             `json:"practitioner_id"`
	Practitioner    *PractitionerResponse `json:"practitioner,omitempty"`
	ReferralID      *uuid.UUID            `json:"referral_id,omitempty"`
	StartTime       time.Time             `json:"start_time"`
	EndTime         time.Time             `json:"end_time"`
	DurationMinutes int                   `json:"duration_minutes"`
	Status          string                `json:"status"`
	Reason          string                `json:"reason"`
	Notes           string                `json:"notes,omitempty"`

	CancelledBy        string     `json:"cancelled_by,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	Diagnosis    string     `json:"diagnosis,omitempty"`
	Treatment    string     `json:"treatment,omitempty"`
	Prescription string     `json:"prescription,omitempty"`
	FollowUp     string     `json:"follow_up,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
