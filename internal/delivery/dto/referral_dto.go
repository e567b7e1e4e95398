package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateReferralRequest struct {
	PatientID              uuid.UUID  `json:"patient_id" validate:"required"`
	ReferredPractitionerID *uuid.UUID `json:"referred_practitioner_id" validate:"omitempty"`
	FacilityID             *uuid.UUID `json:"facility_id" validate:"omitempty"`
	Specialty              string     `json:"specialty" validate:"required"`
	Reason                 string     `json:"reason" validate:"required"`
	Urgency                string     `json:"urgency" validate:"required,oneof=routine urgent high emergency"`
	Notes                  string     `json:"notes" validate:"omitempty"`
}

type DecideReferralRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
	Notes    string `json:"notes" validate:"omitempty"`
}

type CompleteReferralRequest struct {
	Summary string `json:"summary" validate:"omitempty"`
}

type VerifyInsuranceRequest struct {
	Status string `json:"status" validate:"required,oneof=pending verified denied"`
	Notes  string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type ReferralResponse struct {
	ID                      uuid.UUID         `json:"id"`
	PatientID               uuid.UUID         `json:"patient_id"`
	ReferringPractitionerID uuid.UUID         `json:"referring_practitioner_id"`
	ReferredPractitionerID  *uuid.UUID        `json:"referred_practitioner_id,omitempty"`
	FacilityID              *uuid.UUID        `json:"facility_id,omitempty"`
	Facility                *FacilityResponse `json:"facility,omitempty"`
	Specialty               string            `json:"specialty"`
	Reason                  string            `json:"reason"`
	Urgency                 string            `json:"urgency"`
	Status                  string            `json:"status"`
	Notes                   string            `json:"notes,omitempty"`
	DecisionNotes           string            `json:"decision_notes,omitempty"`
	Summary                 string            `json:"summary,omitempty"`
	AppointmentCreated      bool              `json:"appointment_created"`
	AppointmentID           *uuid.UUID        `json:"appointment_id,omitempty"`
	ExpiryDate              time.Time         `json:"expiry_date"`
	InsuranceStatus         string            `json:"insurance_status"`
	InsuranceNotes          string            `json:"insurance_notes,omitempty"`
	CreatedAt               time.Time         `json:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at"`
}

type ReferralListResponse struct {
	Referrals []ReferralResponse `json:"referrals"`
	Total     int                `json:"total"`
}
