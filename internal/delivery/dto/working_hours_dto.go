package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type WorkingHoursRule struct {
	Weekday     int    `json:"weekday" validate:"min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required"` // Format: HH:MM, UTC
	EndTime     string `json:"end_time" validate:"required"`   // Format: HH:MM, UTC
	IsAvailable *bool  `json:"is_available" validate:"omitempty"`
}

type SetWorkingHoursRequest struct {
	PractitionerID uuid.UUID          `json:"practitioner_id" validate:"required"`
	Rules          []WorkingHoursRule `json:"rules" validate:"required,dive"`
}

// Response DTOs

type WorkingHoursResponse struct {
	Weekday     int    `json:"weekday"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type WorkingHoursListResponse struct {
	PractitionerID uuid.UUID              `json:"practitioner_id"`
	Rules          []WorkingHoursResponse `json:"rules"`
	Total          int                    `json:"total"`
}
