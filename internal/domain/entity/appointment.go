package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// CancelledBy values
const (
	CancelledByPatient      = "patient"
	CancelledByPractitioner = "practitioner"
	CancelledByAdmin        = "admin"
)

// appointmentTransitions is the allowed status graph. Completed and
// cancelled are terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusNoShow, AppointmentStatusCompleted},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
	AppointmentStatusNoShow:    {},
}

// Appointment represents a booked consultation slot with a practitioner
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	PractitionerID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"practitioner_id"`
	ReferralID      *uuid.UUID        `gorm:"type:uuid;index" json:"referral_id,omitempty"`
	StartTime       time.Time         `gorm:"not null;index" json:"start_time"`
	DurationMinutes int               `gorm:"not null;default:30" json:"duration_minutes"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Reason          string            `gorm:"type:text;not null" json:"reason"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`

	// Cancellation metadata, set only when status is cancelled
	CancelledBy        string     `gorm:"type:varchar(20)" json:"cancelled_by,omitempty"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	// Completion metadata, set only when status is completed
	Diagnosis    string     `gorm:"type:text" json:"diagnosis,omitempty"`
	Treatment    string     `gorm:"type:text" json:"treatment,omitempty"`
	Prescription string     `gorm:"type:text" json:"prescription,omitempty"`
	FollowUp     string     `gorm:"type:text" json:"follow_up,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      PatientProfile      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Practitioner PractitionerProfile `gorm:"foreignKey:PractitionerID" json:"practitioner,omitempty"`
	Referral     *Referral           `gorm:"foreignKey:ReferralID" json:"referral,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// End returns the exclusive end instant of the appointment slot.
func (a *Appointment) End() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsActive reports whether the appointment holds its slot. Only scheduled
// and confirmed appointments count toward the no-overlap invariant.
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
}

// IsTerminal reports whether the appointment reached a terminal status.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// CanTransitionTo checks the transition table.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[a.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Overlaps reports whether the half-open slot [start, start+duration)
// intersects this appointment's slot.
func (a *Appointment) Overlaps(start time.Time, durationMinutes int) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return a.StartTime.Before(end) && start.Before(a.End())
}
