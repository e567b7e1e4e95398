package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReferralStatus represents the status of a referral
type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusAccepted  ReferralStatus = "accepted"
	ReferralStatusRejected  ReferralStatus = "rejected"
	ReferralStatusCompleted ReferralStatus = "completed"
	ReferralStatusCancelled ReferralStatus = "cancelled"
)

// ReferralUrgency represents how urgent the referral is
type ReferralUrgency string

const (
	UrgencyRoutine   ReferralUrgency = "routine"
	UrgencyUrgent    ReferralUrgency = "urgent"
	UrgencyHigh      ReferralUrgency = "high"
	UrgencyEmergency ReferralUrgency = "emergency"
)

// InsuranceStatus is the insurance verification sub-state, independent of
// the referral status.
type InsuranceStatus string

const (
	InsurancePending  InsuranceStatus = "pending"
	InsuranceVerified InsuranceStatus = "verified"
	InsuranceDenied   InsuranceStatus = "denied"
)

// referralTransitions is the allowed status graph. Rejected, completed and
// cancelled are terminal. The pending -> accepted edge is also taken
// implicitly when an appointment is created from the referral.
var referralTransitions = map[ReferralStatus][]ReferralStatus{
	ReferralStatusPending:   {ReferralStatusAccepted, ReferralStatusRejected, ReferralStatusCancelled},
	ReferralStatusAccepted:  {ReferralStatusCompleted},
	ReferralStatusRejected:  {},
	ReferralStatusCompleted: {},
	ReferralStatusCancelled: {},
}

// Referral represents a request to transfer a patient's care to another
// practitioner or facility.
type Referral struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID               uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	ReferringPractitionerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"referring_practitioner_id"`
	ReferredPractitionerID  *uuid.UUID      `gorm:"type:uuid;index" json:"referred_practitioner_id,omitempty"`
	FacilityID              *uuid.UUID      `gorm:"type:uuid;index" json:"facility_id,omitempty"`
	Specialty               string          `gorm:"type:varchar(100);not null" json:"specialty"`
	Reason                  string          `gorm:"type:text;not null" json:"reason"`
	Urgency                 ReferralUrgency `gorm:"type:varchar(20);not null;default:'routine'" json:"urgency"`
	Status                  ReferralStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes                   string          `gorm:"type:text" json:"notes,omitempty"`
	DecisionNotes           string          `gorm:"type:text" json:"decision_notes,omitempty"`
	Summary                 string          `gorm:"type:text" json:"summary,omitempty"`

	// Linkage to the appointment created from this referral. Mutated only
	// through the consistency coordinator.
	AppointmentCreated bool       `gorm:"not null;default:false" json:"appointment_created"`
	AppointmentID      *uuid.UUID `gorm:"type:uuid" json:"appointment_id,omitempty"`

	ExpiryDate time.Time `gorm:"not null" json:"expiry_date"`

	InsuranceStatus InsuranceStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"insurance_status"`
	InsuranceNotes  string          `gorm:"type:text" json:"insurance_notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient               PatientProfile       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	ReferringPractitioner PractitionerProfile  `gorm:"foreignKey:ReferringPractitionerID" json:"referring_practitioner,omitempty"`
	ReferredPractitioner  *PractitionerProfile `gorm:"foreignKey:ReferredPractitionerID" json:"referred_practitioner,omitempty"`
	Facility              *Facility            `gorm:"foreignKey:FacilityID" json:"facility,omitempty"`
}

func (Referral) TableName() string {
	return "referrals"
}

// IsPending checks if the referral is awaiting a decision
func (r *Referral) IsPending() bool {
	return r.Status == ReferralStatusPending
}

// IsTerminal reports whether the referral reached a terminal status.
func (r *Referral) IsTerminal() bool {
	return r.Status == ReferralStatusRejected ||
		r.Status == ReferralStatusCompleted ||
		r.Status == ReferralStatusCancelled
}

// IsExpired reports whether the referral expired before the given instant.
func (r *Referral) IsExpired(now time.Time) bool {
	return now.After(r.ExpiryDate)
}

// CanTransitionTo checks the transition table.
func (r *Referral) CanTransitionTo(target ReferralStatus) bool {
	for _, allowed := range referralTransitions[r.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}
