package entity

import "github.com/google/uuid"

// PractitionerProfile represents practitioner-specific profile data
type PractitionerProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber  string    `gorm:"column:license_number;type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography      string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User         User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WorkingHours []WorkingHours `gorm:"foreignKey:PractitionerID" json:"working_hours,omitempty"`
	Appointments []Appointment  `gorm:"foreignKey:PractitionerID" json:"appointments,omitempty"`
}

func (PractitionerProfile) TableName() string {
	return "practitioner_profiles"
}
