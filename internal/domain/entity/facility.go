package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Facility represents an external healthcare facility that can receive
// referred patients.
type Facility struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string     `gorm:"type:varchar(255);not null" json:"name"`
	Address           string     `gorm:"type:text" json:"address,omitempty"`
	PhoneNumber       string     `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Email             string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	Specialties       StringList `gorm:"type:jsonb" json:"specialties"`
	AcceptingPatients *bool      `gorm:"not null;default:true;index" json:"accepting_patients"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Referrals []Referral `gorm:"foreignKey:FacilityID" json:"referrals,omitempty"`
}

func (Facility) TableName() string {
	return "facilities"
}

// OffersSpecialty checks whether the facility lists the given specialty
// (case-insensitive).
func (f *Facility) OffersSpecialty(specialty string) bool {
	for _, s := range f.Specialties {
		if strings.EqualFold(s, specialty) {
			return true
		}
	}
	return false
}

// IsAcceptingPatients checks the accepting-patients flag.
func (f *Facility) IsAcceptingPatients() bool {
	return f.AcceptingPatients != nil && *f.AcceptingPatients
}

// StringList type for GORM JSONB support
type StringList []string

// Value returns json value, implement driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan scan value into StringList, implements sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := []string{}
	err := json.Unmarshal(bytes, &result)
	*l = StringList(result)
	return err
}
