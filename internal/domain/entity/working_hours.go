package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WorkingHours is a practitioner's declared availability window for one
// weekday. Start and end are minutes of day in UTC; the window never wraps
// across midnight. At most one rule exists per (practitioner, weekday).
type WorkingHours struct {
	ID             int          `gorm:"primaryKey;autoIncrement" json:"id"`
	PractitionerID uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:idx_working_hours_day,priority:1" json:"practitioner_id"`
	Weekday        time.Weekday `gorm:"not null;uniqueIndex:idx_working_hours_day,priority:2" json:"weekday"`
	StartMinute    int          `gorm:"not null" json:"start_minute"`
	EndMinute      int          `gorm:"not null" json:"end_minute"`
	IsAvailable    bool         `gorm:"not null;default:true" json:"is_available"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Practitioner PractitionerProfile `gorm:"foreignKey:PractitionerID" json:"practitioner,omitempty"`
}

func (WorkingHours) TableName() string {
	return "working_hours"
}

// StartClock formats the start minute as HH:MM.
func (w *WorkingHours) StartClock() string {
	return fmt.Sprintf("%02d:%02d", w.StartMinute/60, w.StartMinute%60)
}

// EndClock formats the end minute as HH:MM.
func (w *WorkingHours) EndClock() string {
	return fmt.Sprintf("%02d:%02d", w.EndMinute/60, w.EndMinute%60)
}
