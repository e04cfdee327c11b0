package model

import (
	"time"

	"github.com/google/uuid"
)

// Facility is a bookable venue with operating hours and an hourly base
// price in minor currency units. Immutable for this engine; owned by the
// facility owner.
type Facility struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name" gorm:"not null"`
	Location   string    `json:"location"`
	HourlyRate int64     `json:"hourly_rate" gorm:"not null"`
	OpensAt    int       `json:"opens_at" gorm:"not null"`
	ClosesAt   int       `json:"closes_at" gorm:"not null"`
	Capacity   int       `json:"capacity" gorm:"not null;default:22"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Facility) TableName() string {
	return "facilities"
}

// Slot is a specific date, start hour, and whole-hour duration on a
// facility. Transient value, never persisted independently.
type Slot struct {
	FacilityID    uuid.UUID `json:"facility_id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	StartHour     int       `json:"start_hour"`
	DurationHours int       `json:"duration_hours"`
}

// EndHour returns the exclusive end hour of the slot.
func (s Slot) EndHour() int {
	return s.StartHour + s.DurationHours
}

// Overlaps reports whether two slots on the same facility and date share
// any hour of [start, start+duration).
func (s Slot) Overlaps(other Slot) bool {
	if s.FacilityID != other.FacilityID || s.Date != other.Date {
		return false
	}
	return s.StartHour < other.EndHour() && other.StartHour < s.EndHour()
}

// StartTime returns the wall-clock start of the slot in the given location.
func (s Slot) StartTime(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", s.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(s.StartHour) * time.Hour), nil
}
