package model

import (
	"time"

	"github.com/google/uuid"
)

// TeamStatus represents the lifecycle state of a team.
type TeamStatus string

const (
	TeamStatusRecruiting      TeamStatus = "recruiting"
	TeamStatusReadyForPayment TeamStatus = "ready_for_payment"
	TeamStatusCompleted       TeamStatus = "completed"
	TeamStatusExpired         TeamStatus = "expired"
	TeamStatusCancelled       TeamStatus = "cancelled"
)

// String returns the string representation of the status.
func (s TeamStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is a terminal state.
func (s TeamStatus) IsTerminal() bool {
	return s == TeamStatusCompleted || s == TeamStatusExpired || s == TeamStatusCancelled
}

// teamTransitions defines valid state transitions.
var teamTransitions = map[TeamStatus][]TeamStatus{
	TeamStatusRecruiting:      {TeamStatusReadyForPayment, TeamStatusExpired, TeamStatusCancelled},
	TeamStatusReadyForPayment: {TeamStatusCompleted, TeamStatusExpired, TeamStatusCancelled},
	TeamStatusCompleted:       {},
	TeamStatusExpired:         {},
	TeamStatusCancelled:       {},
}

// CanTransitionTo checks whether a transition to target is valid.
func (s TeamStatus) CanTransitionTo(target TeamStatus) bool {
	for _, allowed := range teamTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Team is a group of identities cooperating to fund one slot reservation.
type Team struct {
	ID            uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	CreatorID     uuid.UUID    `json:"creator_id" gorm:"type:uuid;not null;index"`
	FacilityID    uuid.UUID    `json:"facility_id" gorm:"type:uuid;not null;index"`
	Name          string       `json:"name"`
	Date          string       `json:"date" gorm:"not null"`
	StartHour     int          `json:"start_hour" gorm:"not null"`
	DurationHours int          `json:"duration_hours" gorm:"not null"`
	MaxPlayers    int          `json:"max_players" gorm:"not null"`
	TotalCost     int64        `json:"total_cost" gorm:"not null"`
	Status        TeamStatus   `json:"status" gorm:"not null;default:recruiting"`
	Deadline      time.Time    `json:"deadline" gorm:"not null"`
	JoinCode      string       `json:"join_code" gorm:"uniqueIndex"`
	Members       []TeamMember `json:"members" gorm:"foreignKey:TeamID"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// Slot returns the team's requested slot.
func (t *Team) Slot() Slot {
	return Slot{
		FacilityID:    t.FacilityID,
		Date:          t.Date,
		StartHour:     t.StartHour,
		DurationHours: t.DurationHours,
	}
}

// IsFull reports whether the team has reached its configured capacity.
func (t *Team) IsFull() bool {
	return len(t.Members) >= t.MaxPlayers
}

// IsPastDeadline reports whether the deadline has passed at the given time.
// Evaluated lazily at every mutating entry point; there is no sweeper.
func (t *Team) IsPastDeadline(now time.Time) bool {
	return now.After(t.Deadline)
}

// HasMember reports whether the identity is already enrolled.
func (t *Team) HasMember(userID uuid.UUID) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// TeamMember is one enrolled identity. Owned by exactly one team.
type TeamMember struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_user"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_user"`
	IsCreator bool      `json:"is_creator" gorm:"not null;default:false"`
	JoinedAt  time.Time `json:"joined_at"`
}

// TableName returns the table name for GORM.
func (TeamMember) TableName() string {
	return "team_members"
}
