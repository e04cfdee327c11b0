package events

import "github.com/google/uuid"

// Event type constants.
const (
	TeamCreatedType          = "TeamCreated"
	TeamMemberJoinedType     = "TeamMemberJoined"
	TeamReadyForPaymentType  = "TeamReadyForPayment"
	BookingConfirmedType     = "BookingConfirmed"
	BookingCancelledType     = "BookingCancelled"
	BookingFailedType        = "BookingFailed"
	CashbackGrantedType      = "CashbackGranted"
	VirtualAccountIssuedType = "VirtualAccountIssued"
)

// TeamCreatedEvent is emitted when a team opens for recruitment.
type TeamCreatedEvent struct {
	BaseEvent

	TeamID     uuid.UUID `json:"team_id"`
	CreatorID  uuid.UUID `json:"creator_id"`
	FacilityID uuid.UUID `json:"facility_id"`
	JoinCode   string    `json:"join_code"`
	MaxPlayers int       `json:"max_players"`
}

// NewTeamCreatedEvent creates a new TeamCreatedEvent.
func NewTeamCreatedEvent(teamID, creatorID, facilityID uuid.UUID, joinCode string, maxPlayers int) *TeamCreatedEvent {
	return &TeamCreatedEvent{
		BaseEvent:  NewBaseEvent(TeamCreatedType, teamID, "Team"),
		TeamID:     teamID,
		CreatorID:  creatorID,
		FacilityID: facilityID,
		JoinCode:   joinCode,
		MaxPlayers: maxPlayers,
	}
}

// TeamMemberJoinedEvent is emitted when an identity joins a team.
type TeamMemberJoinedEvent struct {
	BaseEvent

	TeamID      uuid.UUID `json:"team_id"`
	UserID      uuid.UUID `json:"user_id"`
	MemberCount int       `json:"member_count"`
	MaxPlayers  int       `json:"max_players"`
}

// NewTeamMemberJoinedEvent creates a new TeamMemberJoinedEvent.
func NewTeamMemberJoinedEvent(teamID, userID uuid.UUID, memberCount, maxPlayers int) *TeamMemberJoinedEvent {
	return &TeamMemberJoinedEvent{
		BaseEvent:   NewBaseEvent(TeamMemberJoinedType, teamID, "Team"),
		TeamID:      teamID,
		UserID:      userID,
		MemberCount: memberCount,
		MaxPlayers:  maxPlayers,
	}
}

// TeamReadyForPaymentEvent is emitted when every contribution on the
// team's ledger is confirmed.
type TeamReadyForPaymentEvent struct {
	BaseEvent

	TeamID    uuid.UUID `json:"team_id"`
	LedgerID  uuid.UUID `json:"ledger_id"`
	TotalCost int64     `json:"total_cost"`
}

// NewTeamReadyForPaymentEvent creates a new TeamReadyForPaymentEvent.
func NewTeamReadyForPaymentEvent(teamID, ledgerID uuid.UUID, totalCost int64) *TeamReadyForPaymentEvent {
	return &TeamReadyForPaymentEvent{
		BaseEvent: NewBaseEvent(TeamReadyForPaymentType, teamID, "Team"),
		TeamID:    teamID,
		LedgerID:  ledgerID,
		TotalCost: totalCost,
	}
}

// BookingConfirmedEvent is emitted when a booking commits, solo or
// team-funded.
type BookingConfirmedEvent struct {
	BaseEvent

	BookingID  uuid.UUID  `json:"booking_id"`
	FacilityID uuid.UUID  `json:"facility_id"`
	UserID     uuid.UUID  `json:"user_id"`
	TeamID     *uuid.UUID `json:"team_id,omitempty"`
	Date       string     `json:"date"`
	StartHour  int        `json:"start_hour"`
	Amount     int64      `json:"amount"`
}

// NewBookingConfirmedEvent creates a new BookingConfirmedEvent.
func NewBookingConfirmedEvent(bookingID, facilityID, userID uuid.UUID, teamID *uuid.UUID, date string, startHour int, amount int64) *BookingConfirmedEvent {
	return &BookingConfirmedEvent{
		BaseEvent:  NewBaseEvent(BookingConfirmedType, bookingID, "Booking"),
		BookingID:  bookingID,
		FacilityID: facilityID,
		UserID:     userID,
		TeamID:     teamID,
		Date:       date,
		StartHour:  startHour,
		Amount:     amount,
	}
}

// BookingCancelledEvent is emitted when a booking is cancelled and its
// slot released.
type BookingCancelledEvent struct {
	BaseEvent

	BookingID  uuid.UUID `json:"booking_id"`
	FacilityID uuid.UUID `json:"facility_id"`
	UserID     uuid.UUID `json:"user_id"`
	Date       string    `json:"date"`
	StartHour  int       `json:"start_hour"`
}

// NewBookingCancelledEvent creates a new BookingCancelledEvent.
func NewBookingCancelledEvent(bookingID, facilityID, userID uuid.UUID, date string, startHour int) *BookingCancelledEvent {
	return &BookingCancelledEvent{
		BaseEvent:  NewBaseEvent(BookingCancelledType, bookingID, "Booking"),
		BookingID:  bookingID,
		FacilityID: facilityID,
		UserID:     userID,
		Date:       date,
		StartHour:  startHour,
	}
}

// BookingFailedEvent is emitted when the gateway reports a failed charge.
type BookingFailedEvent struct {
	BaseEvent

	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	Reference string    `json:"reference"`
}

// NewBookingFailedEvent creates a new BookingFailedEvent.
func NewBookingFailedEvent(bookingID, userID uuid.UUID, reference string) *BookingFailedEvent {
	return &BookingFailedEvent{
		BaseEvent: NewBaseEvent(BookingFailedType, bookingID, "Booking"),
		BookingID: bookingID,
		UserID:    userID,
		Reference: reference,
	}
}

// VirtualAccountIssuedEvent is emitted when an owner's dedicated
// virtual account is created on the gateway.
type VirtualAccountIssuedEvent struct {
	BaseEvent

	OwnerID       uuid.UUID `json:"owner_id"`
	AccountNumber string    `json:"account_number"`
	BankName      string    `json:"bank_name"`
}

// NewVirtualAccountIssuedEvent creates a new VirtualAccountIssuedEvent.
func NewVirtualAccountIssuedEvent(ownerID uuid.UUID, accountNumber, bankName string) *VirtualAccountIssuedEvent {
	return &VirtualAccountIssuedEvent{
		BaseEvent:     NewBaseEvent(VirtualAccountIssuedType, ownerID, "Owner"),
		OwnerID:       ownerID,
		AccountNumber: accountNumber,
		BankName:      bankName,
	}
}

// CashbackGrantedEvent is emitted when a referral cashback lands in a
// referrer's wallet.
type CashbackGrantedEvent struct {
	BaseEvent

	UserID    uuid.UUID `json:"user_id"`
	BookingID uuid.UUID `json:"booking_id"`
	Amount    int64     `json:"amount"`
}

// NewCashbackGrantedEvent creates a new CashbackGrantedEvent.
func NewCashbackGrantedEvent(userID, bookingID uuid.UUID, amount int64) *CashbackGrantedEvent {
	return &CashbackGrantedEvent{
		BaseEvent: NewBaseEvent(CashbackGrantedType, userID, "User"),
		UserID:    userID,
		BookingID: bookingID,
		Amount:    amount,
	}
}
