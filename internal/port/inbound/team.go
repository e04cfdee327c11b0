package inbound

import "github.com/gin-gonic/gin"

// TeamHttpPort defines HTTP handler interface for team operations.
type TeamHttpPort interface {
	// CreateTeam handles POST /teams
	// Opens a team with the caller as creator.
	CreateTeam(c *gin.Context)

	// GetTeam handles GET /teams/:id
	// Returns team details by ID.
	GetTeam(c *gin.Context)

	// ListTeams handles GET /teams
	// Lists teams the caller belongs to.
	ListTeams(c *gin.Context)

	// ListOpenTeams handles GET /teams/open
	// Lists recruiting teams with unexpired deadlines.
	ListOpenTeams(c *gin.Context)

	// JoinTeam handles POST /teams/:id/join
	// Enrolls the caller into a recruiting team.
	JoinTeam(c *gin.Context)

	// JoinByCode handles POST /teams/join
	// Enrolls the caller via a join code.
	JoinByCode(c *gin.Context)

	// CancelTeam handles POST /teams/:id/cancel
	// Cancels a team before finalization. Creator only.
	CancelTeam(c *gin.Context)
}

// LedgerHttpPort defines HTTP handler interface for ledger operations.
type LedgerHttpPort interface {
	// OpenLedger handles POST /teams/:id/ledger
	// Opens the contribution ledger with one share per current member.
	// Later joiners owe nothing; the fixed divisor covers the total.
	OpenLedger(c *gin.Context)

	// GetLedger handles GET /teams/:id/ledger
	// Returns the team's ledger with per-member contributions.
	GetLedger(c *gin.Context)

	// ConfirmContribution handles POST /teams/:id/ledger/confirm
	// Marks a member's contribution as received. Creator only.
	ConfirmContribution(c *gin.Context)

	// FinalizeTeam handles POST /teams/:id/finalize
	// Commits the team's booking once the ledger is fully confirmed.
	FinalizeTeam(c *gin.Context)
}
