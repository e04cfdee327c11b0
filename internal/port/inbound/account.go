package inbound

import "github.com/gin-gonic/gin"

// AccountHttpPort defines HTTP handler interface for owner account
// operations.
type AccountHttpPort interface {
	// IssueVirtualAccount handles POST /owners/virtual-account
	// Issues a dedicated collection account for the calling owner.
	IssueVirtualAccount(c *gin.Context)

	// GetVirtualAccount handles GET /owners/virtual-account
	// Returns the calling owner's collection account.
	GetVirtualAccount(c *gin.Context)
}
