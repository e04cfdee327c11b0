package inbound

import "github.com/gin-gonic/gin"

// FacilityHttpPort defines HTTP handler interface for facility operations.
type FacilityHttpPort interface {
	// ListFacilities handles GET /facilities
	// Lists active facilities.
	ListFacilities(c *gin.Context)

	// GetFacility handles GET /facilities/:id
	// Returns facility details by ID.
	GetFacility(c *gin.Context)

	// GetAvailability handles GET /facilities/:id/availability
	// Returns the hour-by-hour schedule for a date.
	GetAvailability(c *gin.Context)

	// GetQuote handles GET /facilities/:id/quote
	// Prices a prospective slot including gateway fees and discounts.
	GetQuote(c *gin.Context)
}
