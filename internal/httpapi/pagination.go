package httpapi

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// CalculatePagination floors page at 1, clamps limit to [1,100] and returns
// the row offset for the requested page.
func CalculatePagination(page, limit int) (skip, clamped int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return (page - 1) * limit, limit
}

// PageParams reads page and limit query parameters, falling back to
// page=1 limit=10 when absent or malformed.
func PageParams(c *gin.Context) (page, limit int) {
	page = 1
	limit = defaultLimit
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			page = v
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	if page < 1 {
		page = 1
	}
	return page, limit
}
