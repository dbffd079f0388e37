package httpapi

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the wire wrapper around every response. Error responses never
// populate Data; list responses nest a PageResult under Data.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type PageResult struct {
	Data       any      `json:"data"`
	Pagination PageInfo `json:"pagination"`
}

func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, errMsg string, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Error:   errMsg,
	})
}

func AbortError(c *gin.Context, status int, errMsg string, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Message: message,
		Error:   errMsg,
	})
}

func Paginated(c *gin.Context, status int, data any, total int64, page, limit int) {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	c.JSON(status, Envelope{
		Success: true,
		Data: PageResult{
			Data: data,
			Pagination: PageInfo{
				Total:      total,
				Page:       page,
				Limit:      limit,
				TotalPages: totalPages,
			},
		},
	})
}
