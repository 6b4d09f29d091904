package response

import (
	"employee-management/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	CurrentPage    int   `json:"currentPage"`
	TotalPages     int   `json:"totalPages"`
	TotalEmployees int64 `json:"totalEmployees"`
	HasNext        bool  `json:"hasNext"`
	HasPrev        bool  `json:"hasPrev"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		// ceil(total / limit)
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	// compared by page number so a huge page cannot overflow
	return PaginationMeta{
		CurrentPage:    page,
		TotalPages:     totalPages,
		TotalEmployees: total,
		HasNext:        page < totalPages,
		HasPrev:        page > 1,
	}
}

type ApiEnvelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message,omitempty"`
	Data       any                  `json:"data,omitempty"`
	Error      string               `json:"error,omitempty"`
	Errors     apperror.FieldErrors `json:"errors,omitempty"`
	Pagination *PaginationMeta      `json:"pagination,omitempty"`
}

func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Paginated(c *gin.Context, status int, data any, meta PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Success:    true,
		Data:       data,
		Pagination: &meta,
	})
}

func Error(c *gin.Context, status int, message string, detail string) {
	c.JSON(status, ApiEnvelope{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

// ValidationFailed aborts the chain with the 400 validation envelope.
func ValidationFailed(c *gin.Context, status int, errs apperror.FieldErrors) {
	c.AbortWithStatusJSON(status, ApiEnvelope{
		Success: false,
		Message: apperror.ErrInvalidInput.Message,
		Errors:  errs,
	})
}

// FromHTTPError writes an already resolved apperror.HTTPError.
func FromHTTPError(c *gin.Context, httpErr apperror.HTTPError) {
	if len(httpErr.Fields) > 0 {
		ValidationFailed(c, httpErr.Status, httpErr.Fields)
		return
	}
	Error(c, httpErr.Status, httpErr.Message, httpErr.Detail)
}
