package employee

import (
	"employee-management/internal/middleware"
	"employee-management/internal/shared/validation"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts the employees resource and the department
// suggestions on r. rdb may be nil, which disables Idempotency-Key handling.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	v *validation.Validator,
	rdb *redis.Client,
) {
	r.GET("/departments", handler.Departments)

	employees := r.Group("/employees")
	{
		employees.GET("", handler.List)
		employees.GET("/stats", handler.Stats)

		employees.GET("/:id",
			ValidateID(),
			handler.GetByID,
		)

		employees.POST("",
			middleware.Idempotency(rdb),
			ValidateEmployeePayload(v),
			handler.Create,
		)

		employees.POST("/search",
			ValidateSearchPayload(v),
			handler.Search,
		)

		employees.PUT("/:id",
			ValidateID(),
			ValidateEmployeePayload(v),
			handler.Update,
		)

		employees.DELETE("/:id",
			ValidateID(),
			handler.Delete,
		)
	}
}
