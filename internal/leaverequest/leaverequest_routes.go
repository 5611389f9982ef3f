package leaverequest

import (
	"go-elms/internal/employee"
	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("/employee/:employeeId", handler.ListByEmployee)
		leaves.GET("/pending", middleware.RoleMiddleware(employee.RoleManager, employee.RoleAdmin), handler.ListPending)

		leaves.POST("/apply",
			middleware.RateLimitByEmployee(rate.Limit(1), 5),
			middleware.Idempotency(rdb),
			handler.Apply,
		)

		decide := leaves.Group("", middleware.RoleMiddleware(employee.RoleManager, employee.RoleAdmin))
		{
			decide.PUT("/:id/approve", handler.Approve)
			decide.PUT("/:id/reject", handler.Reject)
		}
	}
}
