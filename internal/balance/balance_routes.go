package balance

import (
	"go-elms/internal/employee"
	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	balances := r.Group("/balance")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/:employeeId", handler.GetByEmployee)
		balances.PUT("", middleware.RoleMiddleware(employee.RoleAdmin, employee.RoleManager), handler.Adjust)
	}
}
