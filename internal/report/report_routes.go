package report

import (
	"go-elms/internal/employee"
	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(employee.RoleManager, employee.RoleAdmin))
	{
		reports.GET("/leaves", handler.LeaveReport)
	}
}
