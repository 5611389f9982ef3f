package leavetype

import (
	"go-elms/internal/employee"
	"go-elms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", handler.GetAll)
		types.GET("/:id", handler.GetByID)
		types.POST("", middleware.RoleMiddleware(employee.RoleAdmin), handler.Create)
	}
}
