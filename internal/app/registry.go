package app

import (
	"context"
	"database/sql"

	"go-elms/internal/auth"
	"go-elms/internal/balance"
	"go-elms/internal/employee"
	"go-elms/internal/leaverequest"
	"go-elms/internal/leavetype"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/middleware"
	"go-elms/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(db)
	leaveRequestRepo := leaverequest.NewRepository(db)
	reportRepo := report.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(employeeRepo, balanceRepo, outboxRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb)
	balanceService := balance.NewService(balanceRepo)
	leaveRequestService := leaverequest.NewServiceWithOutbox(
		db, leaveRequestRepo, balanceRepo, employeeRepo, leaveTypeRepo, outboxRepo,
	)
	reportService := report.NewService(reportRepo)

	if err := leaveTypeService.EnsureDefaults(context.Background()); err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveRequestHandler := leaverequest.NewHandlerWithRedis(leaveRequestService, rdb)
	reportHandler := report.NewHandler(reportService)

	// --- Routes ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		leavetype.RegisterRoutes(api, leaveTypeHandler)
		balance.RegisterRoutes(api, balanceHandler)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rdb)
		report.RegisterRoutes(api, reportHandler)
	}

	return nil
}
