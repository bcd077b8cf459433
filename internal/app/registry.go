package app

import (
	"context"
	"database/sql"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-dailyreport/internal/auth"
	"go-dailyreport/internal/employee"
	"go-dailyreport/internal/messaging/kafka"
	"go-dailyreport/internal/middleware"
	"go-dailyreport/internal/rbac"
	"go-dailyreport/internal/report"
	"go-dailyreport/internal/shared/view"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	reportService := report.NewServiceWithOutbox(db, reportRepo, outboxRepo)
	authService := auth.NewService(employeeRepo)

	if err := seedAdmin(employeeService); err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	reportHandler := report.NewHandler(reportService, displayName(employeeService))

	// --- Routes Registration ---
	logger := zap.L()
	root := router.Group("")
	root.Use(middleware.RequestID())
	{
		auth.RegisterRoutes(root, authHandler)
		employee.RegisterRoutes(root, employeeHandler, rbacService, logger)
		report.RegisterRoutes(root, reportHandler, rbacService, logger)
	}

	router.GET("/", func(c *gin.Context) {
		view.Redirect(c, "/reports")
	})

	return nil
}

// displayName adapts the employee service's cached name lookup into the
// per-request function the report screens take.
func displayName(svc employee.Service) func(c *gin.Context) string {
	return func(c *gin.Context) string {
		code := c.GetString(middleware.ContextEmployeeCode)
		name, err := svc.DisplayName(c.Request.Context(), code)
		if err != nil {
			return code
		}
		return name
	}
}

// seedAdmin guarantees a first login on an empty database.
func seedAdmin(svc employee.Service) error {
	code := os.Getenv("BOOTSTRAP_ADMIN_CODE")
	if code == "" {
		code = "0001"
	}
	name := os.Getenv("BOOTSTRAP_ADMIN_NAME")
	if name == "" {
		name = "システム管理者"
	}
	password := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	if password == "" {
		password = "password1234"
	}
	return svc.EnsureSeedAdmin(context.Background(), code, name, password)
}
