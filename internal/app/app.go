package app

import (
	"context"
	"html/template"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-dailyreport/internal/audit"
	"go-dailyreport/internal/employee"
	"go-dailyreport/internal/messaging/kafka"
	"go-dailyreport/internal/report"
	"go-dailyreport/internal/shared/connection"
	"go-dailyreport/web"
)

func BuildApp(router *gin.Engine) error {
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&report.Report{},
		&audit.AuditLog{},
	); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := kafka.EnsureOutboxTable(context.Background(), sqlDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	return registerModules(router, sqlDB, gormDB, redisClient)
}
