package report

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-dailyreport/internal/middleware"
	"go-dailyreport/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	reports.Use(middleware.ContextLogger(logger))
	{
		reports.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.ShowList,
		)

		reports.GET("/add",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "report", "create"),
			handler.ShowAdd,
		)

		reports.POST("/add",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "report", "create"),
			handler.Add,
		)

		reports.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.ShowDetail,
		)

		reports.GET("/:id/update",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "report", "update"),
			handler.ShowUpdate,
		)

		reports.POST("/:id/update",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "report", "update"),
			handler.Update,
		)

		reports.POST("/:id/delete",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "report", "delete"),
			handler.Delete,
		)
	}
}
