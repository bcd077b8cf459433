package auth

import (
	"github.com/gin-gonic/gin"

	"go-dailyreport/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/login", middleware.RateLimitByIP(2, 10), handler.ShowLogin)
	r.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
	r.POST("/logout", handler.Logout)
}
