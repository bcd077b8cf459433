package auth

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	autherrors "go-dailyreport/internal/auth/errors"
	"go-dailyreport/internal/middleware"
	"go-dailyreport/internal/shared/view"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) ShowLogin(c *gin.Context) {
	view.Render(c, http.StatusOK, "auth/login", gin.H{
		"Form": LoginForm{},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var form LoginForm
	_ = c.ShouldBind(&form)

	token, _, err := h.service.Login(c.Request.Context(), form.Code, form.Password)
	if err != nil {
		h.logger.Debug("http login failed", zap.String("code", form.Code))
		view.Render(c, http.StatusOK, "auth/login", gin.H{
			"Form":    LoginForm{Code: form.Code},
			"Message": autherrors.ErrInvalidCredentials.Message,
		})
		return
	}

	isProd := os.Getenv("APP_ENV") == "production"
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteLaxMode,
	})

	view.Redirect(c, "/reports")
}

func (h *Handler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	view.Redirect(c, "/login")
}
