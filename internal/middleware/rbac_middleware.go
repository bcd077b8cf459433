package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-dailyreport/internal/rbac"
	"go-dailyreport/internal/role"
	"go-dailyreport/internal/shared/apperror"
	"go-dailyreport/internal/shared/view"
)

// RBACAuthorize gates a route on the policy matrix. Denial renders the
// forbidden page with the product's localized message.
func RBACAuthorize(service rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := role.Parse(c.GetString(ContextRole))
		if err != nil {
			redirectToLogin(c)
			return
		}

		allowed, err := service.Enforce(r, resource, action)
		if err != nil {
			view.ErrorPage(c, http.StatusInternalServerError, apperror.ErrInternal.Message)
			c.Abort()
			return
		}

		if !allowed {
			view.ErrorPage(c, http.StatusForbidden, apperror.ErrPermissionDenied.Message)
			c.Abort()
			return
		}

		c.Next()
	}
}
