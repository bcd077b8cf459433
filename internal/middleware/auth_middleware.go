package middleware

import (
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"go-dailyreport/internal/role"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "access_token"

	ContextEmployeeCode = "employee_code"
	ContextRole         = "role"
)

// AuthMiddleware resolves the logged-in employee from the session
// cookie (or a bearer header) and puts code and role on the context.
// Browser requests without a valid session are sent to the login form.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			redirectToLogin(c)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			redirectToLogin(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			redirectToLogin(c)
			return
		}

		code, ok := claims[ContextEmployeeCode].(string)
		if !ok || code == "" {
			redirectToLogin(c)
			return
		}

		roleClaim, _ := claims[ContextRole].(string)
		r, err := role.Parse(roleClaim)
		if err != nil {
			redirectToLogin(c)
			return
		}

		c.Set(ContextEmployeeCode, code)
		c.Set(ContextRole, string(r))

		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(302, "/login")
	c.Abort()
}
