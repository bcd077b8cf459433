// Package view holds the small amount of glue between handlers and the
// embedded html/template set: named-view rendering, redirects and the
// shared error page.
package view

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Render(c *gin.Context, status int, name string, model gin.H) {
	if model == nil {
		model = gin.H{}
	}
	c.HTML(status, name, model)
}

func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// ErrorPage renders the shared error template with a user-facing
// message. Handlers call this for permission and unexpected failures;
// validation failures re-render their own form instead.
func ErrorPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error", gin.H{
		"Status":  status,
		"Message": message,
	})
}
